package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_GeneratePath(t *testing.T) {
	s := NewLocalStorage("/videos")

	tests := []struct {
		name          string
		file          string
		expectedPath  string
		expectedError bool
	}{
		{name: "plain name", file: "clip.mp4", expectedPath: filepath.Join("/videos", "clip.mp4")},
		{name: "name with spaces", file: "intro lecture.mkv", expectedPath: filepath.Join("/videos", "intro lecture.mkv")},
		{name: "empty name", file: "", expectedError: true},
		{name: "dot", file: ".", expectedError: true},
		{name: "dot dot", file: "..", expectedError: true},
		{name: "traversal", file: "../secret.mp4", expectedError: true},
		{name: "nested", file: "a/b.mp4", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := s.generatePath(tt.file)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPath, path)
		})
	}
}

func TestLocalStorage_CommitAndOpen(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(filepath.Join(dir, "videos"))

	tmp, err := s.CreateTemp()
	require.NoError(t, err)
	assert.True(t, IsTempName(filepath.Base(tmp.Name())))

	_, err = tmp.WriteString("video bytes")
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	require.NoError(t, s.Commit(tmp.Name(), "clip.mp4"))

	_, err = os.Stat(tmp.Name())
	assert.True(t, os.IsNotExist(err), "temporary file should be moved")

	file, err := s.OpenFile("clip.mp4")
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "video bytes", string(data))
}

func TestLocalStorage_CommitReplaces(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	for _, content := range []string{"first", "second"} {
		tmp, err := s.CreateTemp()
		require.NoError(t, err)
		_, err = tmp.WriteString(content)
		require.NoError(t, err)
		require.NoError(t, tmp.Close())
		require.NoError(t, s.Commit(tmp.Name(), "clip.mp4"))
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, "clip.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	files, err := s.List()
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLocalStorage_DiscardAndDelete(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	tmp, err := s.CreateTemp()
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	assert.NoError(t, s.Discard(tmp.Name()))
	assert.NoError(t, s.Discard(tmp.Name()), "discarding twice should not fail")

	err = s.Delete("missing.mp4")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.WriteFile(filepath.Join(s.basePath, "clip.mp4"), []byte("x"), 0644))
	assert.NoError(t, s.Delete("clip.mp4"))

	_, err = s.OpenFile("clip.mp4")
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_List(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		s := NewLocalStorage(filepath.Join(t.TempDir(), "absent"))

		files, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("regular files sorted by name", func(t *testing.T) {
		dir := t.TempDir()
		s := NewLocalStorage(dir)
		for _, name := range []string{"b.mp4", "a.avi", "c.mkv"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

		files, err := s.List()
		require.NoError(t, err)

		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name())
		}
		assert.Equal(t, []string{"a.avi", "b.mp4", "c.mkv"}, names)
	})
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "video_metadata.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":"1"}`), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte(`{"b":"2"}`), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"2"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files should be left behind")
	assert.Equal(t, "video_metadata.json", entries[0].Name())
}

func TestTempNames(t *testing.T) {
	first := GenerateTempName()
	second := GenerateTempName()

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, TempPrefix))
	assert.True(t, IsTempName(first))
	assert.False(t, IsTempName("clip.mp4"))
}

func TestIsReservedName(t *testing.T) {
	tests := []struct {
		name     string
		reserved bool
	}{
		{name: GenerateTempName(), reserved: true},
		{name: ".video_metadata.json.tmp-1234", reserved: true},
		{name: ".Algebra Quiz.txt.tmp-99", reserved: true},
		{name: "clip.mp4"},
		{name: ".profile"},
		{name: "notes.tmp-1"},
		{name: "upload-clip.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reserved, IsReservedName(tt.name))
		})
	}
}

func TestWriteFileAtomic_RenameFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the target makes the final rename fail
	path := filepath.Join(dir, "video_metadata.json")
	require.NoError(t, os.Mkdir(path, 0755))

	err := WriteFileAtomic(path, []byte("{}"), 0644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renaming onto "+path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the temporary file should be removed")
	assert.Equal(t, "video_metadata.json", entries[0].Name())
}

func TestSizeWriter(t *testing.T) {
	sw := NewSizeWriter()

	n, err := io.Copy(sw, strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, int64(11), sw.Size())
}
