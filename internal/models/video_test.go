package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedVideo(t *testing.T) {
	tests := []struct {
		filename    string
		allowed     bool
		contentType string
	}{
		{filename: "clip.mp4", allowed: true, contentType: "video/mp4"},
		{filename: "clip.MP4", allowed: true, contentType: "video/mp4"},
		{filename: "lecture.avi", allowed: true, contentType: "video/x-msvideo"},
		{filename: "lecture.Mkv", allowed: true, contentType: "video/x-matroska"},
		{filename: "clip.mov", allowed: false, contentType: "application/octet-stream"},
		{filename: "notes.txt", allowed: false, contentType: "application/octet-stream"},
		{filename: "mp4", allowed: false, contentType: "application/octet-stream"},
		{filename: "", allowed: false, contentType: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsAllowedVideo(tt.filename))
			assert.Equal(t, tt.contentType, VideoContentType(tt.filename))
		})
	}
}

func TestConsistencyReport_Consistent(t *testing.T) {
	assert.True(t, (&ConsistencyReport{}).Consistent())
	assert.False(t, (&ConsistencyReport{OrphanFiles: []string{"a.mp4"}}).Consistent())
	assert.False(t, (&ConsistencyReport{DanglingEntries: []string{"b.mp4"}}).Consistent())
}
