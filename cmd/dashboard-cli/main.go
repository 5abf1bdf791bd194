package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/coursedash/backend/internal/app"
	"github.com/coursedash/backend/internal/config"
	"github.com/coursedash/backend/internal/logger"
	"github.com/coursedash/backend/internal/models"
	"github.com/coursedash/backend/internal/services"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Version = "dev"

type quizService interface {
	List(ctx context.Context) ([]models.Quiz, error)
	Get(ctx context.Context, title string) (*models.Quiz, error)
	Create(ctx context.Context, title, content string) (*models.Quiz, error)
	Delete(ctx context.Context, title string) error
}

type videoService interface {
	List(ctx context.Context) (map[string]string, error)
	Upload(ctx context.Context, filename string, reader io.Reader, description string) (*models.Video, error)
	Delete(ctx context.Context, filename string) error
	Reconcile(ctx context.Context, repair bool) (*models.ConsistencyReport, error)
}

// storeServices are the services the maintenance commands operate on
type storeServices struct {
	quizzes quizService
	videos  videoService
}

func main() {
	cmd := &cli.Command{
		Name:    "dashboard-cli",
		Usage:   "Maintain the quiz and video stores of the course dashboard",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "asset-dir",
				Sources:  cli.EnvVars("ASSET_DIR"),
				Category: "storage",
				Value:    "assets/uploaded_videos",
				Usage:    "Directory holding uploaded video files.",
			},
			&cli.StringFlag{
				Name:     "quiz-dir",
				Sources:  cli.EnvVars("QUIZ_DIR"),
				Category: "storage",
				Value:    "assets/quiz_data",
				Usage:    "Directory holding one text file per quiz.",
			},
			&cli.StringFlag{
				Name:     "metadata-file",
				Sources:  cli.EnvVars("METADATA_FILE"),
				Category: "storage",
				Value:    "assets/video_metadata.json",
				Usage:    "JSON file mapping video filenames to descriptions.",
			},
			&cli.StringFlag{
				Name:     "quiz-backend",
				Sources:  cli.EnvVars("QUIZ_BACKEND"),
				Category: "storage",
				Value:    config.QuizBackendFS,
				Usage:    "Quiz storage backend, `fs` or `badger`.",
				Action: func(_ context.Context, _ *cli.Command, backend string) error {
					backend = strings.ToLower(backend)
					if backend != config.QuizBackendFS && backend != config.QuizBackendBadger {
						return errors.Errorf("invalid quiz backend %q", backend)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:     "badger-path",
				Sources:  cli.EnvVars("BADGER_PATH"),
				Category: "storage",
				Value:    "assets/quiz_index",
				Usage:    "Directory of the Badger quiz index.",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "warn",
				Action: func(_ context.Context, _ *cli.Command, lvl string) error {
					_, err := zapcore.ParseLevel(lvl)
					return err
				},
				Usage: "Use to specify the level of logging.",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, logger.Init(cmd.String("log-level"))
		},
		After: func(_ context.Context, _ *cli.Command) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the store directories and an empty metadata file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(_ *storeServices) error {
						fmt.Fprintln(cmd.Root().Writer, "stores initialized")
						return nil
					})
				},
			},
			quizCommand(),
			videoCommand(),
			{
				Name:  "reconcile",
				Usage: "Report video files without metadata and metadata entries without files",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "repair",
						Usage: "Remove the reported orphans.",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(svc *storeServices) error {
						report, err := svc.videos.Reconcile(ctx, cmd.Bool("repair"))
						if err != nil {
							return err
						}
						printReport(cmd.Root().Writer, report)
						return nil
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func quizCommand() *cli.Command {
	return &cli.Command{
		Name:  "quiz",
		Usage: "Manage quizzes",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List quiz titles",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(svc *storeServices) error {
						quizzes, err := svc.quizzes.List(ctx)
						if err != nil {
							return err
						}
						for _, quiz := range quizzes {
							fmt.Fprintln(cmd.Root().Writer, quiz.Title)
						}
						return nil
					})
				},
			},
			{
				Name:      "show",
				Usage:     "Print the content of a quiz",
				ArgsUsage: "<title>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(svc *storeServices) error {
						quiz, err := svc.quizzes.Get(ctx, cmd.Args().First())
						if err != nil {
							return err
						}
						fmt.Fprintln(cmd.Root().Writer, quiz.Content)
						return nil
					})
				},
			},
			{
				Name:      "create",
				Usage:     "Create or replace a quiz from a text file",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:      "file",
						Aliases:   []string{"f"},
						Required:  true,
						TakesFile: true,
						Usage:     "Text file with the quiz content, `-` reads stdin.",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					content, err := readContent(cmd.String("file"))
					if err != nil {
						return err
					}
					return withServices(cmd, func(svc *storeServices) error {
						quiz, err := svc.quizzes.Create(ctx, cmd.Args().First(), content)
						if err != nil {
							return err
						}
						fmt.Fprintf(cmd.Root().Writer, "saved quiz %q\n", quiz.Title)
						return nil
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a quiz",
				ArgsUsage: "<title>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(svc *storeServices) error {
						return svc.quizzes.Delete(ctx, cmd.Args().First())
					})
				},
			},
		},
	}
}

func videoCommand() *cli.Command {
	return &cli.Command{
		Name:  "video",
		Usage: "Manage uploaded videos",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List videos with their descriptions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(svc *storeServices) error {
						videos, err := svc.videos.List(ctx)
						if err != nil {
							return err
						}
						filenames := make([]string, 0, len(videos))
						for filename := range videos {
							filenames = append(filenames, filename)
						}
						slices.Sort(filenames)
						for _, filename := range filenames {
							fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", filename, videos[filename])
						}
						return nil
					})
				},
			},
			{
				Name:      "upload",
				Usage:     "Upload a video file with a description",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "description",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Description shown next to the video.",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Store the video under this filename instead of the file's own name.",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return errors.New("video path is required")
					}
					name := cmd.String("name")
					if name == "" {
						name = filepath.Base(path)
					}

					file, err := os.Open(path)
					if err != nil {
						return errors.Wrapf(err, "opening %s", path)
					}
					defer file.Close()

					return withServices(cmd, func(svc *storeServices) error {
						video, err := svc.videos.Upload(ctx, name, file, cmd.String("description"))
						if err != nil {
							return err
						}
						fmt.Fprintf(cmd.Root().Writer, "uploaded %s (%d bytes)\n", video.Filename, video.Size)
						return nil
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a video and its description",
				ArgsUsage: "<filename>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(cmd, func(svc *storeServices) error {
						return svc.videos.Delete(ctx, cmd.Args().First())
					})
				},
			},
		},
	}
}

// withServices opens the stores configured by the root flags, runs fn and closes them
func withServices(cmd *cli.Command, fn func(svc *storeServices) error) (err error) {
	root := cmd.Root()
	stores, err := app.OpenStores(config.StorageConfig{
		AssetDir:     root.String("asset-dir"),
		QuizDir:      root.String("quiz-dir"),
		MetadataFile: root.String("metadata-file"),
		QuizBackend:  strings.ToLower(root.String("quiz-backend")),
		BadgerPath:   root.String("badger-path"),
	}, logger.Logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, stores.Close())
	}()

	logger.Logger.Debug("running command", zap.String("command", cmd.FullName()))

	return fn(&storeServices{
		quizzes: services.NewQuizService(stores.Quizzes, logger.Logger),
		videos:  services.NewVideoService(stores.Metadata, stores.Videos, logger.Logger),
	})
}

// readContent reads a whole file, "-" reads stdin
func readContent(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return "", errors.Wrapf(err, "opening %s", path)
		}
		defer file.Close()
		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "reading quiz content")
	}
	return string(data), nil
}

func printReport(w io.Writer, report *models.ConsistencyReport) {
	if report.Consistent() {
		fmt.Fprintln(w, "videos and metadata are consistent")
		return
	}
	for _, name := range report.OrphanFiles {
		fmt.Fprintf(w, "orphan file: %s\n", name)
	}
	for _, name := range report.DanglingEntries {
		fmt.Fprintf(w, "dangling entry: %s\n", name)
	}
	if report.Repaired {
		fmt.Fprintln(w, "repaired")
	}
}
