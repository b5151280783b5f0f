package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/config"
	"github.com/shelfarr/shelfarr/internal/migrations"
	"github.com/shelfarr/shelfarr/internal/organizer"
)

var version = "dev"

var (
	configPath string
	mediaKind  string
)

var rootCmd = &cobra.Command{
	Use:   "shelfarr",
	Short: "Media library import and organization",
	Long: `shelfarr - scan media libraries, match files against TMDB,
and import them into a tracked collection with canonical naming.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "shelfarr.toml", "Config file path")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("shelfarr {{.Version}}\n")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openDB opens the collection database and applies migrations.
func openDB(cfg *config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// namingFromConfig maps the per-library naming templates onto the
// organizer's naming set.
func namingFromConfig(cfg *config.Config) organizer.Naming {
	return organizer.Naming{
		ShowFolder:  cfg.Libraries.TV.FolderNaming,
		EpisodeFile: cfg.Libraries.TV.FileNaming,
		MovieFolder: cfg.Libraries.Movies.FolderNaming,
		MovieFile:   cfg.Libraries.Movies.FileNaming,
	}
}

func parseKind(kind string) (catalog.MediaType, error) {
	switch kind {
	case "tv":
		return catalog.MediaTV, nil
	case "movie", "movies":
		return catalog.MediaMovie, nil
	default:
		return "", fmt.Errorf("media type must be 'tv' or 'movie', got %q", kind)
	}
}

// rootsOrDefault returns the roots given on the command line, or all
// configured roots for the kind when none were given.
func rootsOrDefault(cfg *config.Config, kind catalog.MediaType, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Library(string(kind)).Roots
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
