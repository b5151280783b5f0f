package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shelfarr/shelfarr/internal/collection"
	"github.com/shelfarr/shelfarr/internal/matcher"
	"github.com/shelfarr/shelfarr/internal/organizer"
	"github.com/shelfarr/shelfarr/internal/scanner"
	"github.com/shelfarr/shelfarr/internal/session"
	"github.com/shelfarr/shelfarr/internal/tmdb"
)

var (
	importYes      bool
	importOrganize bool
	importDryRun   bool
)

var importCmd = &cobra.Command{
	Use:   "import [roots...]",
	Short: "Scan, match against TMDB, and import into the collection",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVarP(&mediaKind, "type", "t", "tv", "Media type: tv or movie")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Import auto-matched items without review")
	importCmd.Flags().BoolVar(&importOrganize, "organize", false, "Also move files into canonical locations")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "With --organize, only report what would move")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is not configured")
	}
	kind, err := parseKind(mediaKind)
	if err != nil {
		return err
	}
	roots := rootsOrDefault(cfg, kind, args)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := newLogger(cfg)
	store := collection.NewStore(db)

	var opts []tmdb.Option
	if cfg.TMDB.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	search := tmdb.NewClient(cfg.TMDB.APIKey, opts...)

	m := matcher.New(search, store, matcher.Options{
		TVThreshold:    cfg.Matching.TVThreshold,
		MovieThreshold: cfg.Matching.MovieThreshold,
		Log:            log,
	})
	org := organizer.New(log, namingFromConfig(cfg))
	engine := session.NewEngine(cfg, scanner.New(log), m, store, org, session.NewStore(), log)
	defer func() { _ = engine.Wait() }()

	snap, err := engine.Start(ctx, kind, roots)
	if err != nil {
		return err
	}
	snap, err = waitForSession(ctx, engine, snap.ID, session.StatusPreview)
	if err != nil {
		return err
	}
	fmt.Printf("Scanned %d item(s), %d auto-matched.\n\n", snap.ScannedCount, snap.MatchedCount)

	matches, err := engine.Preview(snap.ID)
	if err != nil {
		return err
	}
	renderPreview(matches)

	if unparsed, err := engine.Unparsed(snap.ID); err == nil {
		renderUnparsed(unparsed)
	}

	if !importYes {
		fmt.Println("\nRe-run with --yes to import the matched items.")
		return engine.Cancel(snap.ID)
	}

	if err := engine.Execute(ctx, snap.ID); err != nil {
		return err
	}
	snap, err = waitForSession(ctx, engine, snap.ID, session.StatusComplete)
	if err != nil {
		return err
	}
	fmt.Println(snap.Message)

	if !importOrganize {
		return nil
	}
	ops, _, err := engine.RenameOperations(snap.ID)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Println("Files are already in canonical locations.")
		return nil
	}
	result, err := org.Execute(ops, roots[0], importDryRun)
	if err != nil {
		return err
	}
	fmt.Printf("Organized %d/%d file(s) (%d failed, dry-run=%v)\n",
		result.Succeeded, result.Total, result.Failed, result.DryRun)
	return nil
}

// waitForSession polls until the session reaches the wanted status,
// echoing progress messages. Reaching the error state is a failure.
func waitForSession(ctx context.Context, engine *session.Engine, id string, want session.Status) (session.Snapshot, error) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	lastMessage := ""
	for {
		snap, err := engine.Status(id)
		if err != nil {
			return session.Snapshot{}, err
		}
		if snap.Message != lastMessage {
			fmt.Fprintf(os.Stderr, "%s\n", snap.Message)
			lastMessage = snap.Message
		}
		switch snap.Status {
		case want:
			return snap, nil
		case session.StatusError:
			return snap, fmt.Errorf("session failed: %s", snap.ErrorMessage)
		}

		select {
		case <-ctx.Done():
			_ = engine.Cancel(id)
			return session.Snapshot{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func renderPreview(matches []matcher.Match) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Scanned", "Status", "Confidence", "Match"})
	for i, match := range matches {
		selected := ""
		if match.Selected != nil {
			selected = match.Selected.Title
			if match.Selected.Year != 0 {
				selected = fmt.Sprintf("%s (%d)", match.Selected.Title, match.Selected.Year)
			}
		}
		t.AppendRow(table.Row{
			i, match.ScannedTitle(), match.Status,
			fmt.Sprintf("%.2f", match.Confidence), selected,
		})
	}
	t.Render()
}
