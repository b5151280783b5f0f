package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan [roots...]",
	Short: "Scan library roots and show what was found",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&mediaKind, "type", "t", "tv", "Media type: tv or movie")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kind, err := parseKind(mediaKind)
	if err != nil {
		return err
	}
	roots := rootsOrDefault(cfg, kind, args)
	if len(roots) == 0 {
		return fmt.Errorf("no library roots configured for %s", kind)
	}

	sc := scanner.New(newLogger(cfg))
	progress := func(message string, current, total int) {
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", current+1, total, message)
	}

	var result *scanner.Result
	if kind == catalog.MediaTV {
		result, err = sc.ScanTV(cmd.Context(), roots, progress)
	} else {
		result, err = sc.ScanMovies(cmd.Context(), roots, progress)
	}
	if err != nil {
		return err
	}

	if kind == catalog.MediaTV {
		renderShows(result.Shows)
	} else {
		renderMovies(result.Movies)
	}
	renderUnparsed(result.Unparsed)
	return nil
}

func renderShows(shows []scanner.ScannedShow) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Show", "Year", "Seasons", "Episodes"})
	for _, show := range shows {
		year := ""
		if show.Year != 0 {
			year = fmt.Sprintf("%d", show.Year)
		}
		t.AppendRow(table.Row{show.Name, year, len(show.Seasons), show.TotalEpisodes()})
	}
	t.Render()
}

func renderMovies(movies []scanner.ScannedMovie) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "Year", "Quality", "Group", "Size"})
	for _, m := range movies {
		year := ""
		if m.Year != 0 {
			year = fmt.Sprintf("%d", m.Year)
		}
		t.AppendRow(table.Row{m.Title, year, m.Quality, m.ReleaseGroup, formatSize(m.FileSize)})
	}
	t.Render()
}

func renderUnparsed(unparsed []string) {
	if len(unparsed) == 0 {
		return
	}
	fmt.Printf("\n%d file(s) could not be parsed:\n", len(unparsed))
	for _, path := range unparsed {
		fmt.Printf("  %s\n", path)
	}
}
