package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shelfarr/shelfarr/internal/collection"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the shows and movies in the collection",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := collection.NewStore(db)

	shows, err := store.ListShows(cmd.Context())
	if err != nil {
		return err
	}
	movies, err := store.ListMovies(cmd.Context())
	if err != nil {
		return err
	}

	if len(shows) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Show", "Year", "Rating", "Size"})
		for _, show := range shows {
			t.AppendRow(table.Row{show.Title, show.Year,
				fmt.Sprintf("%.1f", show.Rating), formatSize(show.TotalSize)})
		}
		t.Render()
	}

	if len(movies) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Movie", "Year", "Quality", "Size"})
		for _, m := range movies {
			t.AppendRow(table.Row{m.Title, m.Year, m.Quality, formatSize(m.FileSize)})
		}
		t.Render()
	}

	if len(shows) == 0 && len(movies) == 0 {
		fmt.Println("Collection is empty.")
	}
	return nil
}
