package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/organizer"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

var planApply bool

var planCmd = &cobra.Command{
	Use:   "plan [roots...]",
	Short: "Show the rename operations that would canonicalize the library",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&mediaKind, "type", "t", "tv", "Media type: tv or movie")
	planCmd.Flags().BoolVar(&planApply, "apply", false, "Execute the operations instead of only planning")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	log := newLogger(cfg)
	sc := scanner.New(log)
	org := organizer.New(log, namingFromConfig(cfg))

	var result *scanner.Result
	if kind == catalog.MediaTV {
		result, err = sc.ScanTV(cmd.Context(), roots, nil)
	} else {
		result, err = sc.ScanMovies(cmd.Context(), roots, nil)
	}
	if err != nil {
		return err
	}

	var ops []organizer.Operation
	if kind == catalog.MediaTV {
		ops = org.PlanShows(result.Shows, roots[0])
	} else {
		ops = org.PlanMovies(result.Movies, roots[0])
	}
	if len(ops) == 0 {
		fmt.Println("Library is already in canonical form.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Op", "Current", "Suggested"})
	for _, op := range ops {
		t.AppendRow(table.Row{op.Kind, op.CurrentPath, op.SuggestedPath})
	}
	t.Render()

	validation := org.Validate(ops)
	fmt.Printf("\n%d valid, %d invalid\n", validation.Valid, validation.Invalid)
	for _, w := range validation.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range validation.Errors {
		fmt.Printf("error: %s\n", e)
	}

	if !planApply {
		return nil
	}
	execResult, err := org.Execute(ops, roots[0], false)
	if err != nil {
		return err
	}
	fmt.Printf("\nApplied %d/%d operations (%d failed)\n",
		execResult.Succeeded, execResult.Total, execResult.Failed)
	for _, opErr := range execResult.Errors {
		fmt.Printf("failed: %s: %s\n", opErr.Path, opErr.Err)
	}
	return nil
}
