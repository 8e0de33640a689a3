package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/firstwords/internal/export"
	"github.com/mesh-intelligence/firstwords/internal/render"
	"github.com/mesh-intelligence/firstwords/internal/tracker"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func newPracticeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "practice <child>",
		Short: "Suggest words for a child to practice",
		Long: "Lists up to five words: known words with confidence below 50% first,\n" +
			"then typical early words the child has not used yet.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true, corpus: true}, func(tr *tracker.Tracker) error {
				recs, err := tr.Practice(args[0])
				if err != nil {
					return err
				}
				return a.output(cmd, recs, func(r *render.Renderer) string {
					return r.PracticeCards(args[0], recs)
				})
			})
		},
	}
}

// growthOutput is the JSON form of the chart command.
type growthOutput struct {
	Child       string              `json:"child"`
	HasBirthday bool                `json:"has_birthday"`
	Points      []types.GrowthPoint `json:"points"`
}

func newChartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chart <child>",
		Short: "Chart a child's vocabulary growth by age in months",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				points, ok, err := tr.Growth(args[0])
				if err != nil {
					return err
				}
				if points == nil {
					points = []types.GrowthPoint{}
				}
				out := growthOutput{Child: args[0], HasBirthday: ok, Points: points}
				return a.output(cmd, out, func(r *render.Renderer) string {
					if !ok {
						return r.MissingBirthday(args[0])
					}
					return r.GrowthChart(args[0], points)
				})
			})
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <child>",
		Short: "Export a child's words as CSV",
		Long: "Writes the child's words as CSV to stdout, or to --output. When --output\n" +
			"is a directory the file is named <child>_vocabulary.csv.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				var buf bytes.Buffer
				if err := tr.Export(args[0], &buf); err != nil {
					return err
				}
				if output == "" {
					if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
						return systemError("write output: %w", err)
					}
					return nil
				}
				path := output
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, export.FileName(args[0]))
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return systemError("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", args[0], path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}
