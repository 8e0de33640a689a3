package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/firstwords/internal/render"
	"github.com/mesh-intelligence/firstwords/internal/tracker"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

// defaultConfidence is the starting confidence for a newly logged word.
const defaultConfidence = 50

// wordFlags holds the per-entry flags shared by word add and word edit.
type wordFlags struct {
	word       string
	date       types.Date
	speaks     bool
	asl        bool
	confidence int
}

func (f *wordFlags) register(fs *pflag.FlagSet) {
	f.date = types.Today()
	fs.Var(&f.date, "date", "date first used (YYYY-MM-DD, default today)")
	fs.BoolVar(&f.speaks, "speaks", false, "the child says the word")
	fs.BoolVar(&f.asl, "asl", false, "the child signs the word in ASL")
	fs.IntVar(&f.confidence, "confidence", defaultConfidence, "confidence percentage (0-100)")
}

// apply copies the flags the user set onto entry.
func (f *wordFlags) apply(fs *pflag.FlagSet, entry *types.WordEntry) {
	if fs.Changed("word") {
		entry.Word = f.word
	}
	if fs.Changed("date") {
		entry.DateAdded = f.date
	}
	if fs.Changed("speaks") {
		entry.Speaks = f.speaks
	}
	if fs.Changed("asl") {
		entry.ASL = f.asl
	}
	if fs.Changed("confidence") {
		entry.Confidence = f.confidence
	}
}

func newWordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Log and manage a child's words",
	}
	cmd.AddCommand(
		newWordAddCmd(a),
		newWordListCmd(a),
		newWordEditCmd(a),
		newWordDeleteCmd(a),
	)
	return cmd
}

func newWordAddCmd(a *app) *cobra.Command {
	var f wordFlags
	cmd := &cobra.Command{
		Use:   "add <child> <word>",
		Short: "Log a word for a child",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := types.WordEntry{
				Word:       args[1],
				DateAdded:  f.date,
				Speaks:     f.speaks,
				ASL:        f.asl,
				Confidence: f.confidence,
			}
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				w, err := tr.AddWord(args[0], entry)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), w)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged %q for %s (%s)\n", w.Word, args[0], w.WordID)
				return nil
			})
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newWordListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <child>",
		Short: "List a child's words in the order they were logged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				c, err := tr.Child(args[0])
				if err != nil {
					return err
				}
				words := c.Words
				if words == nil {
					words = []types.WordEntry{}
				}
				return a.output(cmd, words, func(r *render.Renderer) string {
					return r.WordList(words)
				})
			})
		},
	}
}

func newWordEditCmd(a *app) *cobra.Command {
	var f wordFlags
	cmd := &cobra.Command{
		Use:   "edit <child> <word-id>",
		Short: "Change a logged word; only the flags given are changed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				c, err := tr.Child(args[0])
				if err != nil {
					return err
				}
				var entry *types.WordEntry
				for i := range c.Words {
					if c.Words[i].WordID == args[1] {
						entry = &c.Words[i]
						break
					}
				}
				if entry == nil {
					return fmt.Errorf("word %s of %s: %w", args[1], c.Name, types.ErrNotFound)
				}

				updated := *entry
				f.apply(cmd.Flags(), &updated)
				w, err := tr.UpdateWord(c.Name, entry.WordID, updated)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), w)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q for %s\n", w.Word, c.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.word, "word", "", "new spelling of the word")
	f.register(cmd.Flags())
	return cmd
}

func newWordDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <child> <word-id>",
		Short: "Remove a logged word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				if err := tr.DeleteWord(args[0], args[1]); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[1]})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted word %s\n", args[1])
				return nil
			})
		},
	}
}
