package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/firstwords/internal/render"
	"github.com/mesh-intelligence/firstwords/internal/tracker"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func newChildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "child",
		Short: "Manage tracked children",
	}
	cmd.AddCommand(
		newChildAddCmd(a),
		newChildListCmd(a),
		newChildShowCmd(a),
		newChildBirthdayCmd(a),
		newChildDeleteCmd(a),
	)
	return cmd
}

func newChildAddCmd(a *app) *cobra.Command {
	var birthday types.Date
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bday *types.Date
			if cmd.Flags().Changed("birthday") {
				bday = &birthday
			}
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				c, err := tr.AddChild(args[0], bday)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", c.Name)
				return nil
			})
		},
	}
	cmd.Flags().Var(&birthday, "birthday", "birthday (YYYY-MM-DD)")
	return cmd
}

func newChildListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked children",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				children, err := tr.Children()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), children)
				}
				out := cmd.OutOrStdout()
				if len(children) == 0 {
					fmt.Fprintln(out, "No children yet. Add one with: firstwords child add NAME")
					return nil
				}
				for _, c := range children {
					fmt.Fprintf(out, "%s\tbirthday: %s\n", c.Name, birthdayText(c))
				}
				return nil
			})
		},
	}
}

func newChildShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a child and their words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				c, err := tr.Child(args[0])
				if err != nil {
					return err
				}
				return a.output(cmd, c, func(r *render.Renderer) string {
					var b strings.Builder
					fmt.Fprintf(&b, "%s (birthday: %s)\n\n", c.Name, birthdayText(*c))
					b.WriteString(r.WordList(c.Words))
					return b.String()
				})
			})
		},
	}
}

func newChildBirthdayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "birthday <name> <YYYY-MM-DD>",
		Short: "Set a child's birthday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			birthday, err := types.ParseDate(args[1])
			if err != nil {
				return err
			}
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				c, err := tr.SetBirthday(args[0], birthday)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s's birthday is %s\n", c.Name, birthday)
				return nil
			})
		},
	}
}

func newChildDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Stop tracking a child and delete their words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				if err := tr.DeleteChild(args[0]); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func birthdayText(c types.Child) string {
	if !c.HasBirthday() {
		return "not set"
	}
	return c.Birthday.String()
}
