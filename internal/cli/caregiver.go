package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/firstwords/internal/tracker"
	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func newRegisterCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the caregiver using firstwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{}, func(tr *tracker.Tracker) error {
				c, err := tr.Register(name)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", c.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "caregiver name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the registered caregiver; children and words are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				if err := tr.Logout(); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]bool{"logged_out": true})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the registered caregiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(session{caregiver: true}, func(tr *tracker.Tracker) error {
				c, err := tr.CurrentCaregiver()
				if err != nil {
					return err
				}
				return a.printCaregiver(cmd, c)
			})
		},
	}
}

func (a *app) printCaregiver(cmd *cobra.Command, c *types.Caregiver) error {
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), c)
	}
	fmt.Fprintln(cmd.OutOrStdout(), c.Name)
	return nil
}
