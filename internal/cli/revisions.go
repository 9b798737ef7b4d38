package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// RevisionsOptions holds options for the revisions list command.
type RevisionsOptions struct {
	Limit int
}

// NewRevisionsCommand creates the revisions command group.
func NewRevisionsCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "revisions",
		Aliases: []string{"rev"},
		Short:   "Inspect and restore saved versions of a menu",
	}

	cmd.AddCommand(newRevisionsListCommand(global), newRevisionsRestoreCommand(global))

	return cmd
}

func newRevisionsListCommand(global *GlobalOptions) *cobra.Command {
	opts := &RevisionsOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved versions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			revs, err := s.editor.Revisions(cmd.Context(), opts.Limit)
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No revisions")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSAVED\tENTRIES")
			for _, rev := range revs {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", rev.ID, rev.CreatedAt.Local().Format("2006-01-02 15:04:05"), rev.EntryCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of revisions to list (0 for all)")

	return cmd
}

func newRevisionsRestoreCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <revision-id>",
		Short: "Restore a saved version and save it as the current menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.editor.Restore(cmd.Context(), args[0]); err != nil {
				return err
			}
			if !s.editor.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Menu already matches revision", args[0])
				return nil
			}
			if err := s.editor.Save(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", args[0])
			return nil
		},
	}
}
