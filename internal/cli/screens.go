package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/artpar/menucms/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// NewScreensCommand creates the screens command group.
func NewScreensCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screens",
		Short: "List or delete stored screen menus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreensList(cmd, global)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <screen>",
		Short: "Delete the stored menu of a screen",
		Long:  "Delete the stored menu of a screen. Its revision history is kept and can be restored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openMenuStore(global)
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func runScreensList(cmd *cobra.Command, global *GlobalOptions) error {
	store, err := openMenuStore(global)
	if err != nil {
		return err
	}

	menus, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(menus) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No menus")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCREEN\tENTRIES\tUPDATED")
	for _, m := range menus {
		updated := "-"
		if !m.UpdatedAt.IsZero() {
			updated = m.UpdatedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", m.Screen, m.EntryCount, updated)
	}
	return tw.Flush()
}

func openMenuStore(global *GlobalOptions) (*filesystem.MenuStore, error) {
	cfg := global.Config()
	format, err := filesystem.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return filesystem.NewMenuStore(filepath.Join(cfg.DataDir, "menus"), format)
}
