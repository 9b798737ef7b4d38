package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// NormalizeOptions holds options for the normalize command.
type NormalizeOptions struct {
	Write  bool
	DryRun bool
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(global *GlobalOptions) *cobra.Command {
	opts := &NormalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Assign missing ids and repair legacy submenus",
		Long: `Normalize a menu: every entry gets a unique id and entries written in the
legacy submenu format get a submenu block.

Without a file the stored menu of --screen is normalized and saved when
anything changed. With a file the result is printed, or written back with
--write.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runNormalizeFile(cmd, opts, args[0])
			}
			return runNormalizeStored(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report whether the stored menu would change without saving")

	return cmd
}

func runNormalizeFile(cmd *cobra.Command, opts *NormalizeOptions, path string) error {
	entries, err := filesystem.ReadEntries(path)
	if err != nil {
		return err
	}

	format := filesystem.FormatYAML
	if filepath.Ext(path) == ".json" {
		format = filesystem.FormatJSON
	}
	data, err := filesystem.WriteEntries(core.Normalize(entries), format)
	if err != nil {
		return err
	}

	if !opts.Write {
		cmd.OutOrStdout().Write(data)
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Normalized %s\n", path)
	return nil
}

func runNormalizeStored(cmd *cobra.Command, global *GlobalOptions, opts *NormalizeOptions) error {
	s, err := openSession(cmd.Context(), global, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	raw, err := s.store.Load(cmd.Context(), global.Screen)
	if err != nil {
		return err
	}
	if core.EntriesEqual(raw, s.editor.Entries()) {
		fmt.Fprintln(cmd.OutOrStdout(), "Already normalized")
		return nil
	}
	if opts.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "Would normalize")
		return nil
	}

	if err := s.editor.Save(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Normalized %s\n", global.Screen)
	return nil
}
