package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Output string
}

// NewShowCommand creates the show command.
func NewShowCommand(global *GlobalOptions) *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the menu of a screen",
		Long: `Print the stored menu of a screen.

Output formats:
  tree   indented outline with ids and targets (default)
  json   the normalized entries as JSON
  yaml   the normalized entries as YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "tree", "Output format (tree, json, yaml)")

	return cmd
}

func runShow(cmd *cobra.Command, global *GlobalOptions, opts *ShowOptions) error {
	s, err := openSession(cmd.Context(), global, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	return printMenu(cmd.OutOrStdout(), s.editor.Tree(), opts.Output)
}

func printMenu(w io.Writer, t core.Tree, output string) error {
	switch output {
	case "tree", "":
		if len(t.Nodes) == 0 {
			fmt.Fprintln(w, "(empty menu)")
			return nil
		}
		printNodes(w, t.Nodes)
		return nil
	case "json", "yaml":
		data, err := filesystem.WriteEntries(core.Flatten(t), filesystem.Format(output))
		if err != nil {
			return err
		}
		w.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(w)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}

func printNodes(w io.Writer, nodes []*core.Node) {
	for _, n := range nodes {
		indent := strings.Repeat("  ", n.Level)
		marker := "-"
		if n.IsSubmenu() {
			marker = "+"
		}

		line := fmt.Sprintf("%s%s %s [%s]", indent, marker, n.Data.Title, n.Data.ID)
		switch target := n.Data.NavigationTarget; target.Kind() {
		case core.TargetRoute:
			line += " -> " + target.Route
		case core.TargetURL:
			line += " -> " + target.URL
		}
		fmt.Fprintln(w, line)

		printNodes(w, n.Children)
	}
}
