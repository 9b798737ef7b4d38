package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// ErrMenusDiffer is returned by diff when the menus are not equal, so the
// command exits non-zero.
var ErrMenusDiffer = errors.New("menus differ")

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file-a> <file-b>",
		Short: "Compare two menu files",
		Long: `Compare two menu files entry by entry. Both files are normalized first.

Lines start with + for entries only in file-b, - for entries only in file-a
and ~ for entries whose content or position changed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1])
		},
	}
}

func runDiff(cmd *cobra.Command, pathA, pathB string) error {
	a, err := filesystem.ReadEntries(pathA)
	if err != nil {
		return err
	}
	b, err := filesystem.ReadEntries(pathB)
	if err != nil {
		return err
	}

	a, b = core.Normalize(a), core.Normalize(b)
	if core.EntriesEqual(a, b) {
		fmt.Fprintln(cmd.OutOrStdout(), "Menus are identical")
		return nil
	}

	writeDiff(cmd.OutOrStdout(), indexEntries(a), indexEntries(b))
	return ErrMenusDiffer
}

// placedEntry is an entry with its location in the document.
type placedEntry struct {
	entry  core.MenuEntry
	parent string
	index  int
}

// indexedMenu holds the entries of a menu by id in document order.
type indexedMenu struct {
	index map[string]placedEntry
	order []string
}

// indexEntries maps every entry id to the entry and where it sits. Submenu
// items are stripped so entries compare on their own content.
func indexEntries(entries []core.MenuEntry) indexedMenu {
	m := indexedMenu{index: make(map[string]placedEntry)}

	var walk func(entries []core.MenuEntry, parent string)
	walk = func(entries []core.MenuEntry, parent string) {
		for i, e := range entries {
			var children []core.MenuEntry
			own := e.Clone()
			if own.Submenu != nil {
				children = own.Submenu.Items
				own.Submenu.Items = nil
			}
			m.index[e.ID] = placedEntry{entry: own, parent: parent, index: i}
			m.order = append(m.order, e.ID)
			walk(children, e.ID)
		}
	}
	walk(entries, "")

	return m
}

func writeDiff(w io.Writer, a, b indexedMenu) {
	indexA, orderA := a.index, a.order
	indexB, orderB := b.index, b.order

	for _, id := range orderA {
		if _, ok := indexB[id]; !ok {
			fmt.Fprintf(w, "- %s %q\n", id, indexA[id].entry.Title)
		}
	}
	for _, id := range orderB {
		pb := indexB[id]
		pa, ok := indexA[id]
		switch {
		case !ok:
			fmt.Fprintf(w, "+ %s %q\n", id, pb.entry.Title)
		case !core.EntriesEqual([]core.MenuEntry{pa.entry}, []core.MenuEntry{pb.entry}):
			fmt.Fprintf(w, "~ %s changed\n", id)
		case pa.parent != pb.parent:
			fmt.Fprintf(w, "~ %s moved\n", id)
		case pa.index != pb.index:
			fmt.Fprintf(w, "~ %s reordered\n", id)
		}
	}
}
