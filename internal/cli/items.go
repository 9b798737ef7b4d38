package cli

import (
	"fmt"

	"github.com/artpar/menucms/internal/core"
	"github.com/spf13/cobra"
)

// Item commands load the screen's menu, apply one edit and save it back.
// Items are addressed by their persisted id.

// AddOptions holds options for the add command.
type AddOptions struct {
	Parent   string
	Submenu  bool
	Children []string
	Icon     string
	Route    string
	URL      string
}

// NewAddCommand creates the add command.
func NewAddCommand(global *GlobalOptions) *cobra.Command {
	opts := &AddOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a menu item",
		Long: `Add an item at the end of the menu, or as the first item of a submenu
when --parent names one. The id is generated from the title.

A submenu without children is saved as a plain item, so --submenu is usually
combined with one or more --child titles.

Examples:
  menucms add "Settings" --route /settings
  menucms add "More" --submenu --child "Help" --child "About"
  menucms add "Contact" --parent menu_more --url https://example.com/contact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Parent, "parent", "p", "", "Id of the submenu to add into")
	cmd.Flags().BoolVar(&opts.Submenu, "submenu", false, "Create a submenu")
	cmd.Flags().StringArrayVar(&opts.Children, "child", nil, "Title of an item to create inside the new submenu (repeatable)")
	cmd.Flags().StringVar(&opts.Icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&opts.Route, "route", "", "Internal route to navigate to")
	cmd.Flags().StringVar(&opts.URL, "url", "", "External URL to open")

	return cmd
}

func runAdd(cmd *cobra.Command, global *GlobalOptions, opts *AddOptions, title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(opts.Children) > 0 && !opts.Submenu {
		return fmt.Errorf("--child requires --submenu")
	}

	s, err := openSession(cmd.Context(), global, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	var parent core.NodeID
	if opts.Parent != "" {
		n, err := s.resolve(opts.Parent)
		if err != nil {
			return err
		}
		parent = n.ID
	}

	add := s.editor.AddItem
	if opts.Submenu {
		add = s.editor.AddSubmenu
	}
	id, err := add(title, parent)
	if err != nil {
		return err
	}

	var patch core.EntryPatch
	if opts.Icon != "" {
		patch.Icon = &opts.Icon
	}
	if opts.Route != "" || opts.URL != "" {
		patch.NavigationTarget = &core.NavigationTarget{Route: opts.Route, URL: opts.URL}
	}
	s.editor.Update(id, patch)

	// Insert puts items first, so children are added in reverse.
	for i := len(opts.Children) - 1; i >= 0; i-- {
		if _, err := s.editor.AddItem(opts.Children[i], id); err != nil {
			return err
		}
	}

	if err := s.editor.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", s.editor.Find(id).Data.ID)
	return nil
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a menu item and everything under it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemEdit(cmd, global, args[0], "Removed", func(s *session, n *core.Node) (bool, error) {
				return s.editor.Remove(n.ID), nil
			})
		},
	}
}

// MoveOptions holds options for the move command.
type MoveOptions struct {
	Position string
}

// NewMoveCommand creates the move command.
func NewMoveCommand(global *GlobalOptions) *cobra.Command {
	opts := &MoveOptions{}

	cmd := &cobra.Command{
		Use:   "move <id> <target-id>",
		Short: "Move a menu item relative to another",
		Long: `Move an item before, after or inside another item. Moving inside a plain
item turns it into a submenu. An item cannot be moved into its own subtree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := core.Position(opts.Position)
			if !pos.Valid() {
				return fmt.Errorf("invalid position: %q (want before, after or inside)", opts.Position)
			}
			return runItemEdit(cmd, global, args[0], "Moved", func(s *session, n *core.Node) (bool, error) {
				target, err := s.resolve(args[1])
				if err != nil {
					return false, err
				}
				return s.editor.Move(n.ID, target.ID, pos), nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Position, "position", string(core.PositionAfter), "Where to drop relative to the target (before, after, inside)")

	return cmd
}

// NewDuplicateCommand creates the duplicate command.
func NewDuplicateCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <id>",
		Aliases: []string{"dup"},
		Short:   "Copy a menu item next to itself",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemEdit(cmd, global, args[0], "Duplicated", func(s *session, n *core.Node) (bool, error) {
				return s.editor.Duplicate(n.ID), nil
			})
		},
	}
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change the title of a menu item",
		Long:  "Change the title of a menu item. The id is kept so existing links keep working.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[1]
			return runItemEdit(cmd, global, args[0], "Renamed", func(s *session, n *core.Node) (bool, error) {
				return s.editor.Update(n.ID, core.EntryPatch{Title: &title}), nil
			})
		},
	}
}

type itemEdit func(s *session, n *core.Node) (bool, error)

func runItemEdit(cmd *cobra.Command, global *GlobalOptions, entryID, verb string, edit itemEdit) error {
	s, err := openSession(cmd.Context(), global, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.resolve(entryID)
	if err != nil {
		return err
	}

	changed, err := edit(s, n)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("nothing changed for %s", entryID)
	}

	if err := s.editor.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, entryID)
	return nil
}
