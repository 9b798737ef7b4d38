package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/artpar/menucms/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewEditCommand creates the edit command, which opens the interactive
// editor. Running menucms without a subcommand does the same.
func NewEditCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive menu editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, global)
		},
	}
}

func runEdit(cmd *cobra.Command, global *GlobalOptions) error {
	// The terminal belongs to the editor, so logs go to a file.
	dataDir := global.Config().DataDir
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "menucms.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	s, err := openSession(cmd.Context(), global, logFile)
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(views.NewEditorView(s.editor), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	return nil
}
