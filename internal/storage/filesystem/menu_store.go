package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/interfaces"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of menu documents.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported menu format: %s", s)
	}
}

// MenuStore keeps one document per screen in a directory. Documents are
// written in the configured format and read in either format.
type MenuStore struct {
	basePath string
	format   Format
}

var _ interfaces.MenuStore = (*MenuStore)(nil)

// NewMenuStore creates a filesystem-backed menu store.
func NewMenuStore(basePath string, format Format) (*MenuStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create menus directory: %w", err)
	}
	if format == "" {
		format = FormatYAML
	}

	return &MenuStore{
		basePath: basePath,
		format:   format,
	}, nil
}

// Load returns the entries stored for screen.
func (s *MenuStore) Load(ctx context.Context, screen string) ([]core.MenuEntry, error) {
	if err := validateScreen(screen); err != nil {
		return nil, err
	}

	path, ok := s.existingPath(screen)
	if !ok {
		return []core.MenuEntry{}, nil
	}

	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	if doc.Items == nil {
		return []core.MenuEntry{}, nil
	}
	return doc.Items, nil
}

// Save writes the entries for screen, replacing any document in the other
// format.
func (s *MenuStore) Save(ctx context.Context, screen string, entries []core.MenuEntry) error {
	if err := validateScreen(screen); err != nil {
		return err
	}

	doc := &Document{
		Screen:    screen,
		Items:     entries,
		UpdatedAt: time.Now().UTC(),
	}

	content, err := encodeDocument(doc, s.format)
	if err != nil {
		return fmt.Errorf("failed to marshal menu: %w", err)
	}

	path := s.menuPath(screen, s.format)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("failed to write menu file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write menu file: %w", err)
	}

	for _, other := range []Format{FormatYAML, FormatJSON} {
		if other != s.format {
			os.Remove(s.menuPath(screen, other))
		}
	}

	return nil
}

// List returns all stored menus.
func (s *MenuStore) List(ctx context.Context) ([]interfaces.MenuMeta, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read menus directory: %w", err)
	}

	var menus []interfaces.MenuMeta
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".json" {
			continue
		}

		path := filepath.Join(s.basePath, entry.Name())
		doc, err := ReadDocument(path)
		if err != nil {
			continue // Skip invalid files
		}

		screen := doc.Screen
		if screen == "" {
			screen = strings.TrimSuffix(entry.Name(), ext)
		}
		menus = append(menus, interfaces.MenuMeta{
			Screen:     screen,
			Path:       path,
			EntryCount: countEntries(doc.Items),
			UpdatedAt:  doc.UpdatedAt,
		})
	}

	return menus, nil
}

// Delete removes the document stored for screen.
func (s *MenuStore) Delete(ctx context.Context, screen string) error {
	if err := validateScreen(screen); err != nil {
		return err
	}

	path, ok := s.existingPath(screen)
	if !ok {
		return fmt.Errorf("menu not found: %s", screen)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	return nil
}

// Internal helpers

func (s *MenuStore) menuPath(screen string, format Format) string {
	return filepath.Join(s.basePath, screen+"."+string(format))
}

func (s *MenuStore) existingPath(screen string) (string, bool) {
	for _, f := range []Format{s.format, FormatYAML, FormatJSON} {
		path := s.menuPath(screen, f)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func validateScreen(screen string) error {
	if screen == "" || screen == "." || screen == ".." ||
		strings.ContainsAny(screen, `/\`) {
		return fmt.Errorf("%w: %q", interfaces.ErrInvalidScreen, screen)
	}
	return nil
}

func countEntries(entries []core.MenuEntry) int {
	count := len(entries)
	for _, e := range entries {
		if e.Submenu != nil {
			count += countEntries(e.Submenu.Items)
		}
	}
	return count
}

// Storage format

// Document is the on-disk shape of one screen's menu.
type Document struct {
	Screen    string           `json:"screen,omitempty" yaml:"screen,omitempty"`
	Items     []core.MenuEntry `json:"items" yaml:"items"`
	UpdatedAt time.Time        `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ReadDocument decodes a menu file. Besides the store's own document shape it
// accepts a bare JSON or YAML list of entries, which is what the backend
// exchanges.
func ReadDocument(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	doc, err := decodeDocument(content, filepath.Ext(path) == ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal menu %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// ReadEntries decodes the entries of a menu file.
func ReadEntries(path string) ([]core.MenuEntry, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// WriteEntries encodes entries as a bare list in the given format.
func WriteEntries(entries []core.MenuEntry, format Format) ([]byte, error) {
	if entries == nil {
		entries = []core.MenuEntry{}
	}
	if format == FormatJSON {
		return json.MarshalIndent(entries, "", "  ")
	}
	return yaml.Marshal(entries)
}

func decodeDocument(content []byte, isJSON bool) (*Document, error) {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return &Document{}, nil
	}

	var doc Document
	if isJSON || strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if strings.HasPrefix(trimmed, "[") {
			err := json.Unmarshal(content, &doc.Items)
			return &doc, err
		}
		err := json.Unmarshal(content, &doc)
		return &doc, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		err := node.Decode(&doc.Items)
		return &doc, err
	}
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Items == nil && doc.Screen == "" && doc.UpdatedAt.IsZero() {
		return nil, errors.New("document has no menu items")
	}
	return &doc, nil
}

func encodeDocument(doc *Document, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}
