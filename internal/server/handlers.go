package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/core"
	"github.com/gorilla/mux"
)

// Items are addressed by their persisted entry id, which survives reloads.
// Node handles never leave the process.

type createItemRequest struct {
	Title   string `json:"title"`
	Parent  string `json:"parent,omitempty"`
	Submenu bool   `json:"submenu,omitempty"`
}

type moveItemRequest struct {
	Target   string        `json:"target"`
	Position core.Position `json:"position"`
}

type patchItemRequest struct {
	ID               *string                `json:"id"`
	Title            *string                `json:"title"`
	Icon             *string                `json:"icon"`
	NavigationTarget *core.NavigationTarget `json:"navigationTarget"`
	Submenu          *core.Submenu          `json:"submenu"`
	Type             *string                `json:"type"`
	SubmenuStyle     *string                `json:"submenuStyle"`
	SubmenuLayout    *string                `json:"submenuLayout"`
}

func (p patchItemRequest) patch() core.EntryPatch {
	return core.EntryPatch{
		ID:               p.ID,
		Title:            p.Title,
		Icon:             p.Icon,
		NavigationTarget: p.NavigationTarget,
		Submenu:          p.Submenu,
		Type:             p.Type,
		SubmenuStyle:     p.SubmenuStyle,
		SubmenuLayout:    p.SubmenuLayout,
	}
}

type changeResponse struct {
	Changed bool       `json:"changed"`
	Status  app.Status `json:"status"`
}

type itemResponse struct {
	Changed bool           `json:"changed"`
	Entry   core.MenuEntry `json:"entry"`
	Status  app.Status     `json:"status"`
}

// treeNode is the wire form of a tree node.
type treeNode struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Icon     string                 `json:"icon,omitempty"`
	Kind     core.NodeKind          `json:"kind"`
	Level    int                    `json:"level"`
	Target   *core.NavigationTarget `json:"navigationTarget,omitempty"`
	Children []treeNode             `json:"children,omitempty"`
}

func toTreeNodes(nodes []*core.Node) []treeNode {
	out := make([]treeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, treeNode{
			ID:       n.Data.ID,
			Title:    n.Data.Title,
			Icon:     n.Data.Icon,
			Kind:     n.Kind,
			Level:    n.Level,
			Target:   n.Data.NavigationTarget,
			Children: toTreeNodes(n.Children),
		})
	}
	return out
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.editor.Status())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	initial := Event{Type: "status", Status: s.editor.Status()}
	s.mu.Unlock()

	s.events.Subscribe(w, r, initial)
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.editor.Entries())
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, toTreeNodes(s.editor.Tree().Nodes))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editor.Save(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.editor.Status())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editor.Load(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.editor.Status())
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var parent core.NodeID
	if req.Parent != "" {
		n := s.editor.FindByEntryID(req.Parent)
		if n == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("menu item not found: %s", req.Parent))
			return
		}
		parent = n.ID
	}

	add := s.editor.AddItem
	if req.Submenu {
		add = s.editor.AddSubmenu
	}
	id, err := add(req.Title, parent)
	if err != nil {
		writeEditError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemResponse{
		Changed: true,
		Entry:   s.editor.Find(id).Data,
		Status:  s.editor.Status(),
	})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req patchItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if req.ID != nil && *req.ID != n.Data.ID {
		if *req.ID == "" || s.editor.FindByEntryID(*req.ID) != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("menu id %q is empty or already in use", *req.ID))
			return
		}
	}

	id := n.ID
	changed := s.editor.Update(id, req.patch())
	writeJSON(w, http.StatusOK, itemResponse{
		Changed: changed,
		Entry:   s.editor.Find(id).Data,
		Status:  s.editor.Status(),
	})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := s.editor.FindByEntryID(mux.Vars(r)["id"]); n != nil {
		s.editor.Remove(n.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	var req moveItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Position.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid position: %q", req.Position))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	target := s.editor.FindByEntryID(req.Target)
	if target == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("menu item not found: %s", req.Target))
		return
	}

	changed := s.editor.Move(n.ID, target.ID, req.Position)
	writeJSON(w, http.StatusOK, changeResponse{Changed: changed, Status: s.editor.Status()})
}

func (s *Server) handleDuplicateItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.lookup(w, r)
	if !ok {
		return
	}

	changed := s.editor.Duplicate(n.ID)
	code := http.StatusOK
	if changed {
		code = http.StatusCreated
	}
	writeJSON(w, code, changeResponse{Changed: changed, Status: s.editor.Status()})
}

// lookup resolves the {id} route variable. Callers must hold mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*core.Node, bool) {
	id := mux.Vars(r)["id"]
	n := s.editor.FindByEntryID(id)
	if n == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("menu item not found: %s", id))
		return nil, false
	}
	return n, true
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeEditError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr) && errors.Is(err, core.ErrNodeNotFound):
		writeError(w, http.StatusNotFound, verr.Message)
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Message)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
