package devtools

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/vango-dev/minivue/pkg/memdom"
)

// TreeNode is the JSON form of a memdom node.
type TreeNode struct {
	ID       int               `json:"id"`
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Events   []string          `json:"events,omitempty"`
	Children []*TreeNode       `json:"children,omitempty"`
}

func toTree(n *memdom.Node) *TreeNode {
	if n.Type == memdom.TextNode {
		return &TreeNode{ID: n.ID, Text: n.Text}
	}
	t := &TreeNode{ID: n.ID, Tag: n.Tag, Attrs: n.Attrs(), Events: n.Events()}
	for _, c := range n.Children {
		t.Children = append(t.Children, toTree(c))
	}
	return t
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var html string
	if !s.call(w, r, func() { html = s.app.HTML() }) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleTreeJSON(w http.ResponseWriter, r *http.Request) {
	var tree *TreeNode
	if !s.call(w, r, func() {
		if c := s.app.Container(); c != nil {
			tree = toTree(c)
		}
	}) {
		return
	}
	if tree == nil {
		writeError(w, http.StatusConflict, "app is not mounted")
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// StateResponse is returned by POST /state.
type StateResponse struct {
	Updated []string `json:"updated"`
	HTML    string   `json:"html"`
}

// handleState merges a JSON object into the root setup state. Keys that
// hold refs are written through the ref; other keys are replaced.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxStateBytes))
	if err := dec.Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object: "+err.Error())
		return
	}

	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		resp    StateResponse
		missing bool
	)
	ok := s.call(w, r, func() {
		state := s.app.State()
		if state == nil {
			missing = true
			return
		}
		for _, k := range keys {
			if state.Set(k, patch[k]) {
				resp.Updated = append(resp.Updated, k)
			}
		}
		s.app.Scheduler().NextTick(func() { resp.HTML = s.app.HTML() })
	})
	if !ok {
		return
	}
	if missing {
		writeError(w, http.StatusConflict, "root component has no setup state")
		return
	}

	s.logger.Debug("devtools state patched", "keys", resp.Updated)
	writeJSON(w, http.StatusOK, resp)
}
