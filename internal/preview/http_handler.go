package preview

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rpattn/gqlfilter/internal/schema"

	"github.com/vektah/gqlparser/v2/ast"
)

// Handler serves generated filter types for inspection.
type Handler struct {
	defs  []*ast.Definition
	index map[string]*ast.Definition
}

// NewHTTPHandler serves defs:
//
//	GET /schema.graphql   all types as SDL
//	GET /types            JSON summary of every type
//	GET /types/{name}     one type as SDL
func NewHTTPHandler(defs []*ast.Definition) http.Handler {
	h := &Handler{defs: defs, index: make(map[string]*ast.Definition, len(defs))}
	for _, def := range defs {
		h.index[def.Name] = def
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method != http.MethodGet:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	case r.URL.Path == "/schema.graphql":
		h.writeSDL(w, h.defs)
	case r.URL.Path == "/types" || r.URL.Path == "/types/":
		h.handleListTypes(w)
	case strings.HasPrefix(r.URL.Path, "/types/"):
		h.handleType(w, strings.TrimPrefix(r.URL.Path, "/types/"))
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

type typeSummary struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Fields []fieldSummary `json:"fields,omitempty"`
	Values []string       `json:"values,omitempty"`
}

type fieldSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *Handler) handleListTypes(w http.ResponseWriter) {
	summaries := make([]typeSummary, 0, len(h.defs))
	for _, def := range h.defs {
		summary := typeSummary{Name: def.Name, Kind: string(def.Kind)}
		for _, f := range def.Fields {
			summary.Fields = append(summary.Fields, fieldSummary{Name: f.Name, Type: f.Type.String()})
		}
		for _, v := range def.EnumValues {
			summary.Values = append(summary.Values, v.Name)
		}
		summaries = append(summaries, summary)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) handleType(w http.ResponseWriter, name string) {
	def, ok := h.index[name]
	if !ok {
		http.Error(w, "type not found", http.StatusNotFound)
		return
	}
	h.writeSDL(w, []*ast.Definition{def})
}

func (h *Handler) writeSDL(w http.ResponseWriter, defs []*ast.Definition) {
	w.Header().Set("Content-Type", "application/graphql; charset=utf-8")
	_, _ = w.Write([]byte(schema.Render(defs)))
}
