package server

import (
	"net/http"
	"strings"
)

type RouteDoc struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Group       string `json:"group"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

// RouteGroup is one section of the admin route listing.
type RouteGroup struct {
	Name   string
	Routes []RouteDoc
}

type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	if doc.Group == "" {
		doc.Group = groupFor(doc.Pattern)
	}
	rr.routes = append(rr.routes, doc)
}

func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// ByGroup buckets routes for display, groups in first-registered order.
func (rr *RouteRegistry) ByGroup() []RouteGroup {
	var groups []RouteGroup
	index := map[string]int{}
	for _, doc := range rr.routes {
		i, ok := index[doc.Group]
		if !ok {
			i = len(groups)
			index[doc.Group] = i
			groups = append(groups, RouteGroup{Name: doc.Group})
		}
		groups[i].Routes = append(groups[i].Routes, doc)
	}
	return groups
}

// groupFor derives the section from the pattern: API routes group by their
// first segment after /api, probes under "health", admin under "admin".
func groupFor(pattern string) string {
	switch {
	case pattern == "/healthz" || pattern == "/readyz":
		return "health"
	case strings.HasPrefix(pattern, "/_/"):
		return "admin"
	case strings.HasPrefix(pattern, "/api/"):
		rest := strings.TrimPrefix(pattern, "/api/")
		if i := strings.IndexByte(rest, '/'); i > 0 {
			rest = rest[:i]
		}
		if rest != "" {
			return rest
		}
	}
	return "misc"
}

func Handle(mux *http.ServeMux, rr *RouteRegistry, methodAndPattern, summary, exampleBody string, h http.HandlerFunc) {
	parts := strings.SplitN(methodAndPattern, " ", 2)
	method, pattern := parts[0], ""
	if len(parts) == 2 {
		pattern = parts[1]
	}
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary, ExampleBody: exampleBody})
	mux.HandleFunc(methodAndPattern, h)
}
