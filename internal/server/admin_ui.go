package server

import (
	"html/template"
	"net/http"
)

var adminTmpl = template.Must(template.New("admin").Parse(`<!doctype html>
<html>
<head><title>dentaltycoon routes</title>
<style>
body { font-family: monospace; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
td, th { border: 1px solid #999; padding: 4px 10px; text-align: left; }
h2 { margin-bottom: 0.3rem; }
</style>
</head>
<body>
<h1>dentaltycoon :{{.Port}}</h1>
{{range .Groups}}<h2>{{.Name}}</h2>
<table>
<tr><th>Method</th><th>Pattern</th><th>Summary</th><th>Example</th></tr>
{{range .Routes}}<tr><td>{{.Method}}</td><td>{{.Pattern}}</td><td>{{.Summary}}</td><td>{{.ExampleBody}}</td></tr>
{{end}}</table>
{{end}}</body>
</html>`))

type adminPageData struct {
	Port   string
	Groups []RouteGroup
}

func RegisterAdminUI(mux *http.ServeMux, rr *RouteRegistry, port string) {
	// JSON list (handy for tooling)
	mux.HandleFunc("GET /_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})

	// HTML, one table per route group
	mux.HandleFunc("GET /_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := adminPageData{Port: port, Groups: rr.ByGroup()}
		if err := adminTmpl.Execute(w, data); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	})
}
