package gql

import (
	_ "embed"
	"net/http"
	"strings"
)

//go:embed graphiql.html
var graphiqlPage []byte

// graphiql serves the in-browser IDE for GET requests that carry no query
// and accept HTML. Everything else goes to next.
func graphiql(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Query().Get("query") != "" ||
			!strings.Contains(r.Header.Get("Accept"), "text/html") {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(graphiqlPage)
	})
}
