package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORS builds the go-chi/cors handler for the admin frontends. An empty list
// falls back to the local dev origins. Credentials are only allowed for an
// explicit origin list, never together with "*".
func CORS(allowed ...string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowed))
	wildcard := false
	for _, o := range allowed {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			wildcard = true
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Callback-Token"},
		AllowCredentials: !wildcard,
		MaxAge:           86400,
	})
}
