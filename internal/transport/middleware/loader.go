package middleware

import (
	"net/http"

	"github.com/heartmarshall/ruendict/internal/service/article"
)

// ArticleLoader attaches a fresh article loader to every request, so the
// English rows behind Russian articles are batched and cached per request.
func ArticleLoader(newLoader func() *article.Loader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := article.WithLoader(r.Context(), newLoader())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
