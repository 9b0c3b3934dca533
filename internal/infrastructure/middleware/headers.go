package middleware

import (
	"net/http"

	"shopify-oms-app/internal/domain"
)

// EmbeddedAppHeaders allows the admin pages to be framed by the shop's admin
// and by admin.shopify.com only. Must run after AdminAuth.
func EmbeddedAppHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ancestors := "https://admin.shopify.com"
			if session := domain.SessionFromContext(r.Context()); session != nil {
				ancestors = "https://" + session.Shop + " " + ancestors
			}
			w.Header().Set("Content-Security-Policy", "frame-ancestors "+ancestors+";")
			next.ServeHTTP(w, r)
		})
	}
}
