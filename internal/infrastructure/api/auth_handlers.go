package api

import (
	"errors"
	"net/http"

	"shopify-oms-app/internal/application"
	"shopify-oms-app/internal/domain"

	"github.com/rs/zerolog"
)

const stateCookie = "shopify_oauth_state"

// authBeginHandler starts the OAuth install for ?shop=
func authBeginHandler(shopify *application.ShopifyService, secure bool, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if shop == "" {
			http.Error(w, "shop parameter is required", http.StatusBadRequest)
			return
		}

		authURL, state, err := shopify.BeginInstall(shop)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				http.Error(w, verr.Error(), http.StatusBadRequest)
				return
			}
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to begin install")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/auth",
			MaxAge:   600,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// authCallbackHandler completes the install and sends the merchant into the
// embedded app
func authCallbackHandler(shopify *application.ShopifyService, apiKey string, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var state string
		if c, err := r.Cookie(stateCookie); err == nil {
			state = c.Value
		}

		session, err := shopify.CompleteInstall(r.Context(), r.URL, state)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				logger.Warn().Err(err).Str("shop", r.URL.Query().Get("shop")).Msg("Rejected OAuth callback")
				http.Error(w, verr.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to complete installation", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/auth", MaxAge: -1, HttpOnly: true})
		http.Redirect(w, r, domain.ShopAdminURL(session.Shop, apiKey), http.StatusFound)
	}
}
