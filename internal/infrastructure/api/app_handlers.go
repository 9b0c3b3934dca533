package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"shopify-oms-app/internal/application"
	"shopify-oms-app/internal/domain"

	"github.com/rs/zerolog"
)

// form reads a JSON object or a url-encoded form into a flat string map
func form(r *http.Request) (map[string]string, error) {
	out := map[string]string{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]interface{}
		dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch v := v.(type) {
			case string:
				out[k] = v
			case json.Number:
				out[k] = v.String()
			}
		}
		return out, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out, nil
}

func fieldErrors(w http.ResponseWriter, errs domain.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": errs})
}

type indexResponse struct {
	Shop       string                        `json:"shop"`
	AdminURL   string                        `json:"admin_url"`
	Onboarding *application.OnboardingStatus `json:"onboarding"`
	Links      map[string]string             `json:"links"`
}

func indexHandler(onboarding *application.OnboardingService, apiKey string, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := domain.SessionFromContext(r.Context())

		status, err := onboarding.Status(r.Context(), session.Shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", session.Shop).Msg("Failed to load onboarding status")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, indexResponse{
			Shop:       session.Shop,
			AdminURL:   domain.ShopAdminURL(session.Shop, apiKey),
			Onboarding: status,
			Links: map[string]string{
				"products": "/app/products",
				"orders":   "/app/orders",
				"onboard":  "/app/onboard",
				"reseller": "/app/reseller",
			},
		})
	}
}

func onboardingStatusHandler(onboarding *application.OnboardingService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := domain.SessionFromContext(r.Context())
		status, err := onboarding.Status(r.Context(), session.Shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", session.Shop).Msg("Failed to load onboarding status")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func onboardHandler(onboarding *application.OnboardingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := onboarding.Onboard(r.Context(), domain.SessionFromContext(r.Context()))
		writeJSON(w, http.StatusOK, result)
	}
}

func resellerHandler(reseller *application.ResellerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := form(r)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		result := reseller.Connect(r.Context(), domain.SessionFromContext(r.Context()), values["tokenInput"])
		writeJSON(w, http.StatusOK, result)
	}
}

func productFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"fields": []string{"title", "price"},
		})
	}
}

func createProductHandler(products *application.ProductService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := form(r)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		session := domain.SessionFromContext(r.Context())
		_, errs, err := products.Create(r.Context(), session, domain.ProductInput{
			Title: values["title"],
			Price: values["price"],
		})
		if err != nil {
			logger.Error().Err(err).Str("shop", session.Shop).Msg("Failed to create product")
			http.Error(w, "Failed to create product", http.StatusInternalServerError)
			return
		}
		if len(errs) > 0 {
			fieldErrors(w, errs)
			return
		}
		http.Redirect(w, r, "/app", http.StatusSeeOther)
	}
}

func orderFormHandler(orders *application.OrderService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := orders.ProductOptions(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load products")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"products": options})
	}
}

func createOrderHandler(orders *application.OrderService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := form(r)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		session := domain.SessionFromContext(r.Context())
		_, errs, err := orders.Create(r.Context(), session, domain.OrderInput{
			Name:      values["orderName"],
			ProductID: values["productId"],
		})
		if err != nil {
			logger.Error().Err(err).Str("shop", session.Shop).Msg("Failed to create order")
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
			return
		}
		if len(errs) > 0 {
			fieldErrors(w, errs)
			return
		}
		http.Redirect(w, r, "/app", http.StatusSeeOther)
	}
}
