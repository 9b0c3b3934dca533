package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopify-oms-app/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens map[string]string

func (s stubTokens) Verify(raw string) (string, error) {
	if shop, ok := s[raw]; ok {
		return shop, nil
	}
	return "", errors.New("invalid session token")
}

type stubSessions map[string]*domain.Session

func (s stubSessions) LoadOfflineSession(_ context.Context, shop string) (*domain.Session, error) {
	return s[shop], nil
}

func validShop(shop string) bool {
	return strings.HasSuffix(shop, ".myshopify.com")
}

const shop = "my-shop.myshopify.com"

func protected(t *testing.T, sessions stubSessions) http.Handler {
	t.Helper()
	tokens := stubTokens{"good": shop}
	return AdminAuth(tokens, sessions, validShop, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := domain.SessionFromContext(r.Context())
			require.NotNil(t, session)
			_, _ = w.Write([]byte(session.Shop))
		}),
	)
}

func TestAdminAuthPassesSession(t *testing.T) {
	h := protected(t, stubSessions{shop: {ID: "offline_" + shop, Shop: shop, AccessToken: "tok"}})

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shop, rec.Body.String())
}

func TestAdminAuthRedirectsToInstallWithShopParam(t *testing.T) {
	h := protected(t, stubSessions{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app?shop="+shop, nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth?shop=my-shop.myshopify.com", rec.Header().Get("Location"))
}

func TestAdminAuthRejectsWithoutToken(t *testing.T) {
	h := protected(t, stubSessions{})

	for _, target := range []string{"/app", "/app?shop=evil.example.com"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestAdminAuthAsksForReauthorizeWithoutSession(t *testing.T) {
	h := protected(t, stubSessions{})

	req := httptest.NewRequest(http.MethodPost, "/app/onboard", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(ReauthorizeHeader))
	assert.Equal(t, "/auth?shop=my-shop.myshopify.com", rec.Header().Get(ReauthorizeURLHeader))
}

type stubVerifier bool

func (v stubVerifier) VerifyWebhookRequest(*http.Request) bool { return bool(v) }

func TestVerifiedWebhook(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	VerifiedWebhook(stubVerifier(false), zerolog.Nop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/orders/create", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	VerifiedWebhook(stubVerifier(true), zerolog.Nop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/orders/create", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEmbeddedAppHeaders(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req = req.WithContext(domain.WithSession(req.Context(), &domain.Session{Shop: shop}))
	rec := httptest.NewRecorder()
	EmbeddedAppHeaders()(next).ServeHTTP(rec, req)

	assert.Equal(t, "frame-ancestors https://my-shop.myshopify.com https://admin.shopify.com;", rec.Header().Get("Content-Security-Policy"))
}

func TestAccessLog(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)

	h := AccessLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/health"`)
}
