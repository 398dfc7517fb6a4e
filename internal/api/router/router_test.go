package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealspot/subscription-deals-site/internal/carousel"
	"github.com/dealspot/subscription-deals-site/internal/catalog"
	"github.com/dealspot/subscription-deals-site/internal/chat"
	"github.com/dealspot/subscription-deals-site/internal/contact"
	"github.com/dealspot/subscription-deals-site/internal/intent"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

func newTestRouter(adminSecret string) http.Handler {
	logger := logging.New("error")
	cat := catalog.Default()
	matcher := intent.NewMatcher(cat)
	chatCfg := chat.Config{ReplyDelay: time.Millisecond, ModalOpenDelay: time.Millisecond, HistoryLimit: 50}

	return New(&Config{
		Logger:          logger,
		CatalogHandler:  catalog.NewHandler(cat, logger),
		ChatHandler:     chat.NewHandler(matcher, nil, nil, chatCfg, []byte("// widget"), logger),
		ContactHandler:  contact.NewHandler(contact.NewInMemoryRepository(), nil, nil, logger),
		CarouselHandler: carousel.NewHandler(carousel.DefaultConfig()),
		AdminJWTSecret:  adminSecret,
	})
}

func TestRoutes_Public(t *testing.T) {
	r := newTestRouter("")

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/widget.js", "", http.StatusOK},
		{http.MethodGet, "/api/deals", "", http.StatusOK},
		{http.MethodGet, "/api/deals/netflix", "", http.StatusOK},
		{http.MethodGet, "/api/deals/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/api/carousel/config", "", http.StatusOK},
		{http.MethodGet, "/api/chat/suggestions", "", http.StatusOK},
		{http.MethodGet, "/api/chat/history", "", http.StatusBadRequest},
		{http.MethodPost, "/api/chat/message", `{"text":"hello"}`, http.StatusOK},
		{http.MethodPost, "/api/contact", `{"name":"A","email":"a@e.com","message":"m"}`, http.StatusCreated},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		if tt.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRoutes_Health(t *testing.T) {
	r := newTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRoutes_AdminRequiresJWT(t *testing.T) {
	r := newTestRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/admin/contact/messages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/admin/contact/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_AdminAbsentWithoutSecret(t *testing.T) {
	r := newTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/admin/contact/messages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
