package carousel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Loop)
	assert.Equal(t, 1, cfg.SlidesPerView)
	assert.Equal(t, 2500, cfg.Autoplay.DelayMS)
	assert.True(t, cfg.Autoplay.PauseOnMouseEnter)
	assert.False(t, cfg.Autoplay.DisableOnInteraction)
	assert.Equal(t, Breakpoint{SlidesPerView: 2, SpaceBetween: 30}, cfg.Breakpoints[640])
	assert.Equal(t, Breakpoint{SlidesPerView: 3, SpaceBetween: 35}, cfg.Breakpoints[1024])
	assert.True(t, cfg.Pagination.Clickable)
}

func TestGetConfig(t *testing.T) {
	h := NewHandler(DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/carousel/config", nil)
	w := httptest.NewRecorder()
	h.GetConfig(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age")

	var cfg Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}
