package carousel

import (
	"encoding/json"
	"net/http"
)

// Autoplay controls the rotator's continuous auto-advance.
type Autoplay struct {
	DelayMS              int  `json:"delay"`
	DisableOnInteraction bool `json:"disableOnInteraction"`
	PauseOnMouseEnter    bool `json:"pauseOnMouseEnter"`
}

// Breakpoint overrides slide count and spacing at a viewport width.
type Breakpoint struct {
	SlidesPerView int `json:"slidesPerView"`
	SpaceBetween  int `json:"spaceBetween"`
}

// Pagination exposes the clickable position indicators.
type Pagination struct {
	Clickable bool `json:"clickable"`
}

// Config is the rotator configuration the page feeds to its third-party
// carousel widget. Field names follow the widget's option vocabulary.
type Config struct {
	Loop          bool               `json:"loop"`
	SlidesPerView int                `json:"slidesPerView"`
	SpaceBetween  int                `json:"spaceBetween"`
	GrabCursor    bool               `json:"grabCursor"`
	Autoplay      Autoplay           `json:"autoplay"`
	Breakpoints   map[int]Breakpoint `json:"breakpoints"`
	Pagination    Pagination         `json:"pagination"`
}

// DefaultConfig returns the deal carousel's fixed configuration: one slide
// by default, two from 640px, three from 1024px, wrapping at both ends,
// auto-advancing every 2.5s and pausing on hover.
func DefaultConfig() Config {
	return Config{
		Loop:          true,
		SlidesPerView: 1,
		SpaceBetween:  30,
		GrabCursor:    true,
		Autoplay: Autoplay{
			DelayMS:              2500,
			DisableOnInteraction: false,
			PauseOnMouseEnter:    true,
		},
		Breakpoints: map[int]Breakpoint{
			640:  {SlidesPerView: 2, SpaceBetween: 30},
			1024: {SlidesPerView: 3, SpaceBetween: 35},
		},
		Pagination: Pagination{Clickable: true},
	}
}

// Handler serves the carousel configuration.
type Handler struct {
	cfg Config
}

// NewHandler creates a carousel config handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{cfg: cfg}
}

// GetConfig handles GET /api/carousel/config. The configuration is fixed
// for the process lifetime, so clients may cache it.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_ = json.NewEncoder(w).Encode(h.cfg)
}
