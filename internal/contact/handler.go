package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dealspot/subscription-deals-site/internal/observability/metrics"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

// Notifier forwards an accepted submission to the site owner.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub *Submission) error
}

// Handler handles HTTP requests for contact-form submissions
type Handler struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.SiteMetrics
	logger   *logging.Logger
}

// NewHandler creates a new contact handler. notifier may be nil.
func NewHandler(repo Repository, notifier Notifier, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Submission outcome copy, mirrored by the page's status line.
const (
	successStatusText = "Thanks for your message! I'll get back to you soon."
	failureStatusText = "Oops! There was a problem submitting your form. Please try again."
)

// Submit handles POST /api/contact. The page submits its native form
// encoding; JSON is accepted for API callers. Exactly one store write and
// one best-effort notification per submission; no retry on failure.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmission(r)
	if err != nil {
		h.metrics.ObserveContactSubmission("rejected")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.repo.Create(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			h.metrics.ObserveContactSubmission("rejected")
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		h.logger.Error("failed to store contact submission", "error", err)
		h.metrics.ObserveContactSubmission("failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": failureStatusText,
		})
		return
	}

	if h.notifier != nil {
		if err := h.notifier.NotifySubmission(r.Context(), sub); err != nil {
			// Notification is best effort; the submission already succeeded.
			h.logger.Error("failed to notify owner of submission", "error", err, "id", sub.ID)
		}
	}

	h.logger.Info("contact submission received", "id", sub.ID, "name", sub.Name)
	h.metrics.ObserveContactSubmission("accepted")

	writeJSON(w, http.StatusCreated, map[string]string{
		"status":  "received",
		"id":      sub.ID,
		"message": successStatusText,
	})
}

// ListSubmissionsResponse is the response for listing submissions
type ListSubmissionsResponse struct {
	Messages []*Submission `json:"messages"`
	Count    int           `json:"count"`
	Offset   int           `json:"offset"`
	Limit    int           `json:"limit"`
}

// List handles GET /admin/contact/messages requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	subs, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list contact submissions", "error", err)
		http.Error(w, "failed to list submissions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListSubmissionsResponse{
		Messages: subs,
		Count:    len(subs),
		Offset:   filter.Offset,
		Limit:    filter.Limit,
	})
}

func decodeSubmission(r *http.Request) (*CreateSubmissionRequest, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req CreateSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	// The page's form posts its field set natively.
	return &CreateSubmissionRequest{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingMessage)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
