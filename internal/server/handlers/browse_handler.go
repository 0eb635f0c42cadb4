package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/config"
	"github.com/skiphire/skip-browser/internal/domain/models"
	"github.com/skiphire/skip-browser/internal/service/browse"
)

const disclaimerText = "Images and information shown throughout this website may not reflect " +
	"the exact shape or size specification. Colours may vary. Options and/or accessories " +
	"may be featured at additional cost."

// funnelSteps lists the booking funnel in order; skip selection is step 3.
var funnelSteps = []string{"Postcode", "Waste Type", "Select Skip", "Permit Check", "Choose Date", "Payment"}

// BrowseHandler adapts the browse service to HTTP.
type BrowseHandler struct {
	svc     *browse.Service
	contact config.ContactConfig
	logger  *zap.Logger
}

// NewBrowseHandler constructs the HTTP handler adapter.
func NewBrowseHandler(svc *browse.Service, contact config.ContactConfig, logger *zap.Logger) *BrowseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowseHandler{svc: svc, contact: contact, logger: logger}
}

// CreateSession starts a new browse session.
func (h *BrowseHandler) CreateSession(c *gin.Context) {
	snap := h.svc.CreateSession()
	c.JSON(http.StatusCreated, snap)
}

// GetSession returns the current session snapshot.
func (h *BrowseHandler) GetSession(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SetLocation submits the postcode/area pair and triggers the catalogue
// lookup.
func (h *BrowseHandler) SetLocation(c *gin.Context) {
	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid location payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "postcode and area are required"})
		return
	}

	if err := h.svc.SetLocation(c.Param("id"), req.Postcode, req.Area); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// ListSkips returns the filtered, sorted offer cards for the session.
func (h *BrowseHandler) ListSkips(c *gin.Context) {
	resp, err := h.svc.ListSkips(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateFilters replaces the session's filter state.
func (h *BrowseHandler) UpdateFilters(c *gin.Context) {
	var filters models.FilterState
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.logger.Warn("invalid filter payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter body"})
		return
	}

	if err := h.svc.UpdateFilters(c.Param("id"), filters); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearFilters resets every filter in bulk.
func (h *BrowseHandler) ClearFilters(c *gin.Context) {
	if err := h.svc.ClearFilters(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetSort sets the active sort key.
func (h *BrowseHandler) SetSort(c *gin.Context) {
	var req models.SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort is required"})
		return
	}

	key, err := models.ParseSortKey(req.Sort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetSort(c.Param("id"), key); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Select marks one skip as the current selection.
func (h *BrowseHandler) Select(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skip_id is required"})
		return
	}

	if err := h.svc.Select(c.Param("id"), req.SkipID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Deselect clears the current selection.
func (h *BrowseHandler) Deselect(c *gin.Context) {
	if err := h.svc.Deselect(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetQuote returns the itemized pricing breakdown for the selected skip.
func (h *BrowseHandler) GetQuote(c *gin.Context) {
	quote, err := h.svc.SelectionQuote(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Checkout advances the funnel. The following step is not implemented, so a
// valid request is answered with 501 naming the next step.
func (h *BrowseHandler) Checkout(c *gin.Context) {
	resp, err := h.svc.Checkout(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusNotImplemented, resp)
}

// Content serves the static page content: contact details, disclaimer and
// funnel steps.
func (h *BrowseHandler) Content(c *gin.Context) {
	c.JSON(http.StatusOK, models.ContentResponse{
		Phone:      h.contact.Phone,
		Email:      h.contact.Email,
		Disclaimer: disclaimerText,
		Steps:      funnelSteps,
	})
}

func (h *BrowseHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, browse.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, browse.ErrSkipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "skip not available"})
	case errors.Is(err, browse.ErrNoSelection):
		c.JSON(http.StatusConflict, gin.H{"error": "no skip selected"})
	case errors.Is(err, browse.ErrLocationRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "postcode and area are required"})
	default:
		h.logger.Error("unexpected browse error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
