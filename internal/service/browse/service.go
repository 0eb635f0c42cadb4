// Package browse owns the per-session state of the skip selection step and
// orchestrates catalogue lookups, filtering, sorting and selection on top of
// the pure pipeline functions.
package browse

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/domain/models"
	"github.com/skiphire/skip-browser/internal/pipeline"
	cataloguesvc "github.com/skiphire/skip-browser/internal/service/catalogue"
)

var (
	// ErrSkipNotFound is returned when a selection targets a skip that is
	// not part of the current filtered view.
	ErrSkipNotFound = errors.New("skip not available for selection")
	// ErrNoSelection is returned when a quote or checkout is requested
	// without a selected skip.
	ErrNoSelection = errors.New("no skip selected")
	// ErrLocationRequired is returned when either half of the location pair
	// is empty.
	ErrLocationRequired = errors.New("postcode and area are required")
)

const (
	errorMessage    = "Could not load skips for this location. Please try again."
	noSkipsMessage  = "No skips are available for this location."
	noMatchMessage  = "No skips match the current filters."
	checkoutMessage = "Permit check is not available yet."

	// CheckoutNextStep names the funnel step that follows skip selection.
	CheckoutNextStep = "permit_check"
)

// Service implements the browse funnel step over catalogue lookups.
type Service struct {
	catalogue    *cataloguesvc.Service
	sessions     *SessionManager
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewService wires a new browse service instance.
func NewService(catalogueSvc *cataloguesvc.Service, fetchTimeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalogue:    catalogueSvc,
		sessions:     NewSessionManager(),
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// CreateSession starts a new browse session.
func (s *Service) CreateSession() models.SessionSnapshot {
	snap := s.sessions.Create()
	s.logger.Info("session created", zap.String("session_id", snap.ID))
	return snap
}

// Snapshot returns the current state of a session.
func (s *Service) Snapshot(id string) (models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	err := s.sessions.View(id, func(sess *session) error {
		snap = sess.snapshot()
		return nil
	})
	return snap, err
}

// SetLocation records the postcode/area pair and triggers an asynchronous
// catalogue lookup for exactly that pair. Submitting a new location while a
// lookup is in flight supersedes it: only the most recently initiated
// request's result is applied.
func (s *Service) SetLocation(id, postcode, area string) error {
	if postcode == "" || area == "" {
		return ErrLocationRequired
	}

	var generation uint64
	err := s.sessions.Update(id, func(sess *session) error {
		sess.postcode = postcode
		sess.area = area
		sess.status = models.FetchLoading
		sess.skips = nil
		sess.selected = nil
		sess.generation++
		generation = sess.generation
		return nil
	})
	if err != nil {
		return err
	}

	go s.runLookup(id, generation, postcode, area)
	return nil
}

// runLookup resolves the catalogue lookup off the request goroutine and
// applies the result only if the session's generation still matches, so a
// late response from a superseded request never overwrites newer data.
func (s *Service) runLookup(id string, generation uint64, postcode, area string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	skips, lookupErr := s.catalogue.Lookup(ctx, postcode, area)

	err := s.sessions.Update(id, func(sess *session) error {
		if sess.generation != generation {
			s.logger.Debug("discarding superseded lookup result",
				zap.String("session_id", id),
				zap.Uint64("generation", generation))
			return nil
		}
		if lookupErr != nil {
			sess.status = models.FetchError
			sess.skips = nil
			return nil
		}
		sess.status = models.FetchSuccess
		sess.skips = skips
		return nil
	})
	if err != nil {
		// Session evicted while the lookup was in flight; nothing to apply.
		s.logger.Debug("lookup finished for missing session", zap.String("session_id", id))
	}
}

// ListSkips runs the filter/sort pipeline over the session's offers and
// renders the card list. While the lookup is loading or has errored the list
// is empty, never stale data from a prior location.
func (s *Service) ListSkips(id string) (models.SkipListResponse, error) {
	resp := models.SkipListResponse{Skips: []models.SkipCard{}}
	err := s.sessions.View(id, func(sess *session) error {
		resp.Status = sess.status
		resp.Postcode = sess.postcode
		resp.Area = sess.area

		switch sess.status {
		case models.FetchError:
			resp.Message = errorMessage
			return nil
		case models.FetchIdle, models.FetchLoading:
			return nil
		}

		visible := pipeline.Sort(pipeline.Filter(sess.skips, sess.filters), sess.sort)
		for _, skip := range visible {
			selected := sess.selected != nil && *sess.selected == skip.ID
			resp.Skips = append(resp.Skips, pipeline.BuildCard(skip, selected))
		}

		if len(resp.Skips) == 0 {
			if len(sess.skips) == 0 {
				resp.Message = noSkipsMessage
			} else {
				resp.Message = noMatchMessage
			}
		}
		return nil
	})
	return resp, err
}

// UpdateFilters replaces the session's filter state.
func (s *Service) UpdateFilters(id string, filters models.FilterState) error {
	return s.sessions.Update(id, func(sess *session) error {
		sess.filters = filters
		return nil
	})
}

// ClearFilters resets every filter in bulk. The sort key is untouched.
func (s *Service) ClearFilters(id string) error {
	return s.sessions.Update(id, func(sess *session) error {
		sess.filters = models.FilterState{}
		return nil
	})
}

// SetSort sets the active sort key.
func (s *Service) SetSort(id string, key models.SortKey) error {
	return s.sessions.Update(id, func(sess *session) error {
		sess.sort = key
		return nil
	})
}

// Select marks one skip as the current selection, replacing any prior
// selection. The skip must be part of the current filtered view, which also
// guarantees a forbidden offer can never be selected.
func (s *Service) Select(id string, skipID int) error {
	return s.sessions.Update(id, func(sess *session) error {
		if sess.status != models.FetchSuccess {
			return ErrSkipNotFound
		}
		for _, skip := range pipeline.Filter(sess.skips, sess.filters) {
			if skip.ID == skipID {
				chosen := skipID
				sess.selected = &chosen
				return nil
			}
		}
		return ErrSkipNotFound
	})
}

// Deselect clears the current selection.
func (s *Service) Deselect(id string) error {
	return s.sessions.Update(id, func(sess *session) error {
		sess.selected = nil
		return nil
	})
}

// SelectionQuote computes the itemized detail-view pricing for the selected
// skip.
func (s *Service) SelectionQuote(id string) (models.Quote, error) {
	var quote models.Quote
	err := s.sessions.View(id, func(sess *session) error {
		if sess.selected == nil {
			return ErrNoSelection
		}
		for _, skip := range sess.skips {
			if skip.ID == *sess.selected {
				quote = pipeline.BuildQuote(skip)
				return nil
			}
		}
		return ErrSkipNotFound
	})
	return quote, err
}

// Checkout validates that a skip is selected and names the next funnel step.
// The step itself is not implemented.
func (s *Service) Checkout(id string) (models.CheckoutResponse, error) {
	var resp models.CheckoutResponse
	err := s.sessions.View(id, func(sess *session) error {
		if sess.selected == nil {
			return ErrNoSelection
		}
		resp = models.CheckoutResponse{
			NextStep: CheckoutNextStep,
			Message:  checkoutMessage,
		}
		return nil
	})
	return resp, err
}

// EvictIdle removes sessions untouched beyond maxIdle. Called by the janitor.
func (s *Service) EvictIdle(maxIdle time.Duration) {
	if evicted := s.sessions.EvictIdle(maxIdle); evicted > 0 {
		s.logger.Info("evicted idle sessions", zap.Int("count", evicted))
	}
}
