package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/config"
	"github.com/skiphire/skip-browser/internal/domain/models"
	"github.com/skiphire/skip-browser/internal/server/handlers"
	"github.com/skiphire/skip-browser/internal/server/router"
	browsesvc "github.com/skiphire/skip-browser/internal/service/browse"
	cataloguesvc "github.com/skiphire/skip-browser/internal/service/catalogue"
	catalogueclient "github.com/skiphire/skip-browser/pkg/clients/catalogue"
)

const lowestoftJSON = `[
	{"id": 3, "size": 12, "hire_period_days": 14, "price_before_vat": 340, "vat": 20,
	 "postcode": "NR32", "area": "Lowestoft", "allows_heavy_waste": true},
	{"id": 1, "size": 4, "hire_period_days": 14, "price_before_vat": 180, "vat": 20,
	 "postcode": "NR32", "area": "Lowestoft", "allowed_on_road": true},
	{"id": 2, "size": 8, "hire_period_days": 14, "price_before_vat": 260, "vat": 20,
	 "postcode": "NR32", "area": "Lowestoft", "allowed_on_road": true, "allows_heavy_waste": true}
]`

// newTestStack wires the full HTTP surface against a fake upstream catalogue.
func newTestStack(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("postcode") {
		case "NR32":
			_, _ = w.Write([]byte(lowestoftJSON))
		case "ZZ99":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.Error(w, "upstream broken", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(upstream.Close)

	client := catalogueclient.NewClient(config.CatalogueConfig{BaseURL: upstream.URL, TimeoutSeconds: 5})
	catSvc := cataloguesvc.NewService(client, time.Minute, zap.NewNop())
	svc := browsesvc.NewService(catSvc, 5*time.Second, zap.NewNop())
	handler := handlers.NewBrowseHandler(svc, config.ContactConfig{Phone: "0800 808 5475", Email: "hello@skiphire.example"}, zap.NewNop())
	return router.New(handler, zap.NewNop())
}

func doJSON(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, engine *gin.Engine) models.SessionSnapshot {
	t.Helper()
	rec := doJSON(engine, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var snap models.SessionSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotEmpty(t, snap.ID)
	return snap
}

func submitLocation(t *testing.T, engine *gin.Engine, sessionID, postcode, area string) {
	t.Helper()
	rec := doJSON(engine, http.MethodPost, "/api/sessions/"+sessionID+"/location",
		models.LocationRequest{Postcode: postcode, Area: area})
	require.Equal(t, http.StatusAccepted, rec.Code)
}

func waitForSkips(t *testing.T, engine *gin.Engine, sessionID string, want models.FetchStatus) models.SkipListResponse {
	t.Helper()
	var resp models.SkipListResponse
	require.Eventually(t, func() bool {
		rec := doJSON(engine, http.MethodGet, "/api/sessions/"+sessionID+"/skips", nil)
		if rec.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			return false
		}
		return resp.Status == want
	}, 2*time.Second, 5*time.Millisecond)
	return resp
}

func TestBrowseFunnel(t *testing.T) {
	engine := newTestStack(t)
	snap := createSession(t, engine)
	submitLocation(t, engine, snap.ID, "NR32", "Lowestoft")
	resp := waitForSkips(t, engine, snap.ID, models.FetchSuccess)

	t.Run("ListSortedByPriceAscending", func(t *testing.T) {
		require.Len(t, resp.Skips, 3)
		assert.Equal(t, []int{4, 8, 12}, []int{resp.Skips[0].Size, resp.Skips[1].Size, resp.Skips[2].Size})
		assert.Equal(t, []int{216, 312, 408}, []int{resp.Skips[0].TotalPrice, resp.Skips[1].TotalPrice, resp.Skips[2].TotalPrice})
		assert.Empty(t, resp.Message)
	})

	t.Run("SizeFilter", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPut, "/api/sessions/"+snap.ID+"/filters",
			models.FilterState{Sizes: []int{8}})
		require.Equal(t, http.StatusNoContent, rec.Code)

		filtered := waitForSkips(t, engine, snap.ID, models.FetchSuccess)
		require.Len(t, filtered.Skips, 1)
		assert.Equal(t, 8, filtered.Skips[0].Size)
		assert.Equal(t, 312, filtered.Skips[0].TotalPrice)
	})

	t.Run("MinPriceFilter", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPut, "/api/sessions/"+snap.ID+"/filters",
			models.FilterState{PriceMin: "300"})
		require.Equal(t, http.StatusNoContent, rec.Code)

		filtered := waitForSkips(t, engine, snap.ID, models.FetchSuccess)
		require.Len(t, filtered.Skips, 2)
		assert.Equal(t, []int{8, 12}, []int{filtered.Skips[0].Size, filtered.Skips[1].Size})
	})

	t.Run("ClearFilters", func(t *testing.T) {
		rec := doJSON(engine, http.MethodDelete, "/api/sessions/"+snap.ID+"/filters", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		cleared := waitForSkips(t, engine, snap.ID, models.FetchSuccess)
		assert.Len(t, cleared.Skips, 3)
	})

	t.Run("Sort", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPut, "/api/sessions/"+snap.ID+"/sort",
			models.SortRequest{Sort: "size_desc"})
		require.Equal(t, http.StatusNoContent, rec.Code)

		sorted := waitForSkips(t, engine, snap.ID, models.FetchSuccess)
		assert.Equal(t, []int{12, 8, 4}, []int{sorted.Skips[0].Size, sorted.Skips[1].Size, sorted.Skips[2].Size})

		rec = doJSON(engine, http.MethodPut, "/api/sessions/"+snap.ID+"/sort",
			models.SortRequest{Sort: "alphabetical"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SelectionAndQuote", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPut, "/api/sessions/"+snap.ID+"/selection",
			models.SelectionRequest{SkipID: 2})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(engine, http.MethodGet, "/api/sessions/"+snap.ID+"/selection", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var quote models.Quote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
		assert.Equal(t, 2, quote.SkipID)
		assert.InDelta(t, 52.0, quote.VATAmount, 1e-9)
		assert.InDelta(t, 312.0, quote.Total, 1e-9)
	})

	t.Run("CheckoutStub", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPost, "/api/sessions/"+snap.ID+"/checkout", nil)
		require.Equal(t, http.StatusNotImplemented, rec.Code)

		var out models.CheckoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "permit_check", out.NextStep)
	})

	t.Run("Deselect", func(t *testing.T) {
		rec := doJSON(engine, http.MethodDelete, "/api/sessions/"+snap.ID+"/selection", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(engine, http.MethodGet, "/api/sessions/"+snap.ID+"/selection", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestNoSkipsForLocation(t *testing.T) {
	engine := newTestStack(t)
	snap := createSession(t, engine)
	submitLocation(t, engine, snap.ID, "ZZ99", "Nowhere")

	resp := waitForSkips(t, engine, snap.ID, models.FetchSuccess)
	assert.Empty(t, resp.Skips)
	assert.Equal(t, "No skips are available for this location.", resp.Message)
}

func TestUpstreamFailureShowsErrorBanner(t *testing.T) {
	engine := newTestStack(t)
	snap := createSession(t, engine)
	submitLocation(t, engine, snap.ID, "BROKEN", "Nowhere")

	resp := waitForSkips(t, engine, snap.ID, models.FetchError)
	assert.Empty(t, resp.Skips)
	assert.NotEmpty(t, resp.Message)
}

func TestRequestValidation(t *testing.T) {
	engine := newTestStack(t)
	snap := createSession(t, engine)

	t.Run("UnknownSession", func(t *testing.T) {
		rec := doJSON(engine, http.MethodGet, "/api/sessions/nope/skips", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MissingLocationFields", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPost, "/api/sessions/"+snap.ID+"/location",
			map[string]string{"postcode": "NR32"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SelectionBeforeLookup", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPut, "/api/sessions/"+snap.ID+"/selection",
			models.SelectionRequest{SkipID: 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStaticEndpoints(t *testing.T) {
	engine := newTestStack(t)

	t.Run("Healthz", func(t *testing.T) {
		rec := doJSON(engine, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Content", func(t *testing.T) {
		rec := doJSON(engine, http.MethodGet, "/api/content", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var content models.ContentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
		assert.Equal(t, "0800 808 5475", content.Phone)
		assert.Contains(t, content.Disclaimer, "may not reflect")
		assert.Equal(t, []string{"Postcode", "Waste Type", "Select Skip", "Permit Check", "Choose Date", "Payment"}, content.Steps)
	})
}
