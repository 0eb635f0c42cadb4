package catalogue

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skiphire/skip-browser/internal/config"
	"github.com/skiphire/skip-browser/internal/domain/models"
)

const byLocationPath = "/api/skips/by-location"

// Client exposes the remote skip catalogue operations used by the application.
type Client interface {
	FetchByLocation(ctx context.Context, postcode, area string) ([]models.Skip, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a catalogue API client using the provided configuration values.
func NewClient(cfg config.CatalogueConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &APIClient{httpClient: restyClient}
}

// StatusError reports a non-success response from the catalogue service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalogue api error: status=%d body=%s", e.Code, e.Body)
}

// FetchByLocation performs a read-only lookup of the offers available for the
// given postcode/area pair. Zero offers is a valid result, distinct from an
// error.
func (c *APIClient) FetchByLocation(ctx context.Context, postcode, area string) ([]models.Skip, error) {
	var skips []models.Skip

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("postcode", postcode).
		SetQueryParam("area", area).
		SetResult(&skips).
		Get(byLocationPath)
	if err != nil {
		return nil, fmt.Errorf("fetch skips by location: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}

	if skips == nil {
		skips = []models.Skip{}
	}
	return skips, nil
}
