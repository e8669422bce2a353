package macro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBCChURL is the Banco Central de Chile statistics endpoint.
const DefaultBCChURL = "https://si3.bcentral.cl/SieteRestWS/SieteRestWS.ashx"

// BCChClient fetches index series from the Banco Central REST API. Transient
// transport failures and 5xx responses are retried with exponential backoff;
// anything else fails immediately.
type BCChClient struct {
	httpClient      *http.Client
	baseURL         string
	user            string
	password        string
	maxRetries      int
	initialInterval time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewBCChClient creates a client for the given endpoint and credentials.
func NewBCChClient(baseURL, user, password string, logger zerolog.Logger) *BCChClient {
	if baseURL == "" {
		baseURL = DefaultBCChURL
	}

	return &BCChClient{
		httpClient:      &http.Client{Timeout: 15 * time.Second},
		baseURL:         baseURL,
		user:            user,
		password:        password,
		maxRetries:      3,
		initialInterval: 200 * time.Millisecond,
		maxElapsedTime:  30 * time.Second,
		logger:          logger,
	}
}

// UF returns the Unidad de Fomento at the given date.
func (c *BCChClient) UF(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	// Daily series; look a few days back so weekends and holidays still
	// yield an observation.
	return c.latest(ctx, SeriesUF, date.AddDate(0, 0, -7), date)
}

// UTM returns the Unidad Tributaria Mensual for the month of the given date.
func (c *BCChClient) UTM(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	// Monthly series; the current month's value is published at its start.
	return c.latest(ctx, SeriesUTM, date.AddDate(0, -2, 0), date)
}

type seriesResponse struct {
	Codigo      int    `json:"Codigo"`
	Descripcion string `json:"Descripcion"`
	Series      struct {
		Obs []observation `json:"Obs"`
	} `json:"Series"`
}

type observation struct {
	IndexDateString string `json:"indexDateString"`
	Value           string `json:"value"`
	StatusCode      string `json:"statusCode"`
}

// latest fetches a series window and returns its most recent valid value.
func (c *BCChClient) latest(ctx context.Context, series string, from, to time.Time) (decimal.Decimal, error) {
	var resp seriesResponse

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxElapsedTime = c.maxElapsedTime

	retryCount := 0
	err := backoff.Retry(func() error {
		err := c.fetch(ctx, series, from, to, &resp)
		if err == nil {
			return nil
		}

		var transient *transientError
		if !errors.As(err, &transient) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > c.maxRetries {
			return backoff.Permanent(err)
		}

		c.logger.Warn().
			Err(err).
			Str("series", series).
			Int("retry", retryCount).
			Msg("transient index feed error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return decimal.Zero, err
	}

	if resp.Codigo != 0 {
		return decimal.Zero, fmt.Errorf("series %s: feed error %d: %s", series, resp.Codigo, resp.Descripcion)
	}

	obs := resp.Series.Obs
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].StatusCode != "OK" {
			continue
		}

		v, err := decimal.NewFromString(obs[i].Value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("series %s: bad value %q: %w", series, obs[i].Value, err)
		}

		return v, nil
	}

	return decimal.Zero, fmt.Errorf("series %s: no valid observation between %s and %s",
		series, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *BCChClient) fetch(ctx context.Context, series string, from, to time.Time, out *seriesResponse) error {
	q := url.Values{}
	q.Set("user", c.user)
	q.Set("pass", c.password)
	q.Set("function", "GetSeries")
	q.Set("timeseries", series)
	q.Set("firstdate", from.Format("2006-01-02"))
	q.Set("lastdate", to.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transientError{cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &transientError{cause: fmt.Errorf("feed returned status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode series response: %w", err)
	}

	return nil
}

// transientError marks failures worth retrying.
type transientError struct {
	cause error
}

func (e *transientError) Error() string { return e.cause.Error() }
func (e *transientError) Unwrap() error { return e.cause }
