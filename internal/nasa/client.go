package nasa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/cache"
	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/metrics"
)

// SourceClass identifies one provider family. It prefixes every cache key
// so two sources never collide even with identical endpoint params.
type SourceClass string

const (
	SourceAPOD         SourceClass = "apod"
	SourceNeoWs        SourceClass = "neows"
	SourceDONKI        SourceClass = "donki"
	SourceEONET        SourceClass = "eonet"
	SourceEPIC         SourceClass = "epic"
	SourceExoplanet    SourceClass = "exoplanet"
	SourceGIBS         SourceClass = "gibs"
	SourceInSight      SourceClass = "insight"
	SourceImageLibrary SourceClass = "images"
	SourceOSDR         SourceClass = "osdr"
	SourceSSC          SourceClass = "ssc"
	SourceCNEOS        SourceClass = "cneos"
	SourceTechPort     SourceClass = "techport"
	SourceTechTransfer SourceClass = "techtransfer"
	SourceTLE          SourceClass = "tle"
	SourceTrek         SourceClass = "trek"
)

// Client performs a single outbound request with bounded retries, a fixed
// rate-limit delay and a read-through cache. One instance is shared by all
// concurrent jobs.
type Client struct {
	log        *logger.Logger
	httpc      *http.Client
	cache      cache.Cache
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	cacheTTL   time.Duration
}

func NewClient(log *logger.Logger, c cache.Cache, cfg *config.Config) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		log:        log.With("service", "FetchClient"),
		httpc:      &http.Client{Timeout: cfg.FetchTimeout, Transport: tr},
		cache:      c,
		apiKey:     cfg.NASAAPIKey,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		cacheTTL:   cfg.CacheTTL,
	}
}

// TotalBudget is the worst-case wall time one Fetch can consume: the
// per-attempt timeout times the retry budget plus the fixed delays between
// attempts. Jobs derive their deadline from it.
func (c *Client) TotalBudget() time.Duration {
	return time.Duration(c.maxRetries)*c.httpc.Timeout + time.Duration(c.maxRetries)*c.retryDelay
}

// Fetch returns the raw payload for endpoint+params. A cache hit returns
// immediately with no network call and no retry accounting. On a miss the
// payload is cached with the configured TTL before being returned.
func (c *Client) Fetch(ctx context.Context, src SourceClass, endpoint string, params url.Values) ([]byte, error) {
	merged := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	// EONET, Trek and the Caltech archive do not take the NASA key.
	if strings.Contains(endpoint, "api.nasa.gov") && c.apiKey != "" {
		merged.Set("api_key", c.apiKey)
	}

	key := cacheKey(src, endpoint, merged)
	if c.cache != nil {
		if payload, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			metrics.CacheLookups.WithLabelValues(string(src), "hit").Inc()
			c.log.Debug("Cache hit", "source", string(src), "endpoint", endpoint)
			return payload, nil
		}
		metrics.CacheLookups.WithLabelValues(string(src), "miss").Inc()
	}

	fullURL := endpoint
	if enc := merged.Encode(); enc != "" {
		fullURL = endpoint + "?" + enc
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		payload, retryable, err := c.attempt(ctx, src, endpoint, fullURL)
		if err == nil {
			if c.cache != nil {
				if cerr := c.cache.Set(ctx, key, payload, c.cacheTTL); cerr != nil {
					c.log.Warn("Cache write failed", "source", string(src), "error", cerr)
				}
			}
			return payload, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		if attempt == c.maxRetries-1 {
			break
		}
		c.log.Warn("Transient fetch failure, retrying",
			"source", string(src),
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"delay", c.retryDelay.String(),
			"error", err,
		)
		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrRetriesExhausted, src, lastErr)
}

// attempt performs one network call. The bool reports whether the failure
// is retryable (429 or transport timeout).
func (c *Client) attempt(ctx context.Context, src SourceClass, endpoint, fullURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		metrics.FetchAttempts.WithLabelValues(string(src), "error").Inc()
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.FetchAttempts.WithLabelValues(string(src), "timeout").Inc()
			return nil, true, err
		}
		metrics.FetchAttempts.WithLabelValues(string(src), "error").Inc()
		return nil, false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			metrics.FetchAttempts.WithLabelValues(string(src), "error").Inc()
			return nil, false, fmt.Errorf("%s: read body: %w", src, err)
		}
		metrics.FetchAttempts.WithLabelValues(string(src), "ok").Inc()
		return payload, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.FetchAttempts.WithLabelValues(string(src), "rate_limited").Inc()
		return nil, true, fmt.Errorf("%w: %s", ErrRateLimited, endpoint)
	default:
		metrics.FetchAttempts.WithLabelValues(string(src), "upstream_error").Inc()
		return nil, false, &StatusError{Source: src, Endpoint: endpoint, Status: resp.StatusCode}
	}
}

func cacheKey(src SourceClass, endpoint string, params url.Values) string {
	// url.Values.Encode sorts by key, so the serialization is stable.
	return string(src) + ":" + endpoint + "?" + params.Encode()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
