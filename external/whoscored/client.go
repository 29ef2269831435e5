package whoscored

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/valyala/fasthttp"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/resilience"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const (
	defaultBaseURL = "https://www.whoscored.com"
	defaultTimeout = 20 * time.Second
	maxRedirects   = 5
	maxBodySize    = 8 << 20

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
	referer        = "https://www.google.com/"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"
)

var errTransient = crerr.New("whoscored transient failure")

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
}

// Client performs raw GETs against the scoring site. It never retries and
// returns non-2xx responses as they came, status and body included.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:               timeout,
			WriteTimeout:              timeout,
			MaxResponseBodySize:       maxBodySize,
			MaxIdemponentCallAttempts: 1,
			NoDefaultUserAgentHeader:  true,
		},
		baseURL:        baseURL,
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg, cfg.Clock),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchTeamStats GETs the player statistics feed filtered by team.
func (c *Client) FetchTeamStats(ctx context.Context, teamID int64) ([]byte, int, error) {
	q := feedQuery()
	q.Set("teamIds", strconv.FormatInt(teamID, 10))
	return c.get(ctx, "team_stats", "/statisticsfeed/1/getplayerstatistics?"+encodeFeedQuery(q))
}

// FetchPlayerStats GETs the same feed filtered by player.
func (c *Client) FetchPlayerStats(ctx context.Context, playerID int64) ([]byte, int, error) {
	q := feedQuery()
	q.Set("playerId", strconv.FormatInt(playerID, 10))
	q.Set("teamIds", "")
	return c.get(ctx, "player_stats", "/statisticsfeed/1/getplayerstatistics?"+encodeFeedQuery(q))
}

func (c *Client) FetchTeamPage(ctx context.Context, teamID int64) ([]byte, int, error) {
	return c.get(ctx, "team_page", "/teams/"+strconv.FormatInt(teamID, 10))
}

func (c *Client) FetchSearch(ctx context.Context, query string) ([]byte, int, error) {
	return c.get(ctx, "search", "/search/?t="+url.QueryEscape(strings.TrimSpace(query)))
}

func (c *Client) FetchFixtures(ctx context.Context, teamID int64) ([]byte, int, error) {
	return c.get(ctx, "fixtures", "/teams/"+strconv.FormatInt(teamID, 10)+"/fixtures")
}

func (c *Client) get(ctx context.Context, endpoint, pathAndQuery string) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "whoscored circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			metrics.UpstreamRequests.WithLabelValues("whoscored", endpoint, "rejected").Inc()
			return nil, 0, fmt.Errorf("%w: scoring site is temporarily unavailable: %v", usecase.ErrDependencyUnavailable, err)
		}
	}

	started := time.Now()
	body, status, err := c.do(ctx, c.baseURL+pathAndQuery)
	c.recordCircuitResult(status, err)

	switch {
	case err != nil:
		metrics.ObserveUpstream("whoscored", endpoint, "error", started)
		c.logger.WarnContext(ctx, "whoscored request failed", "endpoint", endpoint, "error", err)
		return nil, 0, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	case status < 200 || status > 299:
		metrics.ObserveUpstream("whoscored", endpoint, "status_"+strconv.Itoa(status), started)
		c.logger.InfoContext(ctx, "whoscored non-success status", "endpoint", endpoint, "status", status)
	default:
		metrics.ObserveUpstream("whoscored", endpoint, "ok", started)
	}

	return body, status, nil
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)
	req.Header.SetReferer(referer)
	req.Header.Set(fasthttp.HeaderAccept, acceptHeader)
	req.Header.Set(fasthttp.HeaderAcceptLanguage, acceptLanguage)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip, deflate")
	req.SetTimeout(c.requestTimeout(ctx))

	if err := c.http.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, 0, fmt.Errorf("%w: GET %s: %v", errTransient, redactQuery(fullURL), err)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: decode body: %v", errTransient, err)
	}
	// resp is released on return; copy out of its buffer.
	return append([]byte(nil), body...), resp.StatusCode(), nil
}

func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = max(remaining, time.Millisecond)
		}
	}
	return timeout
}

// recordCircuitResult counts transport failures, throttling and 5xx as breaker failures.
func (c *Client) recordCircuitResult(status int, err error) {
	if !c.circuitEnabled {
		return
	}
	failed := err != nil ||
		status == fasthttp.StatusForbidden ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
	c.breaker.Record(failed)
}

func feedQuery() url.Values {
	return url.Values{
		"category":              {"summary"},
		"subcategory":           {"all"},
		"statsAccumulationType": {"0"},
		"isCurrent":             {"true"},
		"sortBy":                {"Rating"},
		"sortAscending":         {""},
		"field":                 {"Overall"},
		"isMinApp":              {"false"},
		"includeZeroValues":     {"true"},
	}
}

var feedParamOrder = []string{
	"category", "subcategory", "statsAccumulationType", "isCurrent", "playerId",
	"teamIds", "sortBy", "sortAscending", "field", "isMinApp", "includeZeroValues",
}

// encodeFeedQuery keeps the parameter order the site's own pages use.
func encodeFeedQuery(q url.Values) string {
	var b strings.Builder
	for _, key := range feedParamOrder {
		values, ok := q[key]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		if len(values) > 0 {
			b.WriteString(url.QueryEscape(values[0]))
		}
	}
	return b.String()
}

func redactQuery(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}
