package footballdata

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	edlib "github.com/hbollon/go-edlib"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/cache"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/resilience"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.football-data.org/v4"
	defaultTimeout  = 15 * time.Second
	defaultCacheTTL = 12 * time.Hour
	pageSize        = 500
	matchThreshold  = 75
	maxBodySize     = 6 << 20
)

var errTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	Enabled        bool
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
}

// Client looks up club metadata on football-data.org by fuzzy name match.
type Client struct {
	httpClient     *http.Client
	enabled        bool
	baseURL        string
	token          string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	cache          *cache.Store[lookupResult]
}

type lookupResult struct {
	meta  usecase.TeamMetadata
	found bool
}

var _ usecase.MetadataProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		enabled:        cfg.Enabled,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg, cfg.Clock),
		circuitEnabled: breakerCfg.Enabled,
		cache:          cache.NewStore[lookupResult](ttl, cfg.Clock),
	}
}

// LookupTeam scans the paged team listing until a name scores at least 75.
// Misses are cached as well as hits.
func (c *Client) LookupTeam(ctx context.Context, name string) (usecase.TeamMetadata, bool, error) {
	name = strings.TrimSpace(name)
	if !c.enabled || name == "" {
		return usecase.TeamMetadata{}, false, nil
	}

	key := strings.ToLower(name)
	if cached, ok := c.cache.Get(ctx, key); ok {
		metrics.CacheLookups.WithLabelValues("team_metadata", "hit").Inc()
		return cached.meta, cached.found, nil
	}
	metrics.CacheLookups.WithLabelValues("team_metadata", "miss").Inc()

	result, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (lookupResult, error) {
		return c.scan(ctx, name)
	})
	if err != nil {
		return usecase.TeamMetadata{}, false, err
	}
	return result.meta, result.found, nil
}

func (c *Client) scan(ctx context.Context, query string) (lookupResult, error) {
	for offset := 0; ; offset += pageSize {
		page, err := c.fetchTeamsPage(ctx, offset)
		if err != nil {
			return lookupResult{}, err
		}
		if page.Count == 0 || len(page.Teams) == 0 {
			c.logger.InfoContext(ctx, "no football-data team matched", "query", query, "scanned", offset)
			return lookupResult{}, nil
		}

		for _, item := range page.Teams {
			if Similarity(query, item.Name) >= matchThreshold {
				return lookupResult{meta: item.metadata(), found: true}, nil
			}
		}
	}
}

type teamsPage struct {
	Count int        `json:"count"`
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Founded    *int    `json:"founded"`
	Venue      *string `json:"venue"`
	ClubColors *string `json:"clubColors"`
}

func (t teamItem) metadata() usecase.TeamMetadata {
	return usecase.TeamMetadata{Founded: t.Founded, Venue: t.Venue, ClubColors: t.ClubColors}
}

func (c *Client) fetchTeamsPage(ctx context.Context, offset int) (teamsPage, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return teamsPage{}, fmt.Errorf("%w: metadata provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	started := time.Now()
	raw, err := c.executeRequest(ctx, c.baseURL+"/teams?limit="+strconv.Itoa(pageSize)+"&offset="+strconv.Itoa(offset))
	if c.circuitEnabled {
		c.breaker.Record(err != nil && crerr.Is(err, errTransient))
	}
	if err != nil {
		metrics.ObserveUpstream("football_data", "teams", "error", started)
		c.logger.WarnContext(ctx, "football-data request failed", "offset", offset, "error", err)
		return teamsPage{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}
	metrics.ObserveUpstream("football_data", "teams", "ok", started)

	var page teamsPage
	if err := sonic.Unmarshal(raw, &page); err != nil {
		return teamsPage{}, fmt.Errorf("%w: decode football-data teams page: %v", usecase.ErrParse, err)
	}
	return page, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Auth-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errTransient, sanitize(err.Error(), c.token))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: provider status=%d", errTransient, resp.StatusCode)
		}
		return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
	}
	return raw, nil
}

// Similarity is a 0..100 ratio over the case-folded insert/delete distance
// (a substitution costs two edits), scaled by the combined length of both
// names. It equals 2*LCS/(|a|+|b|).
func Similarity(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	dist := total - 2*edlib.LCS(a, b)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

func sanitize(value, token string) string {
	if token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}
