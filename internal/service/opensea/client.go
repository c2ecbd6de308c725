package opensea

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"NFTCast/internal/domain/models"
	drepo "NFTCast/internal/domain/repository"
	"NFTCast/internal/services/nftref"
	"NFTCast/pkg/cache"
	xhttp "NFTCast/pkg/http"
	"NFTCast/pkg/logger"
)

// DefaultBaseURL is the v2 API root.
const DefaultBaseURL = "https://api.opensea.io/api/v2"

// maxPayload bounds a single decoded response.
const maxPayload = 4 << 20

const (
	endpointNFT   = "nft"
	endpointStats = "collection_stats"
)

// Client implements Marketplace backed by the OpenSea v2 REST API.
type Client struct {
	http    *xhttp.Client
	baseURL string
	token   string
	limiter *rate.Limiter

	cache    cache.Service
	nftTTL   time.Duration
	statsTTL time.Duration

	retries int
	backoff time.Duration

	metrics drepo.Metrics
	log     *logger.Logger
	now     func() time.Time
}

var _ drepo.Marketplace = (*Client)(nil)

// New creates a client. Without a bearer token every call fails with ErrMisconfigured.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		limiter:  rate.NewLimiter(rate.Limit(4), 4),
		nftTTL:   5 * time.Minute,
		statsTTL: time.Minute,
		retries:  2,
		backoff:  200 * time.Millisecond,
		log:      logger.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(15*time.Second), xhttp.WithMaxResponseBytes(maxPayload))
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// GetNFT fetches token metadata and the collection floor price.
func (c *Client) GetNFT(ctx context.Context, ref models.NFTRef) (*models.NFTDetails, error) {
	if c.token == "" {
		return nil, models.ErrMisconfigured
	}
	ref, err := nftref.ParseRef(ref.Chain, ref.ContractAddress, ref.TokenID)
	if err != nil {
		return nil, err
	}

	key := cache.Key("opensea:nft", ref.Chain, ref.ContractAddress, ref.TokenID)
	details, hit, err := cache.GetOrLoad(ctx, c.cache, key, c.nftTTL, func(ctx context.Context) (models.NFTDetails, error) {
		return c.fetchNFT(ctx, ref)
	})
	c.recordCache(hit)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// GetCollectionStats fetches collection totals and interval stats.
func (c *Client) GetCollectionStats(ctx context.Context, slug string) (*models.CollectionStats, error) {
	if c.token == "" {
		return nil, models.ErrMisconfigured
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: collection slug is required", models.ErrMalformedIdentifier)
	}

	key := cache.Key("opensea:stats", slug)
	stats, hit, err := cache.GetOrLoad(ctx, c.cache, key, c.statsTTL, func(ctx context.Context) (models.CollectionStats, error) {
		var out models.CollectionStats
		u := fmt.Sprintf("%s/collections/%s/stats", c.baseURL, url.PathEscape(slug))
		err := c.get(ctx, endpointStats, u, &out)
		return out, err
	})
	c.recordCache(hit)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) fetchNFT(ctx context.Context, ref models.NFTRef) (models.NFTDetails, error) {
	u := fmt.Sprintf("%s/chain/%s/contract/%s/nfts/%s",
		c.baseURL, url.PathEscape(ref.Chain), strings.ToLower(ref.ContractAddress), ref.TokenID)

	var env nftEnvelope
	if err := c.get(ctx, endpointNFT, u, &env); err != nil {
		return models.NFTDetails{}, err
	}

	floor := 0.0
	if slug := env.slug(); slug != "" {
		stats, err := c.GetCollectionStats(ctx, slug)
		if err != nil {
			c.log.Debug("floor price unavailable",
				logger.String("collection", slug),
				logger.Error(err),
			)
		} else {
			floor = stats.Total.FloorPrice
			if c.metrics != nil {
				c.metrics.RecordFloorPrice(slug, floor)
			}
		}
	}
	return env.format(ref, floor, c.now()), nil
}

// get performs one throttled GET, retrying 5xx responses with exponential backoff.
func (c *Client) get(ctx context.Context, endpoint, u string, dest interface{}) error {
	headers := map[string]string{
		"Authorization": "Bearer " + c.token,
		"Accept":        "application/json",
		"X-API-KEY":     c.token,
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("opensea throttle: %w", err)
		}

		start := time.Now()
		err := c.http.GetJSON(ctx, u, headers, dest)
		status := 200
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			status = se.Code
		} else if err != nil {
			status = 0
		}
		if c.metrics != nil {
			c.metrics.RecordUpstream(endpoint, status, time.Since(start).Seconds())
		}
		if err == nil {
			return nil
		}

		mapped := mapError(err)
		if !models.IsRetryable(mapped) || attempt >= c.retries {
			return mapped
		}

		wait := c.backoff << attempt
		c.log.Warn("opensea request failed, retrying",
			logger.String("endpoint", endpoint),
			logger.Int("status", status),
			logger.Int("attempt", attempt+1),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) recordCache(hit bool) {
	if c.cache != nil && c.metrics != nil {
		c.metrics.RecordCache(hit)
	}
}

func mapError(err error) error {
	var se *xhttp.StatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("opensea request: %w", err)
	}
	switch se.Code {
	case 404:
		return models.ErrNotFound
	case 429:
		return models.ErrRateLimited
	case 401:
		return models.ErrUnauthorized
	default:
		return &models.UpstreamError{Status: se.Code, Body: string(se.Body)}
	}
}
