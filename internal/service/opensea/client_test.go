package opensea

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NFTCast/internal/domain/models"
	"NFTCast/pkg/cache"
)

const addr = "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newClient(t *testing.T, h http.Handler, opts ...Option) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	base := []Option{
		WithBaseURL(srv.URL),
		WithToken("secret"),
		WithRateLimit(1000, 100),
		WithRetry(2, time.Millisecond),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(append(base, opts...)...), &calls
}

func TestGetNFT(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chain/ethereum/contract/0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d/nfts/1234", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{
			"nft": {"identifier":"1234","name":"Ape 1234","image_url":"https://img/1234.png",
				"token_standard":"erc721","traits":[{"trait_type":"Fur","value":"Gold"}],
				"updated_at":"2024-02-01T00:00:00Z"},
			"collection": {"collection":"boredapeyachtclub","name":"Bored Ape Yacht Club"}
		}`))
	})
	mux.HandleFunc("/collections/boredapeyachtclub/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":{"floor_price":11.5,"volume":1000}}`))
	})
	c, _ := newClient(t, mux)

	d, err := c.GetNFT(context.Background(), models.NFTRef{ContractAddress: addr, TokenID: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "Ape 1234", d.Name)
	assert.Equal(t, "Bored Ape Yacht Club", d.Collection)
	assert.Equal(t, "boredapeyachtclub", d.CollectionSlug)
	assert.Equal(t, addr, d.ContractAddress)
	assert.Equal(t, 11.5, d.FloorPrice)
	assert.Equal(t, "erc721", d.TokenStandard)
	require.Len(t, d.Traits, 1)
	assert.Equal(t, "Fur", d.Traits[0].TraitType)
}

func TestGetNFTFormattingFallbacks(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/azuki/stats" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"nft":{"collection":"azuki","display_image_url":"https://img/d.png"}}`))
	}), WithRetry(0, time.Millisecond))

	d, err := c.GetNFT(context.Background(), models.NFTRef{Chain: "ethereum", ContractAddress: addr, TokenID: "7"})
	require.NoError(t, err)
	assert.Equal(t, "NFT #7", d.Name)
	assert.Equal(t, "Unknown Collection", d.Collection)
	assert.Equal(t, "https://img/d.png", d.Image)
	assert.Equal(t, "azuki", d.CollectionSlug)
	assert.Equal(t, 0.0, d.FloorPrice)
	assert.Equal(t, "2024-03-01T12:00:00Z", d.UpdatedAt)
	assert.NotNil(t, d.Traits)

	env := nftEnvelope{NFT: &nftPayload{}, Collection: &collectionPayload{Name: "Azuki"}}
	assert.Equal(t, "Azuki #7", env.format(models.NFTRef{TokenID: "7"}, 0, fixedNow).Name)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{404, func(t *testing.T, err error) { assert.ErrorIs(t, err, models.ErrNotFound) }},
		{429, func(t *testing.T, err error) { assert.ErrorIs(t, err, models.ErrRateLimited) }},
		{401, func(t *testing.T, err error) { assert.ErrorIs(t, err, models.ErrUnauthorized) }},
		{418, func(t *testing.T, err error) {
			var ue *models.UpstreamError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, 418, ue.Status)
			assert.Equal(t, "teapot", ue.Body)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c, calls := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("teapot"))
			}))
			_, err := c.GetCollectionStats(context.Background(), "azuki")
			tt.check(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "non-5xx must not be retried")
		})
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var n int32
	c, calls := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"total":{"floor_price":2}}`))
	}))
	s, err := c.GetCollectionStats(context.Background(), "azuki")
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Total.FloorPrice)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))

	c, _ = newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}), WithRetry(1, time.Millisecond))
	_, err = c.GetCollectionStats(context.Background(), "azuki")
	assert.True(t, models.IsRetryable(err))
}

func TestMisconfiguredAndMalformedSkipNetwork(t *testing.T) {
	c, calls := newClient(t, http.NotFoundHandler(), WithToken(""))
	_, err := c.GetNFT(context.Background(), models.NFTRef{ContractAddress: addr, TokenID: "1"})
	assert.ErrorIs(t, err, models.ErrMisconfigured)
	_, err = c.GetCollectionStats(context.Background(), "azuki")
	assert.ErrorIs(t, err, models.ErrMisconfigured)

	c, calls = newClient(t, http.NotFoundHandler())
	_, err = c.GetNFT(context.Background(), models.NFTRef{ContractAddress: "0x123", TokenID: "1"})
	assert.ErrorIs(t, err, models.ErrMalformedIdentifier)
	_, err = c.GetCollectionStats(context.Background(), " ")
	assert.ErrorIs(t, err, models.ErrMalformedIdentifier)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestCacheHitAvoidsUpstream(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	c, calls := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":{"floor_price":3.25}}`))
	}), WithCache(mc, time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		s, err := c.GetCollectionStats(context.Background(), "Azuki")
		require.NoError(t, err)
		assert.Equal(t, 3.25, s.Total.FloorPrice)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCancelledContext(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetCollectionStats(ctx, "azuki")
	assert.ErrorIs(t, err, context.Canceled)
}
