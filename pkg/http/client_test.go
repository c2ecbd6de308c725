package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndParseStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v1", r.Header.Get("X-Default"))
		assert.Equal(t, "override", r.Header.Get("X-Over"))
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	c := NewClient(WithHeader("X-Default", "v1"), WithHeader("X-Over", "default"))
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:  MethodGet,
		URL:     srv.URL,
		Headers: map[string]string{"X-Over": "override"},
	}, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Equal(t, "slow down", string(se.Body))
}

func TestSendAndParseDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"name":"azuki"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	err := NewClient().SendAndParse(context.Background(), &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL,
		QueryParams: map[string][]string{"page": {"1"}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "azuki", out.Name)
}

func TestGetJSONDefaultsAndLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"name":"a-very-long-collection-name"}`))
	}))
	defer srv.Close()

	var out map[string]string
	require.NoError(t, NewClient().GetJSON(context.Background(), srv.URL, nil, &out))
	assert.Equal(t, "a-very-long-collection-name", out["name"])

	err := NewClient(WithMaxResponseBytes(10)).GetJSON(context.Background(), srv.URL, nil, &out)
	assert.Error(t, err)
}

func TestSendFormBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "azuki", r.PostForm.Get("slug"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{
		Method: MethodPost,
		URL:    srv.URL,
		Body:   url.Values{"slug": {"azuki"}},
	}, nil)
	assert.NoError(t, err)
}
