package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_VerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.PostForm.Get("secret"))
		assert.Equal(t, "good-token", r.PostForm.Get("response"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := NewClient(Config{SiteVerifyURL: srv.URL, Secret: "test-secret"})

	ok, err := c.Verify(context.Background(), "good-token")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_VerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{SiteVerifyURL: srv.URL, Secret: "test-secret"})

	ok, err := c.Verify(context.Background(), "bad-token")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_VerifyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{SiteVerifyURL: srv.URL, Secret: "test-secret"})

	_, err := c.Verify(context.Background(), "any-token")
	assert.Error(t, err)
}
