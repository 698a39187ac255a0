package identity

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholderSize = 1506

// avatarService fakes one upstream: it answers HEAD with the given
// content type and body size, and GET with the body itself.
func avatarService(t *testing.T, contentType string, body []byte, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(status)
		if r.Method == http.MethodGet {
			w.Write(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestResolver(services ...string) *Resolver {
	return NewResolver(services, 2*time.Second, placeholderSize)
}

func TestResolveFirstServiceWins(t *testing.T) {
	avatar := bytes.Repeat([]byte{0xAB}, 4096)
	first := avatarService(t, "image/png", avatar, http.StatusOK)
	second := avatarService(t, "image/png", avatar, http.StatusOK)

	r := newTestResolver(first.URL+"/x/%s", second.URL+"/twitter/%s")

	url, err := r.Resolve(context.Background(), "moonchild")
	require.NoError(t, err)
	assert.Equal(t, first.URL+"/x/moonchild", url)
}

func TestResolveSkipsPlaceholder(t *testing.T) {
	placeholder := bytes.Repeat([]byte{0x00}, placeholderSize)
	real := bytes.Repeat([]byte{0xAB}, 4096)

	placeholderSrv := avatarService(t, "image/png", placeholder, http.StatusOK)
	realSrv := avatarService(t, "image/png", real, http.StatusOK)

	r := newTestResolver(placeholderSrv.URL+"/x/%s", realSrv.URL+"/twitter/%s")

	url, err := r.Resolve(context.Background(), "moonchild")
	require.NoError(t, err)
	assert.Equal(t, realSrv.URL+"/twitter/moonchild", url)
}

func TestResolveSkipsNonImage(t *testing.T) {
	htmlSrv := avatarService(t, "text/html", []byte("<html>not found</html>"), http.StatusOK)
	imgSrv := avatarService(t, "image/jpeg", bytes.Repeat([]byte{1}, 2048), http.StatusOK)

	r := newTestResolver(htmlSrv.URL+"/%s", imgSrv.URL+"/%s")

	url, err := r.Resolve(context.Background(), "jack")
	require.NoError(t, err)
	assert.Equal(t, imgSrv.URL+"/jack", url)
}

func TestResolveAllFail(t *testing.T) {
	notFound := avatarService(t, "image/png", nil, http.StatusNotFound)
	placeholder := avatarService(t, "image/png", bytes.Repeat([]byte{0}, placeholderSize), http.StatusOK)

	r := newTestResolver(notFound.URL+"/%s", placeholder.URL+"/%s")

	_, err := r.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoAvatar)
}

func TestResolveUnreachableServiceContinues(t *testing.T) {
	imgSrv := avatarService(t, "image/png", bytes.Repeat([]byte{1}, 2048), http.StatusOK)

	r := newTestResolver("http://127.0.0.1:1/%s", imgSrv.URL+"/%s")

	url, err := r.Resolve(context.Background(), "jack")
	require.NoError(t, err)
	assert.Equal(t, imgSrv.URL+"/jack", url)
}

func TestResolveContextCancelled(t *testing.T) {
	imgSrv := avatarService(t, "image/png", bytes.Repeat([]byte{1}, 2048), http.StatusOK)
	r := newTestResolver(imgSrv.URL + "/%s")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "jack")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchImage(t *testing.T) {
	body := bytes.Repeat([]byte{0xCD}, 1000)
	srv := avatarService(t, "image/png", body, http.StatusOK)

	r := newTestResolver()
	data, err := r.FetchImage(context.Background(), srv.URL, 2000)
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestFetchImageTooLarge(t *testing.T) {
	body := bytes.Repeat([]byte{0xCD}, 1000)
	srv := avatarService(t, "image/png", body, http.StatusOK)

	r := newTestResolver()
	_, err := r.FetchImage(context.Background(), srv.URL, 999)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestFetchImageUpstreamError(t *testing.T) {
	srv := avatarService(t, "text/plain", nil, http.StatusInternalServerError)

	r := newTestResolver()
	_, err := r.FetchImage(context.Background(), srv.URL, 0)
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "500")
}
