//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/nanodocs"
	"github.com/fwojciec/nanodocs/goquery"
	"github.com/fwojciec/nanodocs/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPage builds its entry headings in the browser, so a plain HTTP
// fetch sees none of them.
const scriptedPage = `<!DOCTYPE html>
<html>
<body>
<article id="docs">Loading...</article>
<script>
const docs = document.getElementById('docs');
docs.innerHTML =
  '<h3 id="account_info">account_info</h3>' +
  '<p>Returns frontier, open block, change representative block, balance.</p>' +
  '<h3 id="block_count">block_count</h3>' +
  '<p>Reports the number of blocks in the ledger.</p>';
</script>
</body>
</html>`

func newFetcher(t *testing.T, opts ...rod.Option) *rod.Fetcher {
	t.Helper()
	f, err := rod.NewFetcher(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns script rendered entries", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(scriptedPage))
		}))
		t.Cleanup(srv.Close)

		html, err := newFetcher(t).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.NotContains(t, html, "Loading...")

		src, ok := nanodocs.DefaultCatalog().Source(nanodocs.CategoryRPC)
		require.True(t, ok)
		set, err := goquery.NewParser().Parse(html, src)
		require.NoError(t, err)
		assert.Equal(t, []string{"account_info", "block_count"}, set.Keys())
	})

	t.Run("waits for late headings", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><main id="docs"></main>
<script>
setTimeout(() => {
  document.getElementById('docs').innerHTML = '<h4 id="epoch-block">Epoch Block</h4><p>Upgrade block.</p>';
}, 300);
</script></body></html>`))
		}))
		t.Cleanup(srv.Close)

		f := newFetcher(t, rod.WithWaitSelector("h3[id], h4[id]"), rod.WithFetchTimeout(5*time.Second))
		html, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, `id="epoch-block"`)
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newFetcher(t).Fetch(ctx, "http://127.0.0.1:0/")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("gives up on slow pages after the fetch timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body><h3 id="late">late</h3></body></html>`))
		}))
		t.Cleanup(srv.Close)

		f := newFetcher(t, rod.WithFetchTimeout(100*time.Millisecond))
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("fails once closed", func(t *testing.T) {
		t.Parallel()

		f := newFetcher(t)
		require.NoError(t, f.Close())

		_, err := f.Fetch(context.Background(), nanodocs.DefaultRPCURL)

		require.Error(t, err)
		assert.Equal(t, nanodocs.EINVALID, nanodocs.ErrorCode(err))
		assert.Equal(t, "fetcher is closed", nanodocs.ErrorMessage(err))
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	f, err := rod.NewFetcher()
	require.NoError(t, err)

	assert.NoError(t, f.Close())
	assert.NoError(t, f.Close())
}
