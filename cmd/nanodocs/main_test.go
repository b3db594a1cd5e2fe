package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/nanodocs"
	main "github.com/fwojciec/nanodocs/cmd/nanodocs"
	"github.com/fwojciec/nanodocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rpcPage = `<!DOCTYPE html>
<html>
<body>
<h2 id="accounts">Accounts</h2>
<h3 id="account_balance">account_balance</h3>
<p>Returns how many <strong>RAW</strong> is owned and how many have not yet been received by <code>account</code>.</p>
<div class="admonition warning"><p>Balances   are returned in raw.</p></div>
<p><strong>Request:</strong></p>
<div class="codehilite"><pre>{"action": "account_balance"}</pre></div>
<h3 id="block_count">block_count</h3>
<p>Reports the number of blocks in the ledger.</p>
</body>
</html>`

// docsServer serves rpcPage and counts requests.
func docsServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/commands/rpc-protocol/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(rpcPage))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newMain() *main.Main {
	m := main.NewMain()
	m.EnvFiles = nil
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "Usage: nanodocs")
	})

	t.Run("help lists commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "run")
		assert.Contains(t, stdout.String(), "lookup")
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		t.Parallel()

		m := newMain()
		m.Entries = &mock.EntryService{}

		err := m.Run(context.Background(), []string{"--log-level", "loud", "lookup", "rpc", "x"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("run requires a token", func(t *testing.T) {
		t.Parallel()

		m := newMain()
		m.Entries = &mock.EntryService{}

		err := m.Run(context.Background(), []string{"run", "--token="}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, nanodocs.EINVALID, nanodocs.ErrorCode(err))
	})
}

func TestCmdLookup(t *testing.T) {
	t.Parallel()

	t.Run("prints card fetched from the configured page", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		ts := docsServer(t, &hits)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{
			"--rpc-url", ts.URL + "/commands/rpc-protocol/",
			"lookup", "rpc", "account_balance",
		}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "[Nano RPC docs] account_balance")
		assert.Contains(t, out, ts.URL+"/commands/rpc-protocol/#account_balance")
		assert.Contains(t, out, "Returns how many **RAW** is owned and how many have not yet been received by `account`.")
		assert.Contains(t, out, "WARNING: Balances are returned in raw.")
		assert.NotContains(t, out, "Request:")
		assert.NotContains(t, out, `"action"`)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("reports entries that do not exist", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		ts := docsServer(t, &hits)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{
			"--rpc-url", ts.URL + "/commands/rpc-protocol/",
			"lookup", "rpc", "nope",
		}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, nanodocs.ENOTFOUND, nanodocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Hmm, I can't find that, maybe look at "+ts.URL+"/commands/rpc-protocol/")
		assert.Empty(t, stdout.String())
	})

	t.Run("reports fetch failures", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		ts := docsServer(t, &hits)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain().Run(context.Background(), []string{
			"--rpc-url", ts.URL + "/missing/",
			"lookup", "rpc", "account_balance",
		}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, nanodocs.EFETCH, nanodocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("slugs glossary terms", func(t *testing.T) {
		t.Parallel()

		var gotKey string
		m := newMain()
		m.Entries = &mock.EntryService{
			FindEntryFn: func(_ context.Context, category nanodocs.Category, key string) (*nanodocs.Entry, error) {
				gotKey = key
				assert.Equal(t, nanodocs.CategoryGlossary, category)
				return &nanodocs.Entry{Key: key, Title: "Epoch Block", Description: "Network upgrade block."}, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"lookup", "glossary", "Epoch", "Block"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "epoch-block", gotKey)
		assert.Contains(t, stdout.String(), "[Nano glossary] Epoch Block")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()

		m := newMain()
		m.Entries = &mock.EntryService{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"lookup", "weather"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, nanodocs.EINVALID, nanodocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), `unknown category "weather"`)
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		m := newMain()
		m.Entries = &mock.EntryService{}

		err := m.Run(context.Background(), []string{"lookup", "rpc"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, nanodocs.EINVALID, nanodocs.ErrorCode(err))
	})
}
