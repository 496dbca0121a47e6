package headerchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/services/headerchain/http_impl"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/stores/chainstate/memory"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	tSettings := settings.NewSettings()

	s := New(ulogger.TestLogger{}, tSettings, memory.New())
	require.NoError(t, s.Init(context.Background()))

	h, err := http_impl.New(ulogger.TestLogger{}, tSettings, s)
	require.NoError(t, err)

	ts := httptest.NewServer(h.Handler())

	t.Cleanup(func() {
		ts.Close()
		_ = s.Stop(context.Background())
	})

	address, err := url.Parse(ts.URL)
	require.NoError(t, err)

	return NewClientWithAddress(ulogger.TestLogger{}, address, tSettings.HeaderChain.APIPrefix)
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.GetContractInfo(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUninitialized))

	require.NoError(t, client.Initialize(ctx, "alice", initRequest(model.TestBits)))

	err = client.Initialize(ctx, "alice", initRequest(model.TestBits))
	assert.True(t, errors.Is(err, errors.ErrAlreadyInitialized))

	require.NoError(t, client.UpdateBlockOffset(ctx, "alice", testHeaders))

	info, err := client.GetContractInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), info.CurrOffset)
	assert.Equal(t, model.Header3Hash, info.CurrHash)
}

func TestClientDecodesValidationErrors(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	require.NoError(t, client.Initialize(ctx, "alice", initRequest(model.TestBits)))

	err := client.UpdateBlockOffset(ctx, "alice", testHeaders[:2])
	require.Error(t, err)

	var tErr *errors.Error
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, errors.ERR_INSUFFICIENT_BATCH_SIZE, tErr.Code())
	assert.Equal(t, "Number of blocks provided (2) is less than minimum required (3)", tErr.Message())
	assert.Equal(t, float64(2), tErr.GetData("got"))
	assert.True(t, errors.IsValidationError(err))

	err = client.UpdateBlockOffset(ctx, "alice", []string{model.Header1, model.Header3, model.Header2})
	assert.True(t, errors.Is(err, errors.ErrChainLinkMismatch))
}

func TestClientHealth(t *testing.T) {
	client := newTestClient(t)

	status, _, err := client.Health(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	status, body, err := client.Health(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ChainStateStore")
}

func TestClientLivenessNotOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/liveness" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	address, err := url.Parse(ts.URL)
	require.NoError(t, err)

	client := NewClientWithAddress(ulogger.TestLogger{}, address, "/api/v1")

	status, _, err := client.Health(context.Background(), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrServiceUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestClientUnreachable(t *testing.T) {
	address, err := url.Parse("http://127.0.0.1:1")
	require.NoError(t, err)

	client := NewClientWithAddress(ulogger.TestLogger{}, address, "/api/v1")

	_, err = client.GetContractInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNetwork))

	status, _, err := client.Health(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestDecodeErrorWithUnexpectedBody(t *testing.T) {
	err := decodeError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.True(t, errors.Is(err, errors.ErrNetworkInvalidResponse))
}
