package headerchain

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/stores/chainstate/memory"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeaders = []string{model.Header1, model.Header2, model.Header3}

func newTestServer(t *testing.T) (*Server, *memory.Memory) {
	store := memory.New()
	tSettings := settings.NewSettings()

	s := New(ulogger.TestLogger{}, tSettings, store)
	require.NoError(t, s.Init(context.Background()))

	t.Cleanup(func() {
		_ = s.Stop(context.Background())
	})

	return s, store
}

func initRequest(bits uint32) *model.InitRequest {
	return &model.InitRequest{
		StartHeight:       100000,
		MinDifficultyBits: bits,
		MinUpdateLength:   3,
		StartHash:         model.Header1PrevHash,
	}
}

func TestServerScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("A: valid extension", func(t *testing.T) {
		s, _ := newTestServer(t)

		require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))
		require.NoError(t, s.UpdateBlockOffset(ctx, "bob", testHeaders))

		info, err := s.GetContractInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(3), info.CurrOffset)
		assert.Equal(t, model.Header3Hash, info.CurrHash)
		assert.Equal(t, uint32(100000), info.StartHeight)
		assert.Equal(t, "404cb"+zeros(48), info.MinDifficulty)
	})

	t.Run("B: difficulty above threshold", func(t *testing.T) {
		s, store := newTestServer(t)

		require.NoError(t, s.Initialize(ctx, "alice", initRequest(0x1a44b9f1)))
		before := snapshot(t, store)

		err := s.UpdateBlockOffset(ctx, "alice", testHeaders)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrDifficultyExceedsThreshold))

		assertUnchanged(t, store, before)
	})

	t.Run("C: batch too small", func(t *testing.T) {
		s, store := newTestServer(t)

		require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))
		before := snapshot(t, store)

		err := s.UpdateBlockOffset(ctx, "alice", testHeaders[:2])
		assert.True(t, errors.Is(err, errors.ErrInsufficientBatchSize))

		assertUnchanged(t, store, before)
	})

	t.Run("D: truncated header", func(t *testing.T) {
		s, store := newTestServer(t)

		require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))
		before := snapshot(t, store)

		err := s.UpdateBlockOffset(ctx, "alice", []string{model.Header1, model.Header2, model.Header3[:10]})
		assert.True(t, errors.Is(err, errors.ErrMalformedHeader))

		assertUnchanged(t, store, before)
	})

	t.Run("proof of work fails after two good headers", func(t *testing.T) {
		s, store := newTestServer(t)

		require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))
		before := snapshot(t, store)

		err := s.UpdateBlockOffset(ctx, "alice", []string{model.Header1, model.Header2, model.Header3[:152] + "00000000"})
		assert.True(t, errors.Is(err, errors.ErrProofOfWorkFailed))

		assertUnchanged(t, store, before)
	})
}

// snapshot is the serialized form of the stored chain state.
func snapshot(t *testing.T, store *memory.Memory) []byte {
	t.Helper()

	state, err := store.Load(context.Background())
	require.NoError(t, err)

	b, err := state.Bytes()
	require.NoError(t, err)

	return b
}

func assertUnchanged(t *testing.T, store *memory.Memory, before []byte) {
	t.Helper()

	assert.Equal(t, string(before), string(snapshot(t, store)))
}

func TestServerLifecycle(t *testing.T) {
	ctx := context.Background()
	s, store := newTestServer(t)

	assert.Equal(t, StateUninitialized, s.State())

	_, err := s.GetContractInfo(ctx)
	assert.True(t, errors.Is(err, errors.ErrUninitialized))

	err = s.UpdateBlockOffset(ctx, "alice", testHeaders)
	assert.True(t, errors.Is(err, errors.ErrUninitialized))

	require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))
	assert.Equal(t, StateReady, s.State())

	err = s.Initialize(ctx, "alice", initRequest(model.TestBits))
	assert.True(t, errors.Is(err, errors.ErrAlreadyInitialized))

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", state.Owner)

	// a new server on the same store starts READY
	restarted := New(ulogger.TestLogger{}, settings.NewSettings(), store)
	require.NoError(t, restarted.Init(ctx))
	assert.Equal(t, StateReady, restarted.State())
	require.NoError(t, restarted.Stop(ctx))
}

func TestServerInitializeValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServer(t)

	req := initRequest(model.TestBits)
	req.StartHash = "abcd"

	err := s.Initialize(ctx, "alice", req)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	assert.True(t, errors.Is(s.Initialize(ctx, "alice", nil), errors.ErrInvalidArgument))

	// start hashes are stored lowercase
	req = initRequest(model.TestBits)
	req.StartHash = "81CD02AB7E569E8BCD9317E2FE99F2DE44D49AB2B8851BA4A308000000000000"
	require.NoError(t, s.Initialize(ctx, "alice", req))

	require.NoError(t, s.UpdateBlockOffset(ctx, "alice", testHeaders))
}

func TestServerPermissionFlag(t *testing.T) {
	ctx := context.Background()

	store := memory.New()
	tSettings := settings.NewSettings()
	tSettings.HeaderChain.PermissionlessUpdate = false

	s := New(ulogger.TestLogger{}, tSettings, store)
	require.NoError(t, s.Init(ctx))

	defer func() {
		_ = s.Stop(ctx)
	}()

	require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))

	err := s.UpdateBlockOffset(ctx, "mallory", testHeaders)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	require.NoError(t, s.UpdateBlockOffset(ctx, "alice", testHeaders))
}

func TestServerConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServer(t)

	require.NoError(t, s.Initialize(ctx, "alice", initRequest(model.TestBits)))

	const callers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := s.UpdateBlockOffset(ctx, "alice", testHeaders); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.True(t, errors.Is(err, errors.ErrChainLinkMismatch))
			}
		}()
	}

	wg.Wait()

	// the same batch can only extend the chain once
	assert.Equal(t, 1, succeeded)

	info, err := s.GetContractInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), info.CurrOffset)
}

func TestServerHealth(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServer(t)

	status, msg, err := s.Health(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", msg)

	status, msg, err = s.Health(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, msg, "ChainStateStore")
	assert.Contains(t, msg, StateUninitialized)
}
