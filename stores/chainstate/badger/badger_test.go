package badger

import (
	"context"
	"net/url"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	s, err := New(ulogger.TestLogger{}, &url.URL{Scheme: "badgermemory"}, settings.NewSettings())
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrUninitialized))

	state, err := model.NewChainState(7, model.Header1PrevHash, model.TestBits, 3, "bob")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, state))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), loaded.StartHeight)
	assert.Equal(t, "bob", loaded.Owner)

	status, _, err := s.Health(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 200, status)

	require.NoError(t, s.Close())

	status, _, err = s.Health(ctx, true)
	require.Error(t, err)
	assert.Equal(t, 503, status)
}

func TestDiskStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(ulogger.TestLogger{}, &url.URL{Scheme: "badger", Path: dir}, settings.NewSettings())
	require.NoError(t, err)

	state, err := model.NewChainState(0, model.Header1PrevHash, model.TestBits, 3, "")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, state))
	require.NoError(t, s.Close())

	s, err = New(ulogger.TestLogger{}, &url.URL{Scheme: "badger", Path: dir}, settings.NewSettings())
	require.NoError(t, err)

	defer func() {
		_ = s.Close()
	}()

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.CurrHash, loaded.CurrHash)
}

func TestOpenWithMemoryLimits(t *testing.T) {
	ctx := context.Background()

	for _, limit := range []bool{true, false} {
		tSettings := settings.NewSettings()
		tSettings.Badger.LimitMemory = limit

		s, err := New(ulogger.TestLogger{}, &url.URL{Scheme: "badgermemory"}, tSettings)
		require.NoError(t, err, "limitMemory=%t", limit)

		state, err := model.NewChainState(1, model.Header1PrevHash, model.TestBits, 3, "")
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, state))

		loaded, err := s.Load(ctx)
		require.NoError(t, err)

		want, err := state.Bytes()
		require.NoError(t, err)

		got, err := loaded.Bytes()
		require.NoError(t, err)
		assert.Equal(t, want, got)

		require.NoError(t, s.Close())
	}
}
