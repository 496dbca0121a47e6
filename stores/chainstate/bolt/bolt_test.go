package bolt

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	storeURL := &url.URL{Scheme: "bolt", Path: filepath.Join(dir, "state.db")}
	tSettings := settings.NewSettings()

	s, err := New(ulogger.TestLogger{}, storeURL, tSettings)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrUninitialized))

	state, err := model.NewChainState(0, model.Header1PrevHash, model.TestBits, 3, "")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, state))

	status, _, err := s.Health(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 200, status)

	require.NoError(t, s.Close())

	// state survives reopening the file
	s, err = New(ulogger.TestLogger{}, storeURL, tSettings)
	require.NoError(t, err)

	defer func() {
		_ = s.Close()
	}()

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.CurrHash, loaded.CurrHash)
	assert.Equal(t, state.ThresholdDifficulty, loaded.ThresholdDifficulty)
}

func TestStoreInDataFolder(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.DataFolder = t.TempDir()

	s, err := New(ulogger.TestLogger{}, &url.URL{Scheme: "bolt", Path: "/chain"}, tSettings)
	require.NoError(t, err)

	defer func() {
		_ = s.Close()
	}()

	assert.FileExists(t, filepath.Join(tSettings.DataFolder, "chain.bolt"))
}
