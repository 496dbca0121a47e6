package memory

import (
	"context"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := New()

	_, err := m.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrUninitialized))

	state, err := model.NewChainState(0, model.Header1PrevHash, model.TestBits, 3, "")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, state))

	// the stored copy is independent of the caller's value
	state.CurrOffset = 99

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), loaded.CurrOffset)

	assert.Error(t, m.Save(ctx, nil))
}
