package model

import (
	"math"
	"strings"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChainState(t *testing.T) {
	state, err := NewChainState(10, strings.ToUpper(Header1PrevHash), TestBits, 3, "owner")
	require.NoError(t, err)

	assert.Equal(t, uint32(10), state.StartHeight)
	assert.Equal(t, uint32(0), state.CurrOffset)
	assert.Equal(t, Header1PrevHash, state.CurrHash)
	assert.Equal(t, "404cb"+strings.Repeat("0", 48), state.ThresholdDifficulty)
	assert.Equal(t, uint32(3), state.MinUpdateLength)
	assert.Equal(t, "owner", state.Owner)

	_, err = NewChainState(10, "abcd", TestBits, 3, "")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = NewChainState(10, strings.Repeat("z", 64), TestBits, 3, "")
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestChainStateSerialization(t *testing.T) {
	state, err := NewChainState(10, Header1PrevHash, TestBits, 3, "alice")
	require.NoError(t, err)

	b, err := state.Bytes()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"start_height": 10,
		"curr_offset": 0,
		"curr_hash": "`+Header1PrevHash+`",
		"threshold_difficulty": "404cb`+strings.Repeat("0", 48)+`",
		"min_update_length": 3,
		"owner": "alice"
	}`, string(b))

	decoded, err := NewChainStateFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, state.CurrHash, decoded.CurrHash)
	assert.Equal(t, state.ThresholdDifficulty, decoded.ThresholdDifficulty)

	_, err = NewChainStateFromBytes([]byte("{"))
	assert.True(t, errors.Is(err, errors.ErrProcessing))
}

func TestThresholdTarget(t *testing.T) {
	state := &ChainState{ThresholdDifficulty: "404cb" + strings.Repeat("0", 48)}

	threshold, err := state.ThresholdTarget()
	require.NoError(t, err)
	assert.Equal(t, 0, threshold.Cmp(BitsToTarget(TestBits)))

	// cached
	again, err := state.ThresholdTarget()
	require.NoError(t, err)
	assert.Same(t, threshold, again)

	_, err = (&ChainState{ThresholdDifficulty: "not hex"}).ThresholdTarget()
	assert.True(t, errors.Is(err, errors.ErrProcessing))

	_, err = (&ChainState{}).ThresholdTarget()
	assert.Error(t, err)
}

func TestChainStateExtend(t *testing.T) {
	state, err := NewChainState(10, Header1PrevHash, TestBits, 3, "")
	require.NoError(t, err)

	next, err := state.Extend(Header3Hash, 3)
	require.NoError(t, err)

	assert.Equal(t, Header3Hash, next.CurrHash)
	assert.Equal(t, uint32(3), next.CurrOffset)
	assert.Equal(t, uint64(13), next.Height())

	// input untouched
	assert.Equal(t, Header1PrevHash, state.CurrHash)
	assert.Equal(t, uint32(0), state.CurrOffset)

	state.CurrOffset = math.MaxUint32 - 1
	_, err = state.Extend(Header3Hash, 2)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestChainStateInfo(t *testing.T) {
	state, err := NewChainState(10, Header1PrevHash, TestBits, 3, "alice")
	require.NoError(t, err)

	info := state.Info()
	assert.Equal(t, &InfoResponse{
		StartHeight:   10,
		MinDifficulty: state.ThresholdDifficulty,
		CurrHash:      Header1PrevHash,
		CurrOffset:    0,
	}, info)
}
