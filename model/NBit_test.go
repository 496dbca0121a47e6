package model

import (
	"math/big"
	"strings"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
The bits "1e0cbb05" split into exponent 0x1e and mantissa 0x0cbb05, so the target is
0x0cbb05 << 8*(0x1e-3). Relative to the difficulty-1 target 0xffff << 8*(0x1d-3) this gives
65535 / (0x0cbb05 * 256) = 0.0003068360688.
*/
func TestNBit(t *testing.T) {
	bits, err := NewNBitFromString("1e0cbb05")
	require.NoError(t, err)
	require.Equal(t, "1e0cbb05", bits.String())
	require.Equal(t, uint32(0x1e0cbb05), bits.Uint32())

	difficulty := bits.CalculateDifficulty()
	require.Equal(t, "0.0003068360688", difficulty.String())

	target := bits.CalculateTarget()
	require.Equal(t, "87862992749702277876753291758735394717545048148536728461472937357082624", target.String())
}

func TestCalculateTarget(t *testing.T) {
	bits, err := NewNBitFromString("180f7f7d") // block #869334
	require.NoError(t, err)

	difficulty, _ := bits.CalculateDifficulty().Float32()
	expectedDifficulty, _ := big.NewFloat(70944300723.85233).Float32()
	require.Equal(t, expectedDifficulty, difficulty)

	target := bits.CalculateTarget()
	require.Equal(t, "380009881215830907712605183958726704270100120947772096512", target.String())
}

func TestGenesisDifficultyIsOne(t *testing.T) {
	assert.Equal(t, "1", NewNBitFromUint32(0x1d00ffff).CalculateDifficulty().String())
	assert.Equal(t, "0", NewNBitFromUint32(0).CalculateDifficulty().String())
}

func TestNBitRoundTrip(t *testing.T) {
	bits := NewNBitFromUint32(0x1a44b9f2)

	assert.Equal(t, "1a44b9f2", bits.String())
	assert.Equal(t, []byte{0xf2, 0xb9, 0x44, 0x1a}, bits.CloneBytes())

	fromSlice, err := NewNBitFromSlice(bits.CloneBytes())
	require.NoError(t, err)
	assert.Equal(t, bits, fromSlice)

	_, err = NewNBitFromSlice([]byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = NewNBitFromString("zz")
	assert.True(t, errors.Is(err, errors.ErrMalformedEncoding))
}

func TestBitsToTarget(t *testing.T) {
	tests := []struct {
		name     string
		compact  uint32
		expected string
	}{
		{"scenario threshold", 0x1b0404cb, "404cb" + strings.Repeat("0", 48)},
		{"header bits", 0x1a44b9f2, "44b9f2" + strings.Repeat("0", 46)},
		{"exponent 4", 0x04123456, "12345600"},
		{"exponent 3", 0x03123456, "123456"},
		{"exponent 2", 0x02123456, "1234"},
		{"exponent 1", 0x01123456, "12"},
		{"exponent 0", 0x00123456, "0"},
		{"sign bit ignored", 0x03923456, "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BitsToTarget(tt.compact).Text(16))
		})
	}
}

func TestBitsToTargetDeterministic(t *testing.T) {
	for _, c := range []uint32{0, 0x1d00ffff, 0x207fffff, 0xffffffff} {
		assert.Equal(t, 0, BitsToTarget(c).Cmp(BitsToTarget(c)))
	}
}

func TestBitsToTargetMonotonicInExponent(t *testing.T) {
	const mantissa = 0x00ffff

	prev := BitsToTarget(3<<24 | mantissa)

	for exponent := uint32(4); exponent <= 0x20; exponent++ {
		next := BitsToTarget(exponent<<24 | mantissa)
		require.Equal(t, 1, next.Cmp(prev), "exponent %d", exponent)

		prev = next
	}
}

func TestParseCompactBits(t *testing.T) {
	bits, err := ParseCompactBits("f2b9441a")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1a44b9f2), bits)

	bits, err = ParseCompactBits(BitsFromHex(Header1))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1a44b9f2), bits)

	_, err = ParseCompactBits("f2b9")
	assert.True(t, errors.Is(err, errors.ErrMalformedEncoding))

	_, err = ParseCompactBits("f2b9441g")
	assert.True(t, errors.Is(err, errors.ErrMalformedEncoding))
}
