package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleDigestHex(t *testing.T) {
	header, err := DecodeHex(Header1)
	require.NoError(t, err)

	assert.Equal(t, Header1Hash, DoubleDigestHex(header))
	// same input, same digest
	assert.Equal(t, DoubleDigestHex(header), DoubleDigestHex(header))
}

func TestDoubleDigestBitSensitivity(t *testing.T) {
	header, err := DecodeHex(Header1)
	require.NoError(t, err)

	original := DoubleDigestHex(header)

	for _, pos := range []int{0, 40, 79} {
		flipped := append([]byte(nil), header...)
		flipped[pos] ^= 0x01

		assert.NotEqual(t, original, DoubleDigestHex(flipped), "byte %d", pos)
	}
}

func TestDigestHexToInt(t *testing.T) {
	n, err := DigestHexToInt(Header1Hash)
	require.NoError(t, err)
	assert.Equal(t, "1e8d6829a8a21adc5d38d0a473b144b6765798e61f98bd1d", n.Text(16))

	_, err = DigestHexToInt("xyz")
	require.Error(t, err)

	digest, err := DecodeHex(Header2Hash)
	require.NoError(t, err)

	n, err = DigestHexToInt(Header2Hash)
	require.NoError(t, err)
	assert.Equal(t, 0, DigestToInt(digest).Cmp(n))
}
