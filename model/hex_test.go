package model

import (
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	b, err := DecodeHex("00ffAB")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0xab}, b)

	b, err = DecodeHex("")
	require.NoError(t, err)
	assert.Empty(t, b)

	for _, invalid := range []string{"abc", "zz", "0x00"} {
		_, err = DecodeHex(invalid)
		require.Error(t, err, invalid)

		var tErr *errors.Error
		require.True(t, errors.As(err, &tErr))
		assert.Equal(t, errors.ERR_MALFORMED_ENCODING, tErr.Code())
		assert.Equal(t, len(invalid), tErr.GetData("input_len"))
	}
}

func TestEncodeHex(t *testing.T) {
	assert.Equal(t, "00ffab", EncodeHex([]byte{0x00, 0xff, 0xab}))
	assert.Equal(t, "", EncodeHex(nil))
}

func TestReverseByteOrder(t *testing.T) {
	reversed, err := ReverseByteOrder(Header1Hash)
	require.NoError(t, err)
	assert.Equal(t, "00000000000000001e8d6829a8a21adc5d38d0a473b144b6765798e61f98bd1d", reversed)

	back, err := ReverseByteOrder(reversed)
	require.NoError(t, err)
	assert.Equal(t, Header1Hash, back)

	_, err = ReverseByteOrder("abc")
	assert.True(t, errors.Is(err, errors.ErrMalformedEncoding))
}
