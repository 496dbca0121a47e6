package model

import (
	"encoding/hex"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bsv-blockchain/go-bt/v2"
)

// DecodeHex decodes s, accepting either letter case.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewMalformedEncodingError(len(s), err)
	}

	return b, nil
}

// EncodeHex returns the lowercase hex encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// ReverseByteOrder converts a hex string between wire (little-endian) and display (big-endian)
// byte order.
func ReverseByteOrder(s string) (string, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return "", err
	}

	return EncodeHex(bt.ReverseBytes(b)), nil
}
