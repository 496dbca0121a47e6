package model

import (
	"math/big"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// DoubleDigest is SHA-256 applied twice.
func DoubleDigest(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// DoubleDigestHex hex encodes the digest bytes as produced, which is wire byte order.
func DoubleDigestHex(b []byte) string {
	return EncodeHex(DoubleDigest(b))
}

// DigestToInt interprets a wire order digest as the unsigned integer compared against targets.
func DigestToInt(digest []byte) *big.Int {
	return new(big.Int).SetBytes(bt.ReverseBytes(digest))
}

// DigestHexToInt is DigestToInt for a hex encoded digest: the wire order hex is reversed to
// display order and read as a big-endian number.
func DigestHexToInt(digestHex string) (*big.Int, error) {
	displayHex, err := ReverseByteOrder(digestHex)
	if err != nil {
		return nil, err
	}

	value, ok := new(big.Int).SetString(displayHex, 16)
	if !ok {
		return nil, errors.NewMalformedEncodingError(len(digestHex))
	}

	return value, nil
}
