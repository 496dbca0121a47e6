package model

import (
	"encoding/binary"
	"math/big"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bsv-blockchain/go-bt/v2"
)

// genesisBits is the difficulty-1 target that difficulties are expressed relative to.
const genesisBits = 0x1d00ffff

// NBit is the compact difficulty field of a block header in wire (little-endian) byte order.
type NBit [4]byte

func NewNBitFromSlice(b []byte) (NBit, error) {
	var n NBit

	if len(b) != 4 {
		return n, errors.NewInvalidArgumentError("nBits should be 4 bytes long, got %d", len(b))
	}

	copy(n[:], b)

	return n, nil
}

// NewNBitFromString parses the big-endian hex form used by RPC, e.g. "1b0404cb".
func NewNBitFromString(s string) (NBit, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return NBit{}, err
	}

	return NewNBitFromSlice(bt.ReverseBytes(b))
}

func NewNBitFromUint32(compact uint32) NBit {
	var n NBit

	binary.LittleEndian.PutUint32(n[:], compact)

	return n
}

func (b NBit) Uint32() uint32 {
	return binary.LittleEndian.Uint32(b[:])
}

func (b NBit) String() string {
	return EncodeHex(bt.ReverseBytes(b[:]))
}

func (b NBit) CloneBytes() []byte {
	return append([]byte(nil), b[:]...)
}

func (b NBit) CalculateTarget() *big.Int {
	return BitsToTarget(b.Uint32())
}

// CalculateDifficulty is the ratio of the difficulty-1 target to this target.
func (b NBit) CalculateDifficulty() *big.Float {
	target := b.CalculateTarget()
	if target.Sign() == 0 {
		return new(big.Float)
	}

	genesis := new(big.Float).SetInt(BitsToTarget(genesisBits))

	return new(big.Float).Quo(genesis, new(big.Float).SetInt(target))
}

// BitsToTarget expands a compact difficulty into its 256 bit target. The top byte is the
// exponent, the low 23 bits the mantissa. The sign bit is ignored.
func BitsToTarget(compact uint32) *big.Int {
	exponent := compact >> 24
	mantissa := big.NewInt(int64(compact & 0x007fffff))

	if exponent <= 3 {
		return mantissa.Rsh(mantissa, uint(8*(3-exponent)))
	}

	return mantissa.Lsh(mantissa, uint(8*(exponent-3)))
}

// ParseCompactBits reads the 8 hex character bits field of a header, which is little-endian
// on the wire.
func ParseCompactBits(hex8 string) (uint32, error) {
	b, err := DecodeHex(hex8)
	if err != nil {
		return 0, err
	}

	if len(b) != 4 {
		return 0, errors.NewMalformedEncodingError(len(hex8))
	}

	return binary.LittleEndian.Uint32(b), nil
}
