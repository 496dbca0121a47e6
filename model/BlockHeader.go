package model

import (
	"encoding/binary"
	"math/big"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

const (
	// BlockHeaderSize is the serialized size of a header in bytes.
	BlockHeaderSize = 80
	// BlockHeaderHexSize is the length of a hex encoded header.
	BlockHeaderHexSize = 2 * BlockHeaderSize
)

// Offsets of the fields inside a hex encoded header.
const (
	prevHashHexStart = 8
	prevHashHexEnd   = 72
	bitsHexStart     = 144
	bitsHexEnd       = 152
)

type BlockHeader struct {
	// Version of the block. This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the blockchain.
	HashPrevBlock *chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	HashMerkleRoot *chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Difficulty target for the block.
	Bits NBit

	// Nonce used to generate the block.
	Nonce uint32
}

func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) != BlockHeaderSize {
		return nil, errors.NewMalformedHeaderError(2*len(headerBytes), BlockHeaderHexSize)
	}

	hashPrevBlock, err := chainhash.NewHash(headerBytes[4:36])
	if err != nil {
		return nil, errors.NewProcessingError("error creating previous block hash from bytes", err)
	}

	hashMerkleRoot, err := chainhash.NewHash(headerBytes[36:68])
	if err != nil {
		return nil, errors.NewProcessingError("error creating merkle root hash from bytes", err)
	}

	bits, _ := NewNBitFromSlice(headerBytes[72:76])

	return &BlockHeader{
		Version:        binary.LittleEndian.Uint32(headerBytes[:4]),
		HashPrevBlock:  hashPrevBlock,
		HashMerkleRoot: hashMerkleRoot,
		Timestamp:      binary.LittleEndian.Uint32(headerBytes[68:72]),
		Bits:           bits,
		Nonce:          binary.LittleEndian.Uint32(headerBytes[76:]),
	}, nil
}

// NewBlockHeaderFromString decodes a 160 character hex header. Any length or encoding problem
// is reported as a malformed header.
func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	if len(headerHex) != BlockHeaderHexSize {
		return nil, errors.NewMalformedHeaderError(len(headerHex), BlockHeaderHexSize)
	}

	headerBytes, err := DecodeHex(headerHex)
	if err != nil {
		mErr := errors.New(errors.ERR_MALFORMED_HEADER, "Encoded block header is not valid hex", err)
		mErr.SetData("actual_len", len(headerHex))
		mErr.SetData("expected_len", BlockHeaderHexSize)
		mErr.SetData("reason", "invalid hex encoding")

		return nil, mErr
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

// NewBlockHeaderFromFields assembles a header from the values a node reports over RPC: hashes
// in display (big-endian) hex and bits as the 8 character big-endian hex string.
func NewBlockHeaderFromFields(version uint32, prevHash, merkleRoot string, timestamp uint32, bits string, nonce uint32) (*BlockHeader, error) {
	hashPrevBlock, err := chainhash.NewHashFromStr(prevHash)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid previous block hash %q", prevHash, err)
	}

	hashMerkleRoot, err := chainhash.NewHashFromStr(merkleRoot)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid merkle root %q", merkleRoot, err)
	}

	nBits, err := NewNBitFromString(bits)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid bits %q", bits, err)
	}

	return &BlockHeader{
		Version:        version,
		HashPrevBlock:  hashPrevBlock,
		HashMerkleRoot: hashMerkleRoot,
		Timestamp:      timestamp,
		Bits:           nBits,
		Nonce:          nonce,
	}, nil
}

func (bh *BlockHeader) Bytes() []byte {
	b := make([]byte, BlockHeaderSize)

	binary.LittleEndian.PutUint32(b[0:4], bh.Version)
	copy(b[4:36], bh.HashPrevBlock.CloneBytes())
	copy(b[36:68], bh.HashMerkleRoot.CloneBytes())
	binary.LittleEndian.PutUint32(b[68:72], bh.Timestamp)
	copy(b[72:76], bh.Bits[:])
	binary.LittleEndian.PutUint32(b[76:80], bh.Nonce)

	return b
}

func (bh *BlockHeader) Hash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(bh.Bytes())
	return &hash
}

// HashHex is the header digest in wire byte order, the form chain state hashes are kept in.
func (bh *BlockHeader) HashHex() string {
	return DoubleDigestHex(bh.Bytes())
}

func (bh *BlockHeader) Hex() string {
	return EncodeHex(bh.Bytes())
}

// PrevHashHex is the previous block hash in wire byte order.
func (bh *BlockHeader) PrevHashHex() string {
	return EncodeHex(bh.HashPrevBlock.CloneBytes())
}

// HasMetTargetDifficulty reports whether the header hash is at or below the target encoded
// in its own bits field.
func (bh *BlockHeader) HasMetTargetDifficulty() bool {
	return DigestToInt(DoubleDigest(bh.Bytes())).Cmp(bh.Bits.CalculateTarget()) <= 0
}

func (bh *BlockHeader) Target() *big.Int {
	return bh.Bits.CalculateTarget()
}

// PrevHashFromHex returns the previous block hash field of a hex header exactly as written.
// The caller must have checked the length.
func PrevHashFromHex(headerHex string) string {
	return headerHex[prevHashHexStart:prevHashHexEnd]
}

// BitsFromHex returns the bits field of a hex header exactly as written. The caller must have
// checked the length.
func BitsFromHex(headerHex string) string {
	return headerHex[bitsHexStart:bitsHexEnd]
}
