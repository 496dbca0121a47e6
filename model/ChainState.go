package model

import (
	"math"
	"math/big"
	"strings"

	"github.com/bitcoin-sv/headerchain/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChainState is the single persisted record of a header chain: where it started, how far it
// has been extended and the difficulty ceiling every header must respect.
//
// A ChainState caches its parsed threshold and is not safe for concurrent use.
type ChainState struct {
	StartHeight         uint32 `json:"start_height"`
	CurrOffset          uint32 `json:"curr_offset"`
	CurrHash            string `json:"curr_hash"`
	ThresholdDifficulty string `json:"threshold_difficulty"`
	MinUpdateLength     uint32 `json:"min_update_length"`
	Owner               string `json:"owner"`

	threshold *big.Int
}

// NewChainState builds the initial state of a chain anchored at startHash, which must be 64
// hex characters in wire byte order. The threshold is the expansion of minDifficultyBits.
func NewChainState(startHeight uint32, startHash string, minDifficultyBits uint32, minUpdateLength uint32, owner string) (*ChainState, error) {
	startHash = strings.ToLower(startHash)

	if len(startHash) != 2*32 {
		return nil, errors.NewInvalidArgumentError("start hash must be 64 hex characters, got %d", len(startHash))
	}

	if _, err := DecodeHex(startHash); err != nil {
		return nil, errors.NewInvalidArgumentError("start hash is not valid hex", err)
	}

	threshold := BitsToTarget(minDifficultyBits)

	return &ChainState{
		StartHeight:         startHeight,
		CurrOffset:          0,
		CurrHash:            startHash,
		ThresholdDifficulty: threshold.Text(16),
		MinUpdateLength:     minUpdateLength,
		Owner:               owner,
		threshold:           threshold,
	}, nil
}

func NewChainStateFromBytes(b []byte) (*ChainState, error) {
	state := &ChainState{}

	if err := json.Unmarshal(b, state); err != nil {
		return nil, errors.NewProcessingError("failed to decode chain state", err)
	}

	return state, nil
}

func (s *ChainState) Bytes() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.NewProcessingError("failed to encode chain state", err)
	}

	return b, nil
}

// ThresholdTarget parses ThresholdDifficulty once and caches the result.
func (s *ChainState) ThresholdTarget() (*big.Int, error) {
	if s.threshold != nil {
		return s.threshold, nil
	}

	threshold, ok := new(big.Int).SetString(s.ThresholdDifficulty, 16)
	if !ok || threshold.Sign() < 0 {
		return nil, errors.NewProcessingError("stored threshold difficulty %q is not a hex number", s.ThresholdDifficulty)
	}

	s.threshold = threshold

	return threshold, nil
}

// Extend returns a copy of the state advanced by count headers ending at currHash.
func (s *ChainState) Extend(currHash string, count int) (*ChainState, error) {
	if count < 0 || uint64(s.CurrOffset)+uint64(count) > math.MaxUint32 {
		return nil, errors.NewInvalidArgumentError("offset %d cannot be advanced by %d headers", s.CurrOffset, count)
	}

	next := s.Clone()
	next.CurrHash = currHash
	next.CurrOffset = s.CurrOffset + uint32(count)

	return next, nil
}

func (s *ChainState) Clone() *ChainState {
	c := *s
	return &c
}

// Height is the block height of CurrHash.
func (s *ChainState) Height() uint64 {
	return uint64(s.StartHeight) + uint64(s.CurrOffset)
}

func (s *ChainState) Info() *InfoResponse {
	return &InfoResponse{
		StartHeight:   s.StartHeight,
		MinDifficulty: s.ThresholdDifficulty,
		CurrHash:      s.CurrHash,
		CurrOffset:    s.CurrOffset,
	}
}

// InfoResponse is the public view of a chain state.
type InfoResponse struct {
	StartHeight   uint32 `json:"start_height"`
	MinDifficulty string `json:"min_difficulty"`
	CurrHash      string `json:"curr_hash"`
	CurrOffset    uint32 `json:"curr_offset"`
}

type InitRequest struct {
	StartHeight       uint32 `json:"start_height"`
	MinDifficultyBits uint32 `json:"min_difficulty_bits"`
	MinUpdateLength   uint32 `json:"min_update_length"`
	StartHash         string `json:"start_hash"`
}

type UpdateRequest struct {
	BlockHeaders []string `json:"block_headers"`
}
