package relay

import (
	"context"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/ordishs/go-bitcoin"
)

// HeaderSource supplies raw block headers by height.
type HeaderSource interface {
	// BestHeight is the height of the tip of the source's chain.
	BestHeight(ctx context.Context) (uint64, error)
	// HeaderHex returns the 160 character wire encoding of the header at height.
	HeaderHex(ctx context.Context, height uint64) (string, error)
}

// RPCSource reads headers from a bitcoin node over JSON-RPC.
type RPCSource struct {
	client *bitcoin.Bitcoind
}

func NewRPCSource(tSettings *settings.Settings) (*RPCSource, error) {
	r := tSettings.Relay

	client, err := bitcoin.New(r.RPCHost, r.RPCPort, r.RPCUser, r.RPCPassword, r.RPCUseSSL)
	if err != nil {
		return nil, errors.NewNetworkError("failed to create RPC client for %s:%d", r.RPCHost, r.RPCPort, err)
	}

	return &RPCSource{client: client}, nil
}

func (s *RPCSource) BestHeight(_ context.Context) (uint64, error) {
	info, err := s.client.GetBlockchainInfo()
	if err != nil {
		return 0, errors.NewNetworkError("getblockchaininfo failed", err)
	}

	return uint64(info.Blocks), nil
}

func (s *RPCSource) HeaderHex(_ context.Context, height uint64) (string, error) {
	hash, err := s.client.GetBlockHash(int(height))
	if err != nil {
		return "", errors.NewNetworkError("getblockhash %d failed", height, err)
	}

	h, err := s.client.GetBlockHeader(hash)
	if err != nil {
		return "", errors.NewNetworkError("getblockheader %s failed", hash, err)
	}

	header, err := model.NewBlockHeaderFromFields(uint32(h.Version), h.PreviousBlockHash, h.MerkleRoot, uint32(h.Time), h.Bits, uint32(h.Nonce))
	if err != nil {
		return "", errors.NewNetworkInvalidResponseError("node returned an unusable header for %s", hash, err)
	}

	if header.Hash().String() != hash {
		return "", errors.NewNetworkInvalidResponseError("rebuilt header hash %s does not match %s", header.Hash().String(), hash)
	}

	return header.Hex(), nil
}
