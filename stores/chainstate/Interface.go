// Package chainstate persists the single ChainState record of a header chain.
package chainstate

import (
	"context"

	"github.com/bitcoin-sv/headerchain/model"
)

// StateKey is the key the chain state record is stored under in every backend.
const StateKey = "config"

type Store interface {
	// Load returns errors.ErrUninitialized when no state has been saved yet.
	Load(ctx context.Context) (*model.ChainState, error)
	// Save replaces the stored state in a single atomic write.
	Save(ctx context.Context, state *model.ChainState) error
	Health(ctx context.Context, checkLiveness bool) (int, string, error)
	Close() error
}
