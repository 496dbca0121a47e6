// Package memory keeps the chain state in process memory, for tests and throwaway instances.
package memory

import (
	"context"
	"net/http"
	"sync"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
)

type Memory struct {
	mu    sync.RWMutex
	state *model.ChainState
}

func New() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*model.ChainState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return nil, errors.NewUninitializedError("chain state has not been initialized")
	}

	return m.state.Clone(), nil
}

func (m *Memory) Save(_ context.Context, state *model.ChainState) error {
	if state == nil {
		return errors.NewInvalidArgumentError("chain state is nil")
	}

	m.mu.Lock()
	m.state = state.Clone()
	m.mu.Unlock()

	return nil
}

func (m *Memory) Health(_ context.Context, _ bool) (int, string, error) {
	return http.StatusOK, "OK", nil
}

func (m *Memory) Close() error {
	return nil
}
