package sql

import (
	"context"
	"database/sql"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
)

const stateKey = "config"

func (s *SQL) Load(ctx context.Context) (*model.ChainState, error) {
	q := `
		SELECT data
		FROM state
		WHERE key = $1
	`

	var data []byte

	if err := s.db.QueryRowContext(ctx, q, stateKey).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewUninitializedError("chain state has not been initialized")
		}

		return nil, errors.NewStorageUnavailableError("[Load][%s] failed to read chain state", stateKey, err)
	}

	return model.NewChainStateFromBytes(data)
}

// Save writes the whole record with a single upsert.
func (s *SQL) Save(ctx context.Context, state *model.ChainState) error {
	data, err := state.Bytes()
	if err != nil {
		return err
	}

	q := `
		INSERT INTO state (key, data)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`

	if _, err = s.db.ExecContext(ctx, q, stateKey, data); err != nil {
		return errors.NewStorageUnavailableError("[Save][%s] failed to write chain state", stateKey, err)
	}

	return nil
}
