// Package badger keeps the chain state in a badger key value store.
package badger

import (
	"context"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/dgraph-io/badger/v4"
)

var stateKey = []byte("config")

type Badger struct {
	store  *badger.DB
	logger ulogger.Logger
}

type loggerWrapper struct {
	ulogger.Logger
}

func (l loggerWrapper) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

// New opens the store. The badgermemory scheme keeps everything in memory; for badger the
// URL path is the directory. A bare name such as badger:///chain is placed in the data folder.
func New(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*Badger, error) {
	logger = logger.New("cbadger")

	var opts badger.Options

	if storeURL.Scheme == "badgermemory" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := storeURL.Path
		if !filepath.IsAbs(dir) || filepath.Dir(dir) == "/" {
			dir = filepath.Join(tSettings.DataFolder, filepath.Base(dir))
		}

		opts = badger.DefaultOptions(dir)
	}

	opts = opts.WithLogger(loggerWrapper{logger}).WithLoggingLevel(badger.ERROR)

	// a single small record does not need badger's default memtables
	if tSettings.Badger.LimitMemory {
		opts = opts.
			WithBaseTableSize(1 << 20).
			WithMemTableSize(1 << 20).
			WithValueThreshold(1 << 10).
			WithNumMemtables(1).
			WithNumLevelZeroTables(1).
			WithNumLevelZeroTablesStall(2).
			WithValueLogFileSize(1 << 24)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.NewStorageUnavailableError("failed to open badger DB", err)
	}

	return &Badger{store: db, logger: logger}, nil
}

func (s *Badger) Load(_ context.Context) (*model.ChainState, error) {
	var data []byte

	err := s.store.View(func(tx *badger.Txn) error {
		item, err := tx.Get(stateKey)
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)

		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.NewUninitializedError("chain state has not been initialized")
		}

		return nil, errors.NewStorageUnavailableError("[Load] failed to read chain state", err)
	}

	return model.NewChainStateFromBytes(data)
}

func (s *Badger) Save(_ context.Context, state *model.ChainState) error {
	data, err := state.Bytes()
	if err != nil {
		return err
	}

	if err = s.store.Update(func(tx *badger.Txn) error {
		return tx.Set(stateKey, data)
	}); err != nil {
		return errors.NewStorageUnavailableError("[Save] failed to write chain state", err)
	}

	return nil
}

func (s *Badger) Health(_ context.Context, _ bool) (int, string, error) {
	if s.store.IsClosed() {
		return http.StatusServiceUnavailable, "Badger Store", errors.NewStorageNotStartedError("badger DB is closed")
	}

	return http.StatusOK, "Badger Store", nil
}

func (s *Badger) Close() error {
	return s.store.Close()
}
