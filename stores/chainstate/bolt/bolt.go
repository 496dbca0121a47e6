// Package bolt keeps the chain state in a single bbolt bucket.
package bolt

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketName = []byte("headerchain")
	stateKey   = []byte("config")
)

type Store struct {
	db     *bolt.DB
	logger ulogger.Logger
}

// New opens the database file named by the URL path. A bare name such as bolt:///chain is
// placed in the data folder as chain.bolt.
func New(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*Store, error) {
	logger = logger.New("cbolt")

	filename := storeURL.Path
	if filepath.Ext(filename) == "" {
		if err := os.MkdirAll(tSettings.DataFolder, 0o755); err != nil {
			return nil, errors.NewStorageUnavailableError("failed to create data folder %s", tSettings.DataFolder, err)
		}

		filename = filepath.Join(tSettings.DataFolder, filepath.Base(filename)+".bolt")
	}

	db, err := bolt.Open(filename, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.NewStorageUnavailableError("failed to open bolt DB %s", filename, err)
	}

	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.NewStorageError("failed to create bucket %s", bucketName, err)
	}

	logger.Infof("Using bolt DB: %s", filename)

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Load(_ context.Context) (*model.ChainState, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(stateKey)
		if v != nil {
			// v is only valid for the lifetime of the transaction
			data = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return nil, errors.NewStorageUnavailableError("[Load] failed to read chain state", err)
	}

	if data == nil {
		return nil, errors.NewUninitializedError("chain state has not been initialized")
	}

	return model.NewChainStateFromBytes(data)
}

func (s *Store) Save(_ context.Context, state *model.ChainState) error {
	data, err := state.Bytes()
	if err != nil {
		return err
	}

	if err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(stateKey, data)
	}); err != nil {
		return errors.NewStorageUnavailableError("[Save] failed to write chain state", err)
	}

	return nil
}

func (s *Store) Health(_ context.Context, _ bool) (int, string, error) {
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return errors.NewStorageError("bucket %s is missing", bucketName)
		}

		return nil
	})
	if err != nil {
		return http.StatusServiceUnavailable, "bolt DB unavailable", err
	}

	return http.StatusOK, "OK", nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
