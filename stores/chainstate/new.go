package chainstate

import (
	"context"
	"net/url"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/stores/chainstate/badger"
	"github.com/bitcoin-sv/headerchain/stores/chainstate/bolt"
	"github.com/bitcoin-sv/headerchain/stores/chainstate/memory"
	"github.com/bitcoin-sv/headerchain/stores/chainstate/sql"
	"github.com/bitcoin-sv/headerchain/tracing"
	"github.com/bitcoin-sv/headerchain/ulogger"
)

// NewStore returns the backend selected by the scheme of storeURL, instrumented with tracing
// and prometheus metrics.
func NewStore(logger ulogger.Logger, tSettings *settings.Settings, storeURL *url.URL) (Store, error) {
	if storeURL == nil {
		return nil, errors.NewConfigurationError("chain state store URL is not set")
	}

	initPrometheusMetrics()

	var (
		backend Store
		err     error
	)

	switch storeURL.Scheme {
	case "postgres", "sqlite", "sqlitememory":
		backend, err = sql.New(logger, storeURL, tSettings)
	case "bolt":
		backend, err = bolt.New(logger, storeURL, tSettings)
	case "badger", "badgermemory":
		backend, err = badger.New(logger, storeURL, tSettings)
	case "memory":
		backend = memory.New()
	default:
		return nil, errors.NewStorageError("unknown scheme: %s", storeURL.Scheme)
	}

	if err != nil {
		return nil, err
	}

	logger.Infof("[ChainState] using %s store", storeURL.Scheme)

	return &instrumentedStore{store: backend, scheme: storeURL.Scheme}, nil
}

type instrumentedStore struct {
	store  Store
	scheme string
}

func (s *instrumentedStore) Load(ctx context.Context) (*model.ChainState, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "chainstate:Load",
		tracing.WithHistogram(prometheusChainStateLoad),
		tracing.WithTag("scheme", s.scheme),
	)
	defer deferFn()

	state, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, errors.ErrUninitialized) {
		s.recordError(ctx, "load", err)
	}

	return state, err
}

func (s *instrumentedStore) Save(ctx context.Context, state *model.ChainState) error {
	ctx, _, deferFn := tracing.StartTracing(ctx, "chainstate:Save",
		tracing.WithHistogram(prometheusChainStateSave),
		tracing.WithTag("scheme", s.scheme),
	)
	defer deferFn()

	err := s.store.Save(ctx, state)
	if err != nil {
		s.recordError(ctx, "save", err)
	}

	return err
}

func (s *instrumentedStore) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	return s.store.Health(ctx, checkLiveness)
}

func (s *instrumentedStore) Close() error {
	return s.store.Close()
}

func (s *instrumentedStore) recordError(ctx context.Context, operation string, err error) {
	code := errors.ERR_UNKNOWN

	var tErr *errors.Error
	if errors.As(err, &tErr) {
		code = tErr.Code()
	}

	prometheusChainStateErrors.WithLabelValues(operation, code.String()).Inc()
	tracing.RecordError(ctx, err)
}
