// Package headerchain verifies proposed extensions of a proof-of-work header chain and keeps
// the accepted chain state in a chain state store.
package headerchain

import (
	"context"
	"net/http"
	"sync"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/services/headerchain/http_impl"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/stores/chainstate"
	"github.com/bitcoin-sv/headerchain/tracing"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/bitcoin-sv/headerchain/util/health"
	"github.com/looplab/fsm"
	"github.com/ordishs/gocore"
)

var stats = gocore.NewStat("headerchain")

// Server owns the chain state. Initialize and UpdateBlockOffset are serialized, so each one
// loads, validates and saves before the next observes the state.
type Server struct {
	logger      ulogger.Logger
	settings    *settings.Settings
	store       chainstate.Store
	digestCache *DigestCache
	fsm         *fsm.FSM
	httpServer  *http_impl.HTTP

	// mu guards every state transition
	mu sync.Mutex
}

func New(logger ulogger.Logger, tSettings *settings.Settings, store chainstate.Store) *Server {
	initPrometheusMetrics()

	var digestCache *DigestCache
	if tSettings.HeaderChain.DigestCacheTTL > 0 {
		digestCache = NewDigestCache(tSettings.HeaderChain.DigestCacheTTL, tSettings.HeaderChain.DigestCacheSize)
		registerDigestCacheGauge(digestCache)
	}

	return &Server{
		logger:      logger,
		settings:    tSettings,
		store:       store,
		digestCache: digestCache,
		fsm:         NewFiniteStateMachine(),
	}
}

func (s *Server) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness {
		return http.StatusOK, "OK", nil
	}

	checks := []health.Check{
		{Name: "ChainStateStore", Check: s.store.Health},
		{Name: "FSM", Check: s.checkFSM},
	}

	return health.CheckAll(ctx, checkLiveness, checks)
}

// checkFSM reports the lifecycle state. An uninitialized chain is still a healthy service.
func (s *Server) checkFSM(_ context.Context, _ bool) (int, string, error) {
	return http.StatusOK, s.fsm.Current(), nil
}

// Init moves the lifecycle to READY when the store already holds a chain state.
func (s *Server) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrUninitialized) {
			s.logger.Infof("[HeaderChain] no chain state found, waiting for initialization")
			return nil
		}

		return err
	}

	if err = s.fsm.Event(ctx, EventInitialize); err != nil {
		return errors.NewProcessingError("[HeaderChain] failed to move to %s", StateReady, err)
	}

	prometheusHeaderChainCurrentOffset.Set(float64(state.CurrOffset))

	s.logger.Infof("[HeaderChain] loaded chain state at height %d (offset %d, hash %s)", state.Height(), state.CurrOffset, state.CurrHash)

	return nil
}

// Start serves the HTTP API until ctx is cancelled.
func (s *Server) Start(ctx context.Context, readyCh chan<- struct{}) error {
	httpServer, err := http_impl.New(s.logger, s.settings, s)
	if err != nil {
		return err
	}

	s.httpServer = httpServer

	close(readyCh)

	return httpServer.Start(ctx, s.settings.HeaderChain.HTTPListenAddress)
}

func (s *Server) Stop(ctx context.Context) error {
	if s.digestCache != nil {
		s.digestCache.Stop()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.logger.Warnf("[HeaderChain] error stopping HTTP server: %v", err)
		}
	}

	return s.store.Close()
}

// State returns the current lifecycle state.
func (s *Server) State() string {
	return s.fsm.Current()
}

// Initialize creates the chain state. It fails with ErrAlreadyInitialized when one exists.
func (s *Server) Initialize(ctx context.Context, sender string, req *model.InitRequest) error {
	ctx, _, deferFn := tracing.StartTracing(ctx, "Initialize",
		tracing.WithParentStat(stats),
		tracing.WithCounter(prometheusHeaderChainInitialize),
		tracing.WithLogMessage(s.logger, "[Initialize] called by %q", sender),
	)
	defer deferFn()

	if req == nil {
		return errors.NewInvalidArgumentError("init request is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.store.Load(ctx)

	switch {
	case err == nil:
		return errors.NewAlreadyInitializedError("chain state is already initialized")
	case !errors.Is(err, errors.ErrUninitialized):
		return err
	}

	state, err := model.NewChainState(req.StartHeight, req.StartHash, req.MinDifficultyBits, req.MinUpdateLength, sender)
	if err != nil {
		return err
	}

	if err = s.store.Save(ctx, state); err != nil {
		tracing.RecordError(ctx, err)
		return err
	}

	if s.fsm.Can(EventInitialize) {
		if err = s.fsm.Event(ctx, EventInitialize); err != nil {
			s.logger.Warnf("[Initialize] failed to move to %s: %v", StateReady, err)
		}
	}

	prometheusHeaderChainCurrentOffset.Set(0)

	s.logger.Infof("[Initialize] chain anchored at height %d hash %s, threshold %s, min update length %d",
		state.StartHeight, state.CurrHash, state.ThresholdDifficulty, state.MinUpdateLength)

	return nil
}

// UpdateBlockOffset appends headers to the chain. On any failure the stored state is left
// untouched.
func (s *Server) UpdateBlockOffset(ctx context.Context, sender string, headers []string) error {
	ctx, stat, deferFn := tracing.StartTracing(ctx, "UpdateBlockOffset",
		tracing.WithParentStat(stats),
		tracing.WithCounter(prometheusHeaderChainUpdate),
		tracing.WithLogMessage(s.logger, "[UpdateBlockOffset] %d headers from %q", len(headers), sender),
	)
	defer deferFn()

	err := s.updateBlockOffset(ctx, stat, sender, headers)
	if err != nil {
		prometheusHeaderChainUpdateRejected.WithLabelValues(errorCode(err)).Inc()
		tracing.RecordError(ctx, err)

		if errors.IsValidationError(err) {
			s.logger.Warnf("[UpdateBlockOffset] rejected: %v", err)
		} else {
			s.logger.Errorf("[UpdateBlockOffset] failed: %v", err)
		}

		return err
	}

	prometheusHeaderChainUpdateAccepted.Inc()
	prometheusHeaderChainHeadersAccepted.Add(float64(len(headers)))

	return nil
}

func (s *Server) updateBlockOffset(ctx context.Context, stat *gocore.Stat, sender string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if !s.settings.HeaderChain.PermissionlessUpdate && sender != state.Owner {
		return errors.NewUnauthorizedError("sender %q is not the owner of the chain", sender)
	}

	_, _, validateDone := tracing.StartTracing(ctx, "ExtendChain",
		tracing.WithParentStat(stat),
		tracing.WithHistogram(prometheusHeaderChainValidate),
	)

	next, err := ExtendChain(state, headers, WithDigestCache(s.digestCache), WithLogger(s.logger))

	validateDone()

	if err != nil {
		return err
	}

	if err = s.store.Save(ctx, next); err != nil {
		return err
	}

	prometheusHeaderChainCurrentOffset.Set(float64(next.CurrOffset))

	s.logger.Infof("[UpdateBlockOffset] chain extended to offset %d (height %d) hash %s", next.CurrOffset, next.Height(), next.CurrHash)

	return nil
}

func (s *Server) GetContractInfo(ctx context.Context) (*model.InfoResponse, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "GetContractInfo",
		tracing.WithParentStat(stats),
		tracing.WithCounter(prometheusHeaderChainGetContractInfo),
	)
	defer deferFn()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return state.Info(), nil
}

func errorCode(err error) string {
	var tErr *errors.Error
	if errors.As(err, &tErr) {
		return tErr.Code().String()
	}

	return errors.ERR_UNKNOWN.String()
}
