// Package relay follows a bitcoin node and submits its headers to a header chain service in
// batches.
package relay

import (
	"context"
	"net/http"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/services/headerchain"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/tracing"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/bitcoin-sv/headerchain/util/health"
	"github.com/bitcoin-sv/headerchain/util/retry"
	"github.com/ordishs/gocore"
)

var stats = gocore.NewStat("relay")

type Relay struct {
	logger      ulogger.Logger
	settings    *settings.Settings
	source      HeaderSource
	headerChain headerchain.ClientI
	batchSize   uint64
}

// New creates a relay. The batch size is the larger of relay_batchSize and
// headerchain_minUpdateLength, and at least 1.
func New(logger ulogger.Logger, tSettings *settings.Settings, source HeaderSource, headerChain headerchain.ClientI) *Relay {
	initPrometheusMetrics()

	// smaller batches would be rejected as insufficient
	batchSize := max(uint64(tSettings.Relay.BatchSize), uint64(tSettings.HeaderChain.MinUpdateLength), 1)

	return &Relay{
		logger:      logger,
		settings:    tSettings,
		source:      source,
		headerChain: headerChain,
		batchSize:   batchSize,
	}
}

func (r *Relay) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness {
		return http.StatusOK, "OK", nil
	}

	checks := []health.Check{
		{Name: "HeaderChain", Check: r.checkHeaderChain},
		{Name: "HeaderSource", Check: r.checkSource},
	}

	return health.CheckAll(ctx, checkLiveness, checks)
}

// checkHeaderChain only needs the header chain server to be reachable; an uninitialized
// chain is reported by Sync.
func (r *Relay) checkHeaderChain(ctx context.Context, _ bool) (int, string, error) {
	return r.headerChain.Health(ctx, true)
}

func (r *Relay) checkSource(ctx context.Context, _ bool) (int, string, error) {
	if _, err := r.source.BestHeight(ctx); err != nil {
		return http.StatusServiceUnavailable, "header source unreachable", err
	}

	return http.StatusOK, "OK", nil
}

// Start syncs immediately and then once per relay_pollInterval until ctx is cancelled. Errors
// are logged and the next tick tries again.
func (r *Relay) Start(ctx context.Context, readyCh chan<- struct{}) error {
	close(readyCh)

	interval := r.settings.Relay.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.Sync(ctx); err != nil {
			if errors.IsContextError(err) {
				return nil
			}

			r.logger.Errorf("[Relay] sync failed (%s): %v", errors.GetErrorCategory(err), err)
		}

		select {
		case <-ctx.Done():
			r.logger.Infof("[Relay] stopping")
			return nil
		case <-ticker.C:
		}
	}
}

// Sync submits every complete batch between the chain tip of the header chain service and the
// tip of the source, returning the number of headers submitted.
func (r *Relay) Sync(ctx context.Context) (int, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "Sync",
		tracing.WithParentStat(stats),
		tracing.WithHistogram(prometheusRelaySync),
	)
	defer deferFn()

	info, err := r.headerChain.GetContractInfo(ctx)
	if err != nil {
		return 0, err
	}

	best, err := retry.Retry(ctx, r.logger, func() (uint64, error) {
		return r.source.BestHeight(ctx)
	}, r.retryOptions("[Relay] best height")...)
	if err != nil {
		return 0, err
	}

	next := uint64(info.StartHeight) + uint64(info.CurrOffset) + 1
	submitted := 0

	for next+r.batchSize-1 <= best {
		if err = ctx.Err(); err != nil {
			return submitted, errors.NewContextCanceledError("[Relay] sync cancelled", err)
		}

		batch, err := r.fetch(ctx, next, r.batchSize)
		if err != nil {
			return submitted, err
		}

		if err = r.headerChain.UpdateBlockOffset(ctx, r.settings.Relay.Sender, batch); err != nil {
			prometheusRelayRejected.Inc()
			return submitted, err
		}

		prometheusRelayBatches.Inc()
		prometheusRelayHeaders.Add(float64(len(batch)))

		submitted += len(batch)
		next += uint64(len(batch))

		r.logger.Infof("[Relay] submitted headers %d to %d", next-uint64(len(batch)), next-1)
	}

	if submitted == 0 {
		r.logger.Debugf("[Relay] nothing to submit, next height %d, source tip %d, batch size %d", next, best, r.batchSize)
	}

	return submitted, nil
}

func (r *Relay) fetch(ctx context.Context, from, count uint64) ([]string, error) {
	batch := make([]string, 0, count)

	for height := from; height < from+count; height++ {
		headerHex, err := retry.Retry(ctx, r.logger, func() (string, error) {
			return r.source.HeaderHex(ctx, height)
		}, r.retryOptions("[Relay] header")...)
		if err != nil {
			return nil, err
		}

		batch = append(batch, headerHex)
	}

	return batch, nil
}

// retryOptions retries only network failures; anything else the source reports is final.
func (r *Relay) retryOptions(msg string) []retry.Option {
	return []retry.Option{
		retry.WithAttempts(r.settings.Relay.RetryAttempts),
		retry.WithBackoff(2, r.settings.Relay.RetryBackoff),
		retry.WithMessage(msg),
		retry.WithRetryable(func(err error) bool {
			return errors.Is(err, errors.ErrNetwork) || errors.Is(err, errors.ErrServiceUnavailable)
		}),
	}
}
