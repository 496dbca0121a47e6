package headerchain

import (
	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/ulogger"
)

type validatorOptions struct {
	digestCache *DigestCache
	logger      ulogger.Logger
}

type ValidatorOption func(*validatorOptions)

func WithDigestCache(cache *DigestCache) ValidatorOption {
	return func(o *validatorOptions) {
		o.digestCache = cache
	}
}

// WithLogger enables a debug line per verified header.
func WithLogger(logger ulogger.Logger) ValidatorOption {
	return func(o *validatorOptions) {
		o.logger = logger
	}
}

// ExtendChain verifies headers as a continuation of state and returns the extended state.
// Headers are checked in order and the first failure is returned; state itself is never
// modified.
//
// For each header the checks are, in this order: encoding, bits target against the threshold,
// link to the previous hash, and the header digest against its own bits target.
func ExtendChain(state *model.ChainState, headers []string, opts ...ValidatorOption) (*model.ChainState, error) {
	options := &validatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if state == nil {
		return nil, errors.NewInvalidArgumentError("chain state is nil")
	}

	// len(headers) fits in uint32 whenever it is below MinUpdateLength
	if uint64(len(headers)) < uint64(state.MinUpdateLength) {
		return nil, errors.NewInsufficientBatchSizeError(uint32(len(headers)), state.MinUpdateLength)
	}

	threshold, err := state.ThresholdTarget()
	if err != nil {
		return nil, err
	}

	prev := state.CurrHash

	for i, headerHex := range headers {
		header, err := model.NewBlockHeaderFromString(headerHex)
		if err != nil {
			return nil, err
		}

		bits, err := model.ParseCompactBits(model.BitsFromHex(headerHex))
		if err != nil {
			return nil, err
		}

		target := model.BitsToTarget(bits)
		if target.Cmp(threshold) > 0 {
			return nil, errors.NewDifficultyExceedsThresholdError(target.Text(16), threshold.Text(16))
		}

		if found := model.PrevHashFromHex(headerHex); found != prev {
			return nil, errors.NewChainLinkMismatchError(prev, found)
		}

		digest := headerDigest(options.digestCache, headerHex, header)

		hashValue, err := model.DigestHexToInt(digest)
		if err != nil {
			return nil, err
		}

		if hashValue.Cmp(target) > 0 {
			return nil, errors.NewProofOfWorkFailedError(hashValue.Text(16), target.Text(16))
		}

		if options.logger != nil {
			options.logger.Debugf("[ExtendChain] header %d/%d %s verified against bits %08x", i+1, len(headers), digest, bits)
		}

		prev = digest
	}

	return state.Extend(prev, len(headers))
}

func headerDigest(cache *DigestCache, headerHex string, header *model.BlockHeader) string {
	if cache != nil {
		if digest, ok := cache.Get(headerHex); ok {
			return digest
		}
	}

	digest := header.HashHex()

	if cache != nil {
		cache.Set(headerHex, digest)
	}

	return digest
}
