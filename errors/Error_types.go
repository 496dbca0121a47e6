package errors

var (
	ErrUnknown                    = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument            = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrThresholdExceeded          = New(ERR_THRESHOLD_EXCEEDED, "threshold exceeded")
	ErrNotFound                   = New(ERR_NOT_FOUND, "not found")
	ErrProcessing                 = New(ERR_PROCESSING, "error processing")
	ErrConfiguration              = New(ERR_CONFIGURATION, "configuration error")
	ErrContext                    = New(ERR_CONTEXT, "context error")
	ErrContextCanceled            = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrError                      = New(ERR_ERROR, "generic error")
	ErrMalformedEncoding          = New(ERR_MALFORMED_ENCODING, "malformed encoding")
	ErrMalformedHeader            = New(ERR_MALFORMED_HEADER, "malformed block header")
	ErrInsufficientBatchSize      = New(ERR_INSUFFICIENT_BATCH_SIZE, "insufficient batch size")
	ErrDifficultyExceedsThreshold = New(ERR_DIFFICULTY_EXCEEDS_THRESHOLD, "block difficulty exceeds threshold")
	ErrChainLinkMismatch          = New(ERR_CHAIN_LINK_MISMATCH, "previous block hash mismatch")
	ErrProofOfWorkFailed          = New(ERR_PROOF_OF_WORK_FAILED, "proof of work failed")
	ErrServiceUnavailable         = New(ERR_SERVICE_UNAVAILABLE, "service unavailable")
	ErrServiceNotStarted          = New(ERR_SERVICE_NOT_STARTED, "service not started")
	ErrServiceError               = New(ERR_SERVICE_ERROR, "service error")
	ErrUnauthorized               = New(ERR_UNAUTHORIZED, "unauthorized")
	ErrStorageUnavailable         = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageNotStarted          = New(ERR_STORAGE_NOT_STARTED, "storage not started")
	ErrStorageError               = New(ERR_STORAGE_ERROR, "storage error")
	ErrUninitialized              = New(ERR_UNINITIALIZED, "chain state not initialized")
	ErrAlreadyInitialized         = New(ERR_ALREADY_INITIALIZED, "chain state already initialized")
	ErrNetwork                    = New(ERR_NETWORK_ERROR, "network error")
	ErrNetworkTimeout             = New(ERR_NETWORK_TIMEOUT, "network timeout")
	ErrNetworkInvalidResponse     = New(ERR_NETWORK_INVALID_RESPONSE, "invalid network response")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewThresholdExceededError(message string, params ...interface{}) error {
	return New(ERR_THRESHOLD_EXCEEDED, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewServiceUnavailableError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_UNAVAILABLE, message, params...)
}
func NewServiceNotStartedError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_NOT_STARTED, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewUnauthorizedError(message string, params ...interface{}) error {
	return New(ERR_UNAUTHORIZED, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageNotStartedError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_NOT_STARTED, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
func NewUninitializedError(message string, params ...interface{}) error {
	return New(ERR_UNINITIALIZED, message, params...)
}
func NewAlreadyInitializedError(message string, params ...interface{}) error {
	return New(ERR_ALREADY_INITIALIZED, message, params...)
}
func NewNetworkError(message string, params ...interface{}) error {
	return New(ERR_NETWORK_ERROR, message, params...)
}
func NewNetworkTimeoutError(message string, params ...interface{}) error {
	return New(ERR_NETWORK_TIMEOUT, message, params...)
}
func NewNetworkInvalidResponseError(message string, params ...interface{}) error {
	return New(ERR_NETWORK_INVALID_RESPONSE, message, params...)
}

// header validation errors carry the values needed to diagnose the failure as error data

func NewMalformedEncodingError(inputLen int, params ...interface{}) error {
	return NewWithData(ERR_MALFORMED_ENCODING, map[string]interface{}{
		"input_len": inputLen,
	}, "Invalid hex encoding of length %d", append([]interface{}{inputLen}, params...)...)
}

func NewMalformedHeaderError(actualLen, expectedLen int, params ...interface{}) error {
	return NewWithData(ERR_MALFORMED_HEADER, map[string]interface{}{
		"actual_len":   actualLen,
		"expected_len": expectedLen,
	}, "Encoded block header length is %d, must be %d", append([]interface{}{actualLen, expectedLen}, params...)...)
}

func NewInsufficientBatchSizeError(got, required uint32) error {
	return NewWithData(ERR_INSUFFICIENT_BATCH_SIZE, map[string]interface{}{
		"got":      got,
		"required": required,
	}, "Number of blocks provided (%d) is less than minimum required (%d)", got, required)
}

// NewDifficultyExceedsThresholdError takes both targets as big-endian hex strings.
func NewDifficultyExceedsThresholdError(blockDifficulty, threshold string) error {
	return NewWithData(ERR_DIFFICULTY_EXCEEDS_THRESHOLD, map[string]interface{}{
		"block_difficulty": blockDifficulty,
		"threshold":        threshold,
	}, "Block difficulty %s can't be greater than threshold %s", blockDifficulty, threshold)
}

func NewChainLinkMismatchError(expected, found string) error {
	return NewWithData(ERR_CHAIN_LINK_MISMATCH, map[string]interface{}{
		"expected": expected,
		"found":    found,
	}, "Previous block header hash %s is not equal to value in header %s", expected, found)
}

// NewProofOfWorkFailedError takes the hash value and the target as big-endian hex strings.
func NewProofOfWorkFailedError(hashValue, target string) error {
	return NewWithData(ERR_PROOF_OF_WORK_FAILED, map[string]interface{}{
		"hash_value": hashValue,
		"target":     target,
	}, "Block header hash %s must be less than block difficulty %s", hashValue, target)
}
