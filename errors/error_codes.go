package errors

// ERR is the error code carried by every *Error. Codes are grouped in ranges, see GetErrorCategory.
type ERR int32

const (
	ERR_UNKNOWN            ERR = 0
	ERR_INVALID_ARGUMENT   ERR = 1
	ERR_THRESHOLD_EXCEEDED ERR = 2
	ERR_NOT_FOUND          ERR = 3
	ERR_PROCESSING         ERR = 4
	ERR_CONFIGURATION      ERR = 5
	ERR_CONTEXT            ERR = 6
	ERR_CONTEXT_CANCELED   ERR = 7
	ERR_ERROR              ERR = 9

	// header validation
	ERR_MALFORMED_ENCODING           ERR = 10
	ERR_MALFORMED_HEADER             ERR = 11
	ERR_INSUFFICIENT_BATCH_SIZE      ERR = 12
	ERR_DIFFICULTY_EXCEEDS_THRESHOLD ERR = 13
	ERR_CHAIN_LINK_MISMATCH          ERR = 14
	ERR_PROOF_OF_WORK_FAILED         ERR = 15

	ERR_SERVICE_UNAVAILABLE ERR = 50
	ERR_SERVICE_NOT_STARTED ERR = 51
	ERR_SERVICE_ERROR       ERR = 52
	ERR_UNAUTHORIZED        ERR = 53

	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_NOT_STARTED ERR = 61
	ERR_STORAGE_ERROR       ERR = 62

	// chain state lifecycle
	ERR_UNINITIALIZED       ERR = 100
	ERR_ALREADY_INITIALIZED ERR = 101

	ERR_NETWORK_ERROR            ERR = 110
	ERR_NETWORK_TIMEOUT          ERR = 111
	ERR_NETWORK_INVALID_RESPONSE ERR = 112
)

var ERR_name = map[int32]string{
	0:   "UNKNOWN",
	1:   "INVALID_ARGUMENT",
	2:   "THRESHOLD_EXCEEDED",
	3:   "NOT_FOUND",
	4:   "PROCESSING",
	5:   "CONFIGURATION",
	6:   "CONTEXT",
	7:   "CONTEXT_CANCELED",
	9:   "ERROR",
	10:  "MALFORMED_ENCODING",
	11:  "MALFORMED_HEADER",
	12:  "INSUFFICIENT_BATCH_SIZE",
	13:  "DIFFICULTY_EXCEEDS_THRESHOLD",
	14:  "CHAIN_LINK_MISMATCH",
	15:  "PROOF_OF_WORK_FAILED",
	50:  "SERVICE_UNAVAILABLE",
	51:  "SERVICE_NOT_STARTED",
	52:  "SERVICE_ERROR",
	53:  "UNAUTHORIZED",
	60:  "STORAGE_UNAVAILABLE",
	61:  "STORAGE_NOT_STARTED",
	62:  "STORAGE_ERROR",
	100: "UNINITIALIZED",
	101: "ALREADY_INITIALIZED",
	110: "NETWORK_ERROR",
	111: "NETWORK_TIMEOUT",
	112: "NETWORK_INVALID_RESPONSE",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return "UNKNOWN"
}
