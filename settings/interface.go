package settings

import (
	"net/url"
	"time"

	"github.com/bsv-blockchain/go-chaincfg"
)

type HeaderChainSettings struct {
	StoreURL             *url.URL
	HTTPListenAddress    string
	HTTPAddress          *url.URL
	APIPrefix            string
	PermissionlessUpdate bool
	DigestCacheTTL       time.Duration
	DigestCacheSize      uint64
	StartHeight          uint32
	StartHash            string
	MinDifficultyBits    uint32
	MinUpdateLength      uint32
}

type RelaySettings struct {
	RPCHost       string
	RPCPort       int
	RPCUser       string
	RPCPassword   string
	RPCUseSSL     bool
	BatchSize     uint32
	PollInterval  time.Duration
	Sender        string
	RetryAttempts int
	RetryBackoff  time.Duration
}

type SQLSettings struct {
	PostgresMaxIdleConns int
	PostgresMaxOpenConns int
	SQLiteBusyTimeoutMs  int
}

type BadgerSettings struct {
	LimitMemory bool
}

type TracingSettings struct {
	Enabled      bool
	SampleRate   float64
	CollectorURL *url.URL
}

type Settings struct {
	ClientName     string
	DataFolder     string
	LogLevel       string
	LoggerType     string
	ChainCfgParams *chaincfg.Params
	HeaderChain    HeaderChainSettings
	Relay          RelaySettings
	SQL            SQLSettings
	Badger         BadgerSettings
	Tracing        TracingSettings
}
