// Package settings loads headerchain configuration from gocore (settings.conf,
// settings_local.conf and the environment) into typed groups.
package settings

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bsv-blockchain/go-chaincfg"
)

func NewSettings() *Settings {
	params, err := GetChainParams(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName:     getString("clientName", "headerchain"),
		DataFolder:     getString("dataFolder", "data"),
		LogLevel:       getString("logLevel", "INFO"),
		LoggerType:     getString("logger", "zerolog"),
		ChainCfgParams: params,
		HeaderChain: HeaderChainSettings{
			StoreURL:             getURL("headerchain_store", "sqlite:///headerchain"),
			HTTPListenAddress:    getString("headerchain_httpListenAddress", ":8095"),
			HTTPAddress:          getURL("headerchain_httpAddress", "http://localhost:8095"),
			APIPrefix:            getString("headerchain_apiPrefix", "/api/v1"),
			PermissionlessUpdate: getBool("headerchain_permissionlessUpdate", true),
			DigestCacheTTL:       getDuration("headerchain_digestCacheTTL", 10*time.Minute),
			DigestCacheSize:      uint64(getInt("headerchain_digestCacheSize", 10_000)),
			StartHeight:          getUint32("headerchain_startHeight", 0),
			StartHash:            getString("headerchain_startHash", GenesisHashHex(params)),
			MinDifficultyBits:    getUint32("headerchain_minDifficultyBits", params.PowLimitBits),
			MinUpdateLength:      getUint32("headerchain_minUpdateLength", 3),
		},
		Relay: RelaySettings{
			RPCHost:       getString("relay_rpcHost", "localhost"),
			RPCPort:       getInt("relay_rpcPort", 8332),
			RPCUser:       getString("relay_rpcUser", "bitcoin"),
			RPCPassword:   getString("relay_rpcPassword", "bitcoin"),
			RPCUseSSL:     getBool("relay_rpcUseSSL", false),
			BatchSize:     getUint32("relay_batchSize", 0),
			PollInterval:  getDuration("relay_pollInterval", 30*time.Second),
			Sender:        getString("relay_sender", "relay"),
			RetryAttempts: getInt("relay_retryAttempts", 3),
			RetryBackoff:  getDuration("relay_retryBackoff", time.Second),
		},
		SQL: SQLSettings{
			PostgresMaxIdleConns: getInt("headerchain_postgresMaxIdleConns", 2),
			PostgresMaxOpenConns: getInt("headerchain_postgresMaxOpenConns", 10),
			SQLiteBusyTimeoutMs:  getInt("headerchain_sqliteBusyTimeoutMs", 5000),
		},
		Badger: BadgerSettings{
			LimitMemory: getBool("headerchain_badgerLimitMemory", true),
		},
		Tracing: TracingSettings{
			Enabled:      getBool("tracing_enabled", false),
			SampleRate:   getFloat64("tracing_SampleRate", 0.01),
			CollectorURL: getURL("tracing_collector_url", "http://localhost:4318"),
		},
	}
}

// GetChainParams returns the consensus parameters for a network name.
func GetChainParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "mainnet", "main":
		return &chaincfg.MainNetParams, nil
	case "testnet", "test":
		return &chaincfg.TestNetParams, nil
	case "regtest", "regression":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, errors.NewConfigurationError("unknown network %q", network)
	}
}

// GenesisHashHex is the genesis block hash of params in wire byte order, the form chain
// state hashes are kept in.
func GenesisHashHex(params *chaincfg.Params) string {
	if params == nil || params.GenesisHash == nil {
		return ""
	}

	return hex.EncodeToString(params.GenesisHash.CloneBytes())
}
