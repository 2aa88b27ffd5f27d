package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RiskConfig holds the scoring thresholds applied by the risk calculator.
type RiskConfig struct {
	DebtThreshold   float64 `mapstructure:"debtThreshold"`
	UnpaidThreshold int     `mapstructure:"unpaidThreshold"`
}

func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		DebtThreshold:   getenvFloat("DEBT_THRESHOLD", 1000),
		UnpaidThreshold: getenvInt("UNPAID_N", 3),
	}
}

// RiskConfigHolder exposes the current thresholds and hot-reloads them
// when risk.yml changes on disk.
type RiskConfigHolder struct {
	current atomic.Value // holds RiskConfig
}

func NewRiskConfigHolder() (*RiskConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("risk")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/riskwatch/config") // Volume-mounted config
	v.AddConfigPath("/etc/riskwatch")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("RISKWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRiskConfig()
	v.SetDefault("risk.debtThreshold", defaults.DebtThreshold)
	v.SetDefault("risk.unpaidThreshold", defaults.UnpaidThreshold)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg RiskConfig
	if err := v.UnmarshalKey("risk", &cfg); err != nil {
		return nil, err
	}
	if err := validateRiskConfig(cfg); err != nil {
		return nil, err
	}

	holder := &RiskConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RiskConfig
		if err := v.UnmarshalKey("risk", &updated); err != nil {
			log.Printf("[risk-config] reload failed: %v", err)
			return
		}
		if err := validateRiskConfig(updated); err != nil {
			log.Printf("[risk-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[risk-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *RiskConfigHolder) Get() RiskConfig {
	return h.current.Load().(RiskConfig)
}

// NewStaticRiskConfigHolder returns a holder pinned to the given thresholds.
// Intended for tests.
func NewStaticRiskConfigHolder(cfg RiskConfig) *RiskConfigHolder {
	holder := &RiskConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateRiskConfig(cfg RiskConfig) error {
	if cfg.DebtThreshold < 0 {
		return errors.New("risk.debtThreshold cannot be negative")
	}
	if cfg.UnpaidThreshold < 1 {
		return errors.New("risk.unpaidThreshold must be at least 1")
	}
	return nil
}
