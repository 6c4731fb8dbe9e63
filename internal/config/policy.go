package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LedgerPolicy controls the enforcement switches left open by the legacy
// system: whether commission percentages must sum to 100, whether payouts
// are checked against the marketer's derived balance, and whether a recharge
// request may be processed more than once.
type LedgerPolicy struct {
	EnforceCommissionSum    bool `mapstructure:"enforceCommissionSum"`
	EnforcePayoutBalance    bool `mapstructure:"enforcePayoutBalance"`
	SingleRechargeProcessing bool `mapstructure:"singleRechargeProcessing"`
	DefaultTrialDays        int  `mapstructure:"defaultTrialDays"`
}

func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		EnforceCommissionSum:     true,
		EnforcePayoutBalance:     true,
		SingleRechargeProcessing: true,
		DefaultTrialDays:         14,
	}
}

// PolicyHolder exposes the current LedgerPolicy and hot-reloads it when the
// backing file changes.
type PolicyHolder struct {
	current atomic.Value // holds LedgerPolicy
}

func NewPolicyHolder(cfg Config) (*PolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	if path := strings.TrimSpace(cfg.PolicyPath); path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("/etc/cafeledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CAFELEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultLedgerPolicy()
	v.SetDefault("ledger.enforceCommissionSum", defaults.EnforceCommissionSum)
	v.SetDefault("ledger.enforcePayoutBalance", defaults.EnforcePayoutBalance)
	v.SetDefault("ledger.singleRechargeProcessing", defaults.SingleRechargeProcessing)
	v.SetDefault("ledger.defaultTrialDays", defaults.DefaultTrialDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var policy LedgerPolicy
	if err := v.UnmarshalKey("ledger", &policy); err != nil {
		return nil, err
	}
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}

	holder := &PolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated LedgerPolicy
		if err := v.UnmarshalKey("ledger", &updated); err != nil {
			log.Printf("[policy] reload failed: %v", err)
			return
		}
		if err := validatePolicy(updated); err != nil {
			log.Printf("[policy] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPolicyHolder wraps a fixed policy, used by tests and the sandbox
// store.
func NewStaticPolicyHolder(policy LedgerPolicy) *PolicyHolder {
	holder := &PolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func (h *PolicyHolder) Get() LedgerPolicy {
	return h.current.Load().(LedgerPolicy)
}

func validatePolicy(policy LedgerPolicy) error {
	if policy.DefaultTrialDays < 0 {
		return errors.New("ledger.defaultTrialDays cannot be negative")
	}
	return nil
}
