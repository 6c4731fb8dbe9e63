// Package store selects the backing repository implementations at startup:
// gorm against the configured database, or the in-memory sandbox store.
package store

import (
	"context"

	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	caferepo "github.com/cafeledger/cafeledger/internal/cafeteria/repository"
	"github.com/cafeledger/cafeledger/internal/config"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	ledgerrepo "github.com/cafeledger/cafeledger/internal/ledger/repository"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	orderrepo "github.com/cafeledger/cafeledger/internal/order/repository"
	secdomain "github.com/cafeledger/cafeledger/internal/securityevent/domain"
	secrepo "github.com/cafeledger/cafeledger/internal/securityevent/repository"
	"github.com/cafeledger/cafeledger/internal/seed"
	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	settingsrepo "github.com/cafeledger/cafeledger/internal/settings/repository"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	staffrepo "github.com/cafeledger/cafeledger/internal/staff/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func memory(cfg config.Config) bool {
	return cfg.StoreDriver == config.StoreDriverMemory
}

func newOrders(cfg config.Config, db *gorm.DB) orderdomain.Repository {
	if memory(cfg) {
		return orderrepo.NewMemory()
	}
	return orderrepo.NewGorm(db)
}

func newCafeterias(cfg config.Config, db *gorm.DB) cafedomain.Repository {
	if memory(cfg) {
		return caferepo.NewMemory()
	}
	return caferepo.NewGorm(db)
}

func newLedger(cfg config.Config, db *gorm.DB) ledgerdomain.Repository {
	if memory(cfg) {
		return ledgerrepo.NewMemory()
	}
	return ledgerrepo.NewGorm(db)
}

func newSettings(cfg config.Config, db *gorm.DB) settingsdomain.Repository {
	if memory(cfg) {
		return settingsrepo.NewMemory()
	}
	return settingsrepo.NewGorm(db)
}

func newStaff(cfg config.Config, db *gorm.DB) staffdomain.Repository {
	if memory(cfg) {
		return staffrepo.NewMemory()
	}
	return staffrepo.NewGorm(db)
}

func newSecurityEvents(cfg config.Config, db *gorm.DB) secdomain.Repository {
	if memory(cfg) {
		return secrepo.NewMemory()
	}
	return secrepo.NewGorm(db)
}

// seedOnStart loads the demo dataset into a fresh sandbox store.
func seedOnStart(lc fx.Lifecycle, cfg config.Config, seeder *seed.Seeder, log *zap.Logger) {
	if !memory(cfg) || !cfg.SeedDemo {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("seeding sandbox store")
			return seeder.Apply(ctx)
		},
	})
}

var Module = fx.Module("store",
	fx.Provide(
		newOrders,
		newCafeterias,
		newLedger,
		newSettings,
		newStaff,
		newSecurityEvents,
		seed.New,
	),
	fx.Invoke(seedOnStart),
)
