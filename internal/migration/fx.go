package migration

import (
	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	"github.com/cafeledger/cafeledger/internal/config"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	secdomain "github.com/cafeledger/cafeledger/internal/securityevent/domain"
	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"gorm.io/gorm"

	"go.uber.org/fx"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.StoreDriver == config.StoreDriverMemory {
			return nil
		}

		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql deployments are dev/self-host only; gorm's
		// schema sync is enough there.
		return conn.AutoMigrate(
			&cafedomain.Cafeteria{},
			&cafedomain.MenuCategory{},
			&cafedomain.MenuItem{},
			&cafedomain.WaiterSection{},
			&cafedomain.WaiterTable{},
			&cafedomain.KitchenCategory{},
			&orderdomain.Order{},
			&ledgerdomain.Entry{},
			&ledgerdomain.RechargeRequest{},
			&ledgerdomain.PayoutRecord{},
			&settingsdomain.CommissionConfig{},
			&settingsdomain.TrialConfig{},
			&staffdomain.Staff{},
			&staffdomain.WaiterSession{},
			&secdomain.Event{},
		)
	}),
)
