package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.OPD{}, &models.TreeRegistration{}, &models.User{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("tree_registrations", "opd", "users")
			},
		},
		{
			ID: "20250124_create_settings_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.GlobalSetting{}, &models.SiteSetting{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("global_settings", "site_settings")
			},
		},
		{
			ID: "20250207_add_registration_location_and_photos",
			Migrate: func(tx *gorm.DB) error {
				for _, col := range []string{"LocationText", "PhotoURLs"} {
					if !tx.Migrator().HasColumn(&models.TreeRegistration{}, col) {
						if err := tx.Migrator().AddColumn(&models.TreeRegistration{}, col); err != nil {
							return err
						}
					}
				}
				return nil
			},
		},
		{
			ID: "20250215_add_value_checks",
			Migrate: func(tx *gorm.DB) error {
				// CHECK constraints cannot be added to an existing SQLite table.
				if tx.Dialector.Name() != "postgres" {
					return nil
				}
				stmts := []string{
					"ALTER TABLE tree_registrations DROP CONSTRAINT IF EXISTS chk_tree_count_positive",
					"ALTER TABLE tree_registrations ADD CONSTRAINT chk_tree_count_positive CHECK (tree_count >= 1)",
					"ALTER TABLE opd DROP CONSTRAINT IF EXISTS chk_opd_personnel",
					"ALTER TABLE opd ADD CONSTRAINT chk_opd_personnel CHECK (personnel_count >= 0)",
					"ALTER TABLE opd DROP CONSTRAINT IF EXISTS chk_opd_target",
					"ALTER TABLE opd ADD CONSTRAINT chk_opd_target CHECK (tree_target_per_person >= 1)",
				}
				for _, s := range stmts {
					if err := tx.Exec(s).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})

	return m.Migrate()
}
