package config

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/models"
)

// DefaultOPDNames are the units offered before an admin configures the list.
var DefaultOPDNames = []string{
	"Badan Perencanaan Pembangunan Daerah",
	"Dinas Kehutanan",
	"Dinas Lingkungan Hidup",
	"Dinas Pekerjaan Umum",
	"Dinas Pertanian",
	"Kecamatan",
	"Kelurahan/Desa",
	"Lainnya",
}

// RunAllSeeding seeds reference data. Every step is idempotent; the admin
// account is handled by services.UserService.EnsureAdmin.
func RunAllSeeding(db *gorm.DB, cfg *Configuration) error {
	log := logger.App()
	log.Info("=== Starting Database Seeding ===")

	if cfg.SeedDefaults {
		if err := SeedOPD(db); err != nil {
			return fmt.Errorf("seed opd: %w", err)
		}
	}
	if err := SeedGlobalSettings(db); err != nil {
		return fmt.Errorf("seed global settings: %w", err)
	}
	if err := SeedSiteSettings(db); err != nil {
		return fmt.Errorf("seed site settings: %w", err)
	}

	log.Info("=== Database Seeding Complete ===")
	return nil
}

// SeedOPD inserts the default unit list only when the table is empty.
func SeedOPD(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.OPD{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	list := make([]models.OPD, len(DefaultOPDNames))
	for i, name := range DefaultOPDNames {
		list[i] = models.OPD{Name: name, TreeTargetPerPerson: models.DefaultTreeTargetPerPerson}
	}
	if err := db.Create(&list).Error; err != nil {
		return err
	}
	logger.App().WithField("count", len(list)).Info("Seeded default OPD")
	return nil
}

// SeedGlobalSettings adds missing display overrides with value 0.
func SeedGlobalSettings(db *gorm.DB) error {
	for _, def := range models.DefaultGlobalSettings {
		var existing models.GlobalSetting
		err := db.Where("key = ?", def.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		s := models.GlobalSetting{Key: def.Key, Label: def.Label}
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSiteSettings stores the default hero and logo blocks when absent.
func SeedSiteSettings(db *gorm.DB) error {
	for _, key := range []string{models.SiteSettingHero, models.SiteSettingLogo} {
		var n int64
		if err := db.Model(&models.SiteSetting{}).Where("key = ?", key).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		value, _ := models.DefaultSiteSetting(key)
		if err := db.Create(&models.SiteSetting{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}
	return nil
}
