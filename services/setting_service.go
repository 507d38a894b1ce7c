package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/pkg/contribution"
)

// SettingService manages dashboard display overrides and site branding.
type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// ListGlobal returns the display overrides ordered by key.
func (s *SettingService) ListGlobal(ctx context.Context) ([]models.GlobalSetting, error) {
	var list []models.GlobalSetting
	if err := s.db.WithContext(ctx).Order("key").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list global settings: %w", err)
	}
	return list, nil
}

// UpdateGlobal sets the value of one override. Unknown keys are rejected.
func (s *SettingService) UpdateGlobal(ctx context.Context, key string, value int) (*models.GlobalSetting, error) {
	var out *models.GlobalSetting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		setting, err := upsertGlobal(tx, key, value)
		out = setting
		return err
	})
	return out, err
}

// UpdateGlobalBatch saves several overrides atomically.
func (s *SettingService) UpdateGlobalBatch(ctx context.Context, values map[string]int) ([]models.GlobalSetting, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if _, err := upsertGlobal(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListGlobal(ctx)
}

func upsertGlobal(tx *gorm.DB, key string, value int) (*models.GlobalSetting, error) {
	if !models.IsGlobalSettingKey(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	var setting models.GlobalSetting
	err := tx.Where("key = ?", key).First(&setting).Error
	switch translate(err, nil) {
	case nil:
		setting.Value = value
		if err := tx.Model(&setting).Update("value", value).Error; err != nil {
			return nil, err
		}
	case ErrNotFound:
		setting = models.GlobalSetting{Key: key, Value: value, Label: globalLabel(key)}
		if err := tx.Create(&setting).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &setting, nil
}

func globalLabel(key string) string {
	for _, s := range models.DefaultGlobalSettings {
		if s.Key == key {
			return s.Label
		}
	}
	return key
}

// Overrides reads the display overrides used by the dashboards.
func (s *SettingService) Overrides(ctx context.Context) (contribution.Overrides, error) {
	list, err := s.ListGlobal(ctx)
	if err != nil {
		return contribution.Overrides{}, err
	}

	var o contribution.Overrides
	for _, g := range list {
		switch g.Key {
		case models.SettingDisplayTotalTarget:
			o.Target = g.Value
		case models.SettingDisplayTotalParticipants:
			o.Participants = g.Value
		case models.SettingDisplayTotalTrees:
			o.Trees = g.Value
		}
	}
	return o, nil
}

// GetSite returns the stored block for key or its default.
func (s *SettingService) GetSite(ctx context.Context, key string) (datatypes.JSON, error) {
	def, ok := models.DefaultSiteSetting(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	var setting models.SiteSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	switch translate(err, nil) {
	case nil:
		return setting.Value, nil
	case ErrNotFound:
		return def, nil
	default:
		return nil, fmt.Errorf("get site setting: %w", err)
	}
}

// PutSite validates raw against the block type of key and upserts it.
func (s *SettingService) PutSite(ctx context.Context, key string, raw []byte) (datatypes.JSON, error) {
	if _, ok := models.DefaultSiteSetting(key); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	value, err := models.DecodeSiteSetting(key, raw)
	if err != nil {
		return nil, err
	}

	setting := models.SiteSetting{Key: key, Value: value}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, fmt.Errorf("save site setting: %w", err)
	}
	return value, nil
}
