package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/models"
)

// RegistrationService stores and queries planting records.
type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// Create stores a new registration. The email is normalized so the same
// submitter is counted once per unit regardless of case.
func (s *RegistrationService) Create(ctx context.Context, reg *models.TreeRegistration) error {
	reg.Email = NormalizeEmail(reg.Email)
	reg.FullName = strings.TrimSpace(reg.FullName)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reg.OPDID != nil {
			var n int64
			if err := tx.Model(&models.OPD{}).Where("id = ?", *reg.OPDID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrUnknownOPD
			}
		}
		if err := tx.Omit("OPD").Create(reg).Error; err != nil {
			return fmt.Errorf("create registration: %w", err)
		}
		return nil
	})
}

// Get loads one registration with its OPD.
func (s *RegistrationService) Get(ctx context.Context, id uuid.UUID) (*models.TreeRegistration, error) {
	var reg models.TreeRegistration
	if err := s.db.WithContext(ctx).Preload("OPD").First(&reg, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &reg, nil
}

func (s *RegistrationService) filtered(ctx context.Context, opdID *uuid.UUID) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.TreeRegistration{})
	if opdID != nil {
		q = q.Where("opd_id = ?", *opdID)
	}
	return q
}

// List returns one page of registrations, newest first, with OPD names.
func (s *RegistrationService) List(ctx context.Context, params models.ListParams) (models.Page[models.TreeRegistration], error) {
	page := models.Page[models.TreeRegistration]{Page: params.Page, Limit: params.Limit}

	if err := s.filtered(ctx, params.OPDID).Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("count registrations: %w", err)
	}
	page.Data = []models.TreeRegistration{}
	err := s.filtered(ctx, params.OPDID).
		Preload("OPD").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&page.Data).Error
	if err != nil {
		return page, fmt.Errorf("list registrations: %w", err)
	}
	return page, nil
}

// All returns every registration matching the filter, newest first. Used by exports.
func (s *RegistrationService) All(ctx context.Context, opdID *uuid.UUID) ([]models.TreeRegistration, error) {
	var list []models.TreeRegistration
	err := s.filtered(ctx, opdID).Preload("OPD").Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return list, nil
}

// WithLocation returns registrations that have both coordinates.
func (s *RegistrationService) WithLocation(ctx context.Context, opdID *uuid.UUID) ([]models.TreeRegistration, error) {
	var list []models.TreeRegistration
	err := s.filtered(ctx, opdID).
		Preload("OPD").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list located registrations: %w", err)
	}
	return list, nil
}

// Gallery returns the newest registrations that carry a photo.
func (s *RegistrationService) Gallery(ctx context.Context, params models.ListParams) (models.Page[models.TreeRegistration], error) {
	page := models.Page[models.TreeRegistration]{Page: params.Page, Limit: params.Limit}
	withPhoto := func() *gorm.DB {
		return s.filtered(ctx, params.OPDID).Where("photo_url IS NOT NULL AND photo_url <> ''")
	}

	if err := withPhoto().Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("count gallery: %w", err)
	}
	page.Data = []models.TreeRegistration{}
	err := withPhoto().
		Preload("OPD").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&page.Data).Error
	if err != nil {
		return page, fmt.Errorf("list gallery: %w", err)
	}
	return page, nil
}

// RegistrationStats are the headline figures of the registrations panel.
type RegistrationStats struct {
	TotalTrees        int64 `json:"total_trees"`
	TotalParticipants int64 `json:"total_participants"`
	TotalOPD          int64 `json:"total_opd"`
	TotalLocations    int64 `json:"total_locations"`
}

// Stats counts trees, rows, units and rows with a latitude. Participants here
// are registration rows, matching the registrations panel.
func (s *RegistrationService) Stats(ctx context.Context) (RegistrationStats, error) {
	var st RegistrationStats
	db := s.db.WithContext(ctx)

	var row struct {
		Trees int64
		Total int64
	}
	if err := db.Model(&models.TreeRegistration{}).
		Select("COALESCE(SUM(tree_count), 0) AS trees, COUNT(*) AS total").
		Scan(&row).Error; err != nil {
		return st, fmt.Errorf("sum registrations: %w", err)
	}
	st.TotalTrees = row.Trees
	st.TotalParticipants = row.Total

	if err := db.Model(&models.TreeRegistration{}).
		Where("latitude IS NOT NULL").
		Count(&st.TotalLocations).Error; err != nil {
		return st, fmt.Errorf("count locations: %w", err)
	}
	if err := db.Model(&models.OPD{}).Count(&st.TotalOPD).Error; err != nil {
		return st, fmt.Errorf("count opd: %w", err)
	}
	return st, nil
}

// TrendPoint is the minimal projection used for time series.
type TrendPoint struct {
	CreatedAt time.Time
	TreeCount int
}

// TrendPoints returns creation time and tree count of registrations since from.
func (s *RegistrationService) TrendPoints(ctx context.Context, from time.Time, opdID *uuid.UUID) ([]TrendPoint, error) {
	var points []TrendPoint
	q := s.filtered(ctx, opdID).Select("created_at, tree_count")
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if err := q.Order("created_at").Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("trend points: %w", err)
	}
	return points, nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
