package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/models"
)

// OPDService manages the organizational units and their planting targets.
type OPDService struct {
	db *gorm.DB
}

func NewOPDService(db *gorm.DB) *OPDService {
	return &OPDService{db: db}
}

// List returns every OPD ordered by name.
func (s *OPDService) List(ctx context.Context) ([]models.OPD, error) {
	var list []models.OPD
	if err := s.db.WithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list opd: %w", err)
	}
	return list, nil
}

func (s *OPDService) Get(ctx context.Context, id uuid.UUID) (*models.OPD, error) {
	var opd models.OPD
	if err := s.db.WithContext(ctx).First(&opd, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &opd, nil
}

// Create inserts a new OPD. Names are unique case-insensitively.
func (s *OPDService) Create(ctx context.Context, opd *models.OPD) error {
	opd.Name = strings.TrimSpace(opd.Name)
	if err := s.ensureUniqueName(ctx, opd.Name, uuid.Nil); err != nil {
		return err
	}
	if opd.TreeTargetPerPerson == 0 {
		opd.TreeTargetPerPerson = models.DefaultTreeTargetPerPerson
	}
	if err := s.db.WithContext(ctx).Create(opd).Error; err != nil {
		return translate(err, ErrDuplicateName)
	}
	return nil
}

// OPDUpdate carries the editable fields; nil fields are left unchanged.
type OPDUpdate struct {
	Name                *string
	PersonnelCount      *int
	TreeTargetPerPerson *int
}

func (s *OPDService) Update(ctx context.Context, id uuid.UUID, upd OPDUpdate) (*models.OPD, error) {
	opd, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := s.ensureUniqueName(ctx, name, id); err != nil {
			return nil, err
		}
		opd.Name = name
	}
	if upd.PersonnelCount != nil {
		opd.PersonnelCount = *upd.PersonnelCount
	}
	if upd.TreeTargetPerPerson != nil {
		opd.TreeTargetPerPerson = *upd.TreeTargetPerPerson
	}

	err = s.db.WithContext(ctx).Model(opd).Select("name", "personnel_count", "tree_target_per_person").
		Updates(opd).Error
	if err != nil {
		return nil, translate(err, ErrDuplicateName)
	}
	return opd, nil
}

// Delete removes the OPD. Its registrations stay and lose their unit.
func (s *OPDService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TreeRegistration{}).
			Where("opd_id = ?", id).
			Update("opd_id", nil).Error; err != nil {
			return fmt.Errorf("detach registrations: %w", err)
		}
		res := tx.Delete(&models.OPD{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *OPDService) ensureUniqueName(ctx context.Context, name string, except uuid.UUID) error {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.OPD{}).Where("LOWER(name) = LOWER(?)", name)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateName
	}
	return nil
}
