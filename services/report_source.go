package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/pkg/contribution"
)

// ReportSource feeds the contribution report from the database.
type ReportSource struct {
	db *gorm.DB
}

func NewReportSource(db *gorm.DB) *ReportSource {
	return &ReportSource{db: db}
}

var _ contribution.Source = (*ReportSource)(nil)

// Units returns all OPD ordered by name.
func (s *ReportSource) Units(ctx context.Context) ([]contribution.Unit, error) {
	var list []models.OPD
	if err := s.db.WithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("query opd: %w", err)
	}

	units := make([]contribution.Unit, len(list))
	for i, o := range list {
		units[i] = contribution.Unit{
			ID:                  o.ID.String(),
			Name:                o.Name,
			PersonnelCount:      o.PersonnelCount,
			TreeTargetPerPerson: o.TreeTargetPerPerson,
		}
	}
	return units, nil
}

// Registrations reads only opd_id, tree_count and email.
func (s *ReportSource) Registrations(ctx context.Context) ([]contribution.Registration, error) {
	var rows []struct {
		OPDID     *uuid.UUID `gorm:"column:opd_id"`
		TreeCount int
		Email     string
	}
	err := s.db.WithContext(ctx).
		Model(&models.TreeRegistration{}).
		Select("opd_id, tree_count, email").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}

	regs := make([]contribution.Registration, len(rows))
	for i, r := range rows {
		regs[i] = contribution.Registration{TreeCount: r.TreeCount, Email: r.Email}
		if r.OPDID != nil {
			id := r.OPDID.String()
			regs[i].UnitID = &id
		}
	}
	return regs, nil
}
