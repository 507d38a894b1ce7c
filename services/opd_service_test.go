package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromopomulo.id/bankpohon/internal/testdb"
	"agromopomulo.id/bankpohon/models"
)

func TestOPDService_CreateDefaultsAndUniqueness(t *testing.T) {
	ctx := context.Background()
	svc := NewOPDService(testdb.Open(t))

	opd := &models.OPD{Name: "  Dinas Pertanian ", PersonnelCount: 10}
	require.NoError(t, svc.Create(ctx, opd))
	assert.NotEqual(t, uuid.Nil, opd.ID)
	assert.Equal(t, "Dinas Pertanian", opd.Name)
	assert.Equal(t, models.DefaultTreeTargetPerPerson, opd.TreeTargetPerPerson)

	err := svc.Create(ctx, &models.OPD{Name: "dinas pertanian"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOPDService_ListOrderedByName(t *testing.T) {
	ctx := context.Background()
	svc := NewOPDService(testdb.Open(t))
	for _, name := range []string{"Kecamatan", "Badan Perencanaan", "Dinas Kehutanan"} {
		require.NoError(t, svc.Create(ctx, &models.OPD{Name: name}))
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Badan Perencanaan", list[0].Name)
	assert.Equal(t, "Dinas Kehutanan", list[1].Name)
	assert.Equal(t, "Kecamatan", list[2].Name)
}

func TestOPDService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewOPDService(testdb.Open(t))
	a := &models.OPD{Name: "A"}
	b := &models.OPD{Name: "B"}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	personnel, target := 12, 3
	got, err := svc.Update(ctx, a.ID, OPDUpdate{PersonnelCount: &personnel, TreeTargetPerPerson: &target})
	require.NoError(t, err)
	assert.Equal(t, 12, got.PersonnelCount)
	assert.Equal(t, 3, got.TreeTargetPerPerson)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 36, got.TotalTarget())

	name := "b"
	_, err = svc.Update(ctx, a.ID, OPDUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// renaming to its own name in another case is allowed
	name = "a"
	got, err = svc.Update(ctx, a.ID, OPDUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = svc.Update(ctx, uuid.New(), OPDUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOPDService_DeleteDetachesRegistrations(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	svc := NewOPDService(db)
	regs := NewRegistrationService(db)

	opd := &models.OPD{Name: "Dinas Lingkungan Hidup", PersonnelCount: 4}
	require.NoError(t, svc.Create(ctx, opd))
	reg := newRegistration("a@x.id", &opd.ID, 3)
	require.NoError(t, regs.Create(ctx, reg))

	require.NoError(t, svc.Delete(ctx, opd.ID))

	stored, err := regs.Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.OPDID)
	assert.Equal(t, "-", stored.OPDName())

	assert.ErrorIs(t, svc.Delete(ctx, opd.ID), ErrNotFound)
}

func newRegistration(email string, opdID *uuid.UUID, trees int) *models.TreeRegistration {
	return &models.TreeRegistration{
		Email:        email,
		FullName:     "Peserta",
		Gender:       models.GenderFemale,
		Address:      "Kwandang",
		WhatsApp:     "081234567890",
		OPDID:        opdID,
		TreeCount:    trees,
		TreeType:     "Mangga",
		TreeCategory: models.CategoryFruit,
	}
}
