package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agromopomulo.id/bankpohon/models"
)

func TestValidateRegistration(t *testing.T) {
	valid := registrationReq{
		Email: "a@x.id", FullName: "Ani", Gender: models.GenderFemale, Address: "Kwandang",
		WhatsApp: "081234567890", OPDID: "6f1c2d7e-8a7b-4c1f-9a55-0c2b3d4e5f60",
		TreeCount: 2, TreeType: "Mangga", TreeCategory: models.CategoryFruit,
	}
	assert.Empty(t, validateStruct(valid))

	tests := []struct {
		name   string
		mutate func(*registrationReq)
		want   string
	}{
		{"email", func(r *registrationReq) { r.Email = "bukan-email" }, "email harus berupa alamat email yang valid"},
		{"gender", func(r *registrationReq) { r.Gender = "l" }, "gender harus laki-laki atau perempuan"},
		{"category", func(r *registrationReq) { r.TreeCategory = "hias" }, "tree_category harus buah atau kayu"},
		{"count", func(r *registrationReq) { r.TreeCount = 0 }, "tree_count wajib diisi"},
		{"opd", func(r *registrationReq) { r.OPDID = "abc" }, "opd_id tidak valid"},
		{"name", func(r *registrationReq) { r.FullName = "A" }, "full_name minimal 2 karakter"},
		{"other type", func(r *registrationReq) { r.TreeType = models.OtherTreeType }, "tree_type_other wajib diisi"},
		{"type from other category", func(r *registrationReq) { r.TreeType = "Jati" }, "tree_type tidak tersedia untuk kategori buah"},
		{"type outside catalog", func(r *registrationReq) { r.TreeType = "Anything Goes 123" }, "tree_type tidak tersedia untuk kategori buah"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Equal(t, tt.want, validateStruct(req))
		})
	}
}

func TestValidateRegistrationCatalog(t *testing.T) {
	for category, types := range models.TreeCatalog {
		for _, tt := range types {
			req := registrationReq{
				Email: "a@x.id", FullName: "Ani", Gender: models.GenderFemale, Address: "Kwandang",
				WhatsApp: "081234567890", OPDID: "6f1c2d7e-8a7b-4c1f-9a55-0c2b3d4e5f60",
				TreeCount: 1, TreeType: tt, TreeCategory: category,
			}
			if tt == models.OtherTreeType {
				req.TreeTypeOther = "Matoa"
			}
			assert.Empty(t, validateStruct(req), "%s/%s", category, tt)
		}
	}
}

func TestValidateOPD(t *testing.T) {
	assert.Equal(t, "personnel_count tidak boleh kurang dari 0",
		validateStruct(createOPDReq{Name: "A", PersonnelCount: -1}))

	zero := 0
	assert.Equal(t, "tree_target_per_person minimal 1",
		validateStruct(updateOPDReq{TreeTargetPerPerson: &zero}))
	assert.Empty(t, validateStruct(updateOPDReq{}))
}
