package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"image/png"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/handlers"
	"agromopomulo.id/bankpohon/internal/testdb"
	"agromopomulo.id/bankpohon/middleware"
	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/services"
	"agromopomulo.id/bankpohon/storage"
)

type testEnv struct {
	db  *gorm.DB
	h   http.Handler
	dir string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testdb.Open(t)
	middleware.ConfigureJWT("test-secret", time.Hour)
	dir := t.TempDir()
	api := handlers.NewAPI(db, storage.NewLocalUploader(dir, ""), handlers.Options{
		MaxUploadBytes: 1 << 20,
		Location:       time.UTC,
	})
	return &testEnv{db: db, h: RegisterRoutes(api, dir), dir: dir}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) token(t *testing.T, role string) string {
	t.Helper()
	users := services.NewUserService(e.db)
	email := role + "@bankpohon.id"
	u, err := users.Register(context.Background(), email, "rahasia123", strings.ToUpper(role))
	require.NoError(t, err)
	if role == models.RoleAdmin {
		u, err = users.SetRole(context.Background(), u.ID, models.RoleAdmin)
		require.NoError(t, err)
	}
	tok, _, err := middleware.GenerateToken(u)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) createOPD(t *testing.T, admin, name string, personnel int) models.OPD {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/admin/opd", map[string]interface{}{
		"name": name, "personnel_count": personnel,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var opd models.OPD
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opd))
	return opd
}

func registration(opdID, email string, trees int) map[string]interface{} {
	return map[string]interface{}{
		"email":         email,
		"full_name":     "Siti Rahma",
		"gender":        models.GenderFemale,
		"address":       "Desa Molingkapoto, Kwandang",
		"whatsapp":      "081234567890",
		"opd_id":        opdID,
		"tree_count":    trees,
		"tree_type":     "Mangga",
		"tree_category": models.CategoryFruit,
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAuthFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email": "Budi@Example.id", "password": "rahasia123", "full_name": "Budi",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email": "budi@example.id", "password": "rahasia123", "full_name": "Budi",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email": "x@example.id", "password": "123", "full_name": "X",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[handlers.ErrorResponse](t, rec).Error, "password")

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "budi@example.id", "password": "salah"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "budi@example.id", "password": "rahasia123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[handlers.LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)

	rec = e.do(t, http.MethodGet, "/api/v1/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[models.User](t, rec)
	assert.Equal(t, "budi@example.id", me.Email)
	assert.Equal(t, models.RoleUser, me.Role)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, e.token(t, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, e.token(t, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContributionReport(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	a := e.createOPD(t, admin, "A", 10)
	b := e.createOPD(t, admin, "B", 3)

	for _, reg := range []map[string]interface{}{
		registration(a.ID.String(), "x@e.com", 10),
		registration(a.ID.String(), "X@E.com", 15),
	} {
		rec := e.do(t, http.MethodPost, "/api/v1/registrations", reg, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := e.do(t, http.MethodGet, "/api/v1/contribution", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[handlers.ContributionResponse](t, rec)
	assert.Equal(t, "loaded", string(report.State))
	require.Len(t, report.Data, 1, "units without trees are hidden")
	got := report.Data[0]
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 25, got.TreesPlanted)
	assert.Equal(t, 1, got.Participants)
	assert.Equal(t, 50, got.TotalTarget)
	assert.Equal(t, 50, got.CompletionPercentage)
	assert.Equal(t, 10, got.ParticipationPercentage)
	assert.Equal(t, "medium", string(got.Tier))

	rec = e.do(t, http.MethodGet, "/api/v1/contribution?all=true", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[handlers.ContributionResponse](t, rec).Data, 2)

	rec = e.do(t, http.MethodGet, "/api/v1/contribution/chart", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	chart := decode[handlers.ChartResponse](t, rec)
	assert.Equal(t, []string{"A"}, chart.Chart.Labels)
	require.Len(t, chart.Chart.Datasets, 2)
	assert.Equal(t, []int{25}, chart.Chart.Datasets[0].Data)
	assert.Equal(t, []int{50}, chart.Chart.Datasets[1].Data)

	rec = e.do(t, http.MethodGet, "/api/v1/contribution/"+b.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trees_planted":0`)

	rec = e.do(t, http.MethodGet, "/api/v1/contribution/00000000-0000-0000-0000-000000000001", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContributionReportFailure(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.db.Migrator().DropTable("tree_registrations"))

	rec := e.do(t, http.MethodGet, "/api/v1/contribution", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	failure := decode[handlers.ReportFailure](t, rec)
	assert.Equal(t, "failed", string(failure.State))
	assert.NotEmpty(t, failure.Error)
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestCreateRegistrationValidation(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "Dinas Pertanian", 5)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		status int
	}{
		{"valid", func(m map[string]interface{}) {}, http.StatusCreated},
		{"missing email", func(m map[string]interface{}) { delete(m, "email") }, http.StatusBadRequest},
		{"bad gender", func(m map[string]interface{}) { m["gender"] = "x" }, http.StatusBadRequest},
		{"bad category", func(m map[string]interface{}) { m["tree_category"] = "bunga" }, http.StatusBadRequest},
		{"zero trees", func(m map[string]interface{}) { m["tree_count"] = 0 }, http.StatusBadRequest},
		{"unknown opd", func(m map[string]interface{}) { m["opd_id"] = "00000000-0000-0000-0000-000000000009" }, http.StatusBadRequest},
		{"location out of range", func(m map[string]interface{}) { m["location"] = "95, 122" }, http.StatusBadRequest},
		{"timber species as fruit", func(m map[string]interface{}) { m["tree_type"] = "Jati" }, http.StatusBadRequest},
		{"species outside catalog", func(m map[string]interface{}) { m["tree_type"] = "Anything Goes 123" }, http.StatusBadRequest},
		{"other without name", func(m map[string]interface{}) { m["tree_type"] = models.OtherTreeType }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := registration(opd.ID.String(), "a@x.id", 2)
			tt.mutate(body)
			rec := e.do(t, http.MethodPost, "/api/v1/registrations", body, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateRegistrationLocationAndOtherType(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "Dinas Kehutanan", 5)

	body := registration(opd.ID.String(), "a@x.id", 2)
	body["location"] = "https://www.google.com/maps/@0.8712,122.9034,17z"
	body["tree_type"] = models.OtherTreeType
	body["tree_type_other"] = "Matoa"
	rec := e.do(t, http.MethodPost, "/api/v1/registrations", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	reg := decode[models.TreeRegistration](t, rec)
	require.True(t, reg.HasLocation())
	assert.InDelta(t, 0.8712, *reg.Latitude, 1e-9)
	assert.Equal(t, "Matoa", reg.TreeType)

	body = registration(opd.ID.String(), "b@x.id", 1)
	body["location"] = "Belakang kantor camat"
	rec = e.do(t, http.MethodPost, "/api/v1/registrations", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	reg = decode[models.TreeRegistration](t, rec)
	assert.False(t, reg.HasLocation())
	assert.Equal(t, "Belakang kantor camat", reg.LocationText)

	rec = e.do(t, http.MethodGet, "/api/v1/map", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	var fc struct {
		Type     string        `json:"type"`
		Features []interface{} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 1)
	assert.NotContains(t, rec.Body.String(), "081234567890")
}

// multipartRegistration builds a form submission with the given number of
// PNG photos attached.
func multipartRegistration(t *testing.T, opdID string, photos int) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"email": "foto@x.id", "full_name": "Foto", "gender": models.GenderMale,
		"address": "Jl. Trans Sulawesi", "whatsapp": "081200000000", "opd_id": opdID,
		"tree_count": "3", "tree_type": "Jati", "tree_category": models.CategoryTimber,
		"location": "0.9, 122.8",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	for i := 0; i < photos; i++ {
		part, err := mw.CreateFormFile("photo", "pohon.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(part, imaging.New(40, 30, color.NRGBA{G: 200, A: 255})))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func (e *testEnv) postForm(body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

// storedFiles counts the files under the upload directory.
func (e *testEnv) storedFiles(t *testing.T) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(e.dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func TestCreateRegistrationMultipartWithPhoto(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "Kecamatan", 5)

	rec := e.postForm(multipartRegistration(t, opd.ID.String(), 1))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	reg := decode[models.TreeRegistration](t, rec)
	require.NotNil(t, reg.PhotoURL)
	assert.True(t, strings.HasPrefix(*reg.PhotoURL, "/uploads/registrations/"), *reg.PhotoURL)
	assert.Len(t, reg.PhotoURLs, 1)
	assert.Equal(t, 3, reg.TreeCount)

	rec = e.do(t, http.MethodGet, *reg.PhotoURL, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/gallery", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	gallery := decode[models.Page[models.TreeRegistration]](t, rec)
	require.Len(t, gallery.Data, 1)
	assert.Empty(t, gallery.Data[0].Email)
	assert.Empty(t, gallery.Data[0].WhatsApp)
}

func TestCreateRegistrationUnknownOPDStoresNoPhotos(t *testing.T) {
	e := newEnv(t)

	rec := e.postForm(multipartRegistration(t, uuid.NewString(), 2))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "OPD tidak ditemukan", decode[handlers.ErrorResponse](t, rec).Error)
	assert.Zero(t, e.storedFiles(t))
}

func TestCreateRegistrationFailedInsertRemovesPhotos(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "Kecamatan", 5)
	require.NoError(t, e.db.Migrator().DropTable(&models.TreeRegistration{}))

	rec := e.postForm(multipartRegistration(t, opd.ID.String(), 2))
	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
	assert.Zero(t, e.storedFiles(t))
}

func TestOPDAdministration(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "Dinas Lingkungan Hidup", 10)
	assert.Equal(t, models.DefaultTreeTargetPerPerson, opd.TreeTargetPerPerson)

	rec := e.do(t, http.MethodPost, "/api/v1/admin/opd", map[string]interface{}{"name": "dinas lingkungan hidup"}, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/admin/opd", map[string]interface{}{"name": "X", "personnel_count": -1}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/opd/"+opd.ID.String(), map[string]interface{}{"tree_target_per_person": 0}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/opd/"+opd.ID.String(), map[string]interface{}{"personnel_count": 20}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, decode[models.OPD](t, rec).PersonnelCount)

	rec = e.do(t, http.MethodPost, "/api/v1/registrations", registration(opd.ID.String(), "a@x.id", 4), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/v1/admin/opd/"+opd.ID.String(), nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/v1/admin/opd/"+opd.ID.String(), nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.Page[models.TreeRegistration]](t, rec)
	require.Len(t, page.Data, 1)
	assert.Nil(t, page.Data[0].OPDID)

	rec = e.do(t, http.MethodGet, "/api/v1/summary", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[handlers.SummaryResponse](t, rec)
	assert.Equal(t, 4, summary.Totals.TotalTrees, "unassigned registrations still count in totals")
	assert.Equal(t, 0, summary.TotalOPD)
}

func TestDashboardOverridesAndSettings(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "A", 2)
	rec := e.do(t, http.MethodPost, "/api/v1/registrations", registration(opd.ID.String(), "a@x.id", 30), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[handlers.DashboardResponse](t, rec)
	require.Len(t, dash.OPD, 1)
	assert.Equal(t, 100, dash.OPD[0].CompletionPercentage, "dashboard caps at 100")
	assert.Equal(t, 300, dash.Display.Percentage)

	rec = e.do(t, http.MethodGet, "/api/v1/contribution", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 300, decode[handlers.ContributionResponse](t, rec).Data[0].CompletionPercentage)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/global-settings/"+models.SettingDisplayTotalTarget, map[string]int{"value": 100}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = e.do(t, http.MethodPut, "/api/v1/admin/global-settings/nope", map[string]int{"value": 1}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(t, http.MethodPut, "/api/v1/admin/global-settings/"+models.SettingDisplayTotalTarget, map[string]int{"value": -1}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/global-settings", map[string]interface{}{
		"settings": map[string]int{models.SettingDisplayTotalParticipants: 7},
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/v1/summary", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[handlers.SummaryResponse](t, rec)
	assert.Equal(t, 100, summary.Display.Target)
	assert.True(t, summary.Display.TargetOverridden)
	assert.Equal(t, 7, summary.Display.Participants)
	assert.Equal(t, 30, summary.Display.Trees)
	assert.False(t, summary.Display.TreesOverridden)
	assert.Equal(t, 30, summary.Display.Percentage)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/global-settings", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.GlobalSetting](t, rec), 2)
}

func TestSiteSettings(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)

	rec := e.do(t, http.MethodGet, "/api/v1/site-settings/hero", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultHeroSettings, decode[models.HeroSettings](t, rec))

	rec = e.do(t, http.MethodGet, "/api/v1/site-settings/footer", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/site-settings/hero", map[string]string{"image_type": "upload"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/site-settings/hero", map[string]string{
		"title_line1": "Bank Data", "image_type": "url", "image_url": "https://cdn.example/hero.jpg",
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/v1/site-settings/hero", nil, "")
	hero := decode[models.HeroSettings](t, rec)
	assert.Equal(t, "https://cdn.example/hero.jpg", hero.ImageURL)
	assert.Equal(t, models.DefaultHeroSettings.ButtonText, hero.ButtonText, "omitted fields keep defaults")
}

func TestExports(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)

	rec := e.do(t, http.MethodGet, "/api/v1/admin/registrations/export.xlsx", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	opd := e.createOPD(t, admin, "Dinas Pertanian", 5)
	body := registration(opd.ID.String(), "a@x.id", 3)
	body["location"] = "0.5, 123.25"
	rec = e.do(t, http.MethodPost, "/api/v1/registrations", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/export.xlsx", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	rows, err := f.GetRows("Data Pohon")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nama Lengkap", rows[0][2])
	assert.Equal(t, "Longitude", rows[0][12])
	assert.Equal(t, "1", rows[1][0])
	assert.Regexp(t, regexp.MustCompile(`^\d{2} (Jan|Feb|Mar|Apr|Mei|Jun|Jul|Agu|Sep|Okt|Nov|Des) \d{4}$`), rows[1][1])
	assert.Equal(t, "Dinas Pertanian", rows[1][7])
	assert.Equal(t, "3", rows[1][10])
	assert.Equal(t, "123.25", rows[1][12])

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/export.csv", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimPrefix(rec.Body.String(), "\uFEFF"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "No,Tanggal,Nama Lengkap,Email"))
	assert.Contains(t, lines[1], "a@x.id")

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/export.csv?opd_id=00000000-0000-0000-0000-000000000009", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistrationStatsAndTrend(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	opd := e.createOPD(t, admin, "A", 5)
	for i := 1; i <= 3; i++ {
		rec := e.do(t, http.MethodPost, "/api/v1/registrations", registration(opd.ID.String(), "a@x.id", i), "")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := e.do(t, http.MethodGet, "/api/v1/admin/registrations/stats", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[services.RegistrationStats](t, rec)
	assert.EqualValues(t, 6, st.TotalTrees)
	assert.EqualValues(t, 3, st.TotalParticipants)
	assert.EqualValues(t, 1, st.TotalOPD)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/trend?period=day", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	trend := decode[handlers.TrendResponse](t, rec)
	require.Len(t, trend.Buckets, 30)
	last := trend.Buckets[len(trend.Buckets)-1]
	assert.Equal(t, 3, last.Registrations)
	assert.Equal(t, 6, last.Trees)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/trend?period=year", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations?limit=1", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	newest := decode[models.Page[models.TreeRegistration]](t, rec).Data[0]

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/"+newest.ID.String(), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[models.TreeRegistration](t, rec)
	assert.Equal(t, newest.ID, detail.ID)
	require.NotNil(t, detail.OPD)
	assert.Equal(t, "A", detail.OPD.Name)
	assert.Equal(t, "a@x.id", detail.Email)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/"+uuid.NewString(), nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/v1/admin/registrations/bukan-id", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserAdministration(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	e.token(t, models.RoleUser)

	rec := e.do(t, http.MethodGet, "/api/v1/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.Page[models.User]](t, rec)
	require.Len(t, page.Data, 2)
	user := page.Data[1]
	assert.Equal(t, "user@bankpohon.id", user.Email)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/users/"+user.ID.String()+"/role", map[string]string{"role": "root"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/users/"+user.ID.String()+"/role", map[string]string{"role": models.RoleAdmin}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleAdmin, decode[models.User](t, rec).Role)
}

func TestSwaggerDoc(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/swagger/doc.json", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/api/v1/contribution")
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestRoleChangesApplyToIssuedTokens(t *testing.T) {
	e := newEnv(t)
	admin := e.token(t, models.RoleAdmin)
	ctx := context.Background()
	users := services.NewUserService(e.db)

	other, err := users.Register(ctx, "kedua@bankpohon.id", "rahasia123", "Kedua")
	require.NoError(t, err)
	other, err = users.SetRole(ctx, other.ID, models.RoleAdmin)
	require.NoError(t, err)
	otherTok, _, err := middleware.GenerateToken(other)
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/api/v1/admin/users", nil, otherTok)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/v1/admin/users/"+other.ID.String()+"/role",
		map[string]string{"role": models.RoleUser}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/v1/admin/users", nil, otherTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/me", nil, otherTok)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", other.ID).Update("is_active", false).Error)
	rec = e.do(t, http.MethodGet, "/api/v1/me", nil, otherTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	require.NoError(t, e.db.Delete(&models.User{}, "id = ?", other.ID).Error)
	rec = e.do(t, http.MethodGet, "/api/v1/admin/users", nil, otherTok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
