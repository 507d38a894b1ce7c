package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/services"
	"agromopomulo.id/bankpohon/storage"
	"agromopomulo.id/bankpohon/utils"
)

// MaxPhotosPerRegistration limits the photos attached to one submission.
const MaxPhotosPerRegistration = 5

type registrationReq struct {
	Email         string `json:"email" validate:"required,email,max=255"`
	FullName      string `json:"full_name" validate:"required,min=2,max=200"`
	Gender        string `json:"gender" validate:"required,gender"`
	Address       string `json:"address" validate:"required,max=1000"`
	WhatsApp      string `json:"whatsapp" validate:"required,min=8,max=20"`
	OPDID         string `json:"opd_id" validate:"required,uuid"`
	TreeCount     int    `json:"tree_count" validate:"required,min=1,max=100000"`
	TreeType      string `json:"tree_type" validate:"required,max=100"`
	TreeTypeOther string `json:"tree_type_other" validate:"required_if=TreeType Lainnya,max=100"`
	TreeCategory  string `json:"tree_category" validate:"required,tree_category"`
	Location      string `json:"location" validate:"max=2000"`
}

func (req *registrationReq) trim() {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Address = strings.TrimSpace(req.Address)
	req.WhatsApp = strings.TrimSpace(req.WhatsApp)
	req.TreeType = strings.TrimSpace(req.TreeType)
	req.TreeTypeOther = strings.TrimSpace(req.TreeTypeOther)
	req.Location = strings.TrimSpace(req.Location)
}

func registrationFromForm(form *multipart.Form) (registrationReq, error) {
	get := func(k string) string {
		if v := form.Value[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	req := registrationReq{
		Email:         get("email"),
		FullName:      get("full_name"),
		Gender:        get("gender"),
		Address:       get("address"),
		WhatsApp:      get("whatsapp"),
		OPDID:         get("opd_id"),
		TreeType:      get("tree_type"),
		TreeTypeOther: get("tree_type_other"),
		TreeCategory:  get("tree_category"),
		Location:      get("location"),
	}
	if s := strings.TrimSpace(get("tree_count")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return req, errors.New("tree_count harus berupa angka")
		}
		req.TreeCount = n
	}
	return req, nil
}

// CreateRegistration godoc
// @Summary      Submit a tree planting registration
// @Description  Accepts JSON or multipart/form-data. Multipart requests may attach up to five "photo" files.
// @Tags         registrations
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      registrationReq  true  "registration"
// @Success      201   {object}  models.TreeRegistration
// @Failure      400   {object}  ErrorResponse
// @Failure      413   {object}  ErrorResponse
// @Router       /api/v1/registrations [post]
func (a *API) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var (
		req    registrationReq
		photos []*multipart.FileHeader
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		limit := a.opts.MaxUploadBytes*MaxPhotosPerRegistration + 1<<20
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(limit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "ukuran file terlalu besar")
				return
			}
			writeError(w, http.StatusBadRequest, "bad multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		var err error
		if req, err = registrationFromForm(r.MultipartForm); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		photos = r.MultipartForm.File["photo"]
		if len(photos) > MaxPhotosPerRegistration {
			writeError(w, http.StatusBadRequest, "maksimal 5 foto")
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.trim()
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.TreeType == models.OtherTreeType {
		req.TreeType = req.TreeTypeOther
	}

	opdID := uuid.MustParse(req.OPDID)
	reg := &models.TreeRegistration{
		Email:        req.Email,
		FullName:     req.FullName,
		Gender:       req.Gender,
		Address:      req.Address,
		WhatsApp:     req.WhatsApp,
		OPDID:        &opdID,
		TreeCount:    req.TreeCount,
		TreeType:     req.TreeType,
		TreeCategory: req.TreeCategory,
		LocationText: req.Location,
	}
	if req.Location != "" {
		c, err := utils.ParseLocation(req.Location)
		switch {
		case err == nil:
			reg.Latitude, reg.Longitude = &c.Lat, &c.Lng
		case errors.Is(err, utils.ErrNoCoordinate):
			// kept as text only
		default:
			writeError(w, http.StatusBadRequest, "lokasi tidak valid: "+err.Error())
			return
		}
	}

	// photos are only stored for a unit that exists
	if _, err := a.opds.Get(r.Context(), opdID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			err = services.ErrUnknownOPD
		}
		writeServiceError(w, r, err)
		return
	}

	var saved []storage.Object
	for _, fh := range photos {
		obj, err := a.savePhoto(r, fh, "registrations")
		if err != nil {
			a.discardUploads(r, saved)
			writeServiceError(w, r, err)
			return
		}
		saved = append(saved, obj)
		reg.PhotoURLs = append(reg.PhotoURLs, obj.URL)
	}
	if len(reg.PhotoURLs) > 0 {
		first := reg.PhotoURLs[0]
		reg.PhotoURL = &first
	}

	if err := a.regs.Create(r.Context(), reg); err != nil {
		a.discardUploads(r, saved)
		writeServiceError(w, r, err)
		return
	}
	logger.App().WithField("registration_id", reg.ID.String()).
		WithField("opd_id", req.OPDID).
		WithField("tree_count", reg.TreeCount).
		Info("registration stored")
	writeJSON(w, http.StatusCreated, reg)
}

func (a *API) savePhoto(r *http.Request, fh *multipart.FileHeader, prefix string) (storage.Object, error) {
	if fh.Size > a.opts.MaxUploadBytes {
		return storage.Object{}, storage.ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return storage.Object{}, err
	}
	defer f.Close()
	return storage.SaveImage(r.Context(), a.uploader, prefix, f, a.opts.MaxUploadBytes)
}

// discardUploads removes objects stored for a request that failed. It runs
// even when the client has gone away.
func (a *API) discardUploads(r *http.Request, objs []storage.Object) {
	if len(objs) == 0 {
		return
	}
	if err := storage.DeleteAll(context.WithoutCancel(r.Context()), a.uploader, objs); err != nil {
		logger.App().WithError(err).WithField("objects", len(objs)).Warn("could not remove orphaned uploads")
	}
}

// TreeTypes godoc
// @Summary      Species offered per category
// @Tags         registrations
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/tree-types [get]
func (a *API) TreeTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.TreeCatalog)
}

// Gallery godoc
// @Summary      Latest registrations with a photo
// @Tags         registrations
// @Produce      json
// @Param        opd_id  query  string  false  "filter by OPD"
// @Param        page    query  int     false  "page"
// @Param        limit   query  int     false  "page size"
// @Success      200  {object}  models.Page[models.TreeRegistration]
// @Router       /api/v1/gallery [get]
func (a *API) Gallery(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := a.regs.Gallery(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicRegistrations(page))
}

// publicRegistrations strips contact details from registrations shown on
// public pages.
func publicRegistrations(page models.Page[models.TreeRegistration]) models.Page[models.TreeRegistration] {
	for i := range page.Data {
		page.Data[i].Email = ""
		page.Data[i].WhatsApp = ""
		page.Data[i].Address = ""
	}
	return page
}
