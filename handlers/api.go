package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/services"
	"agromopomulo.id/bankpohon/storage"
)

// Options are the request-independent settings handlers need.
type Options struct {
	MaxUploadBytes int64
	Location       *time.Location
}

// API holds the services behind every HTTP handler.
type API struct {
	db       *gorm.DB
	opds     *services.OPDService
	regs     *services.RegistrationService
	settings *services.SettingService
	users    *services.UserService
	report   *services.ReportSource
	uploader storage.Uploader
	opts     Options
	now      func() time.Time
}

func NewAPI(db *gorm.DB, uploader storage.Uploader, opts Options) *API {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &API{
		db:       db,
		opds:     services.NewOPDService(db),
		regs:     services.NewRegistrationService(db),
		settings: services.NewSettingService(db),
		users:    services.NewUserService(db),
		report:   services.NewReportSource(db),
		uploader: uploader,
		opts:     opts,
		now:      time.Now,
	}
}

// Accounts is the user store the auth middleware reloads accounts from.
func (a *API) Accounts() *services.UserService {
	return a.users
}

// Health pings the database.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.App().WithError(err).Warn("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
