package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Keys of the numeric display overrides shown on the dashboards.
const (
	SettingDisplayTotalTarget       = "display_total_target"
	SettingDisplayTotalParticipants = "display_total_participants"
	SettingDisplayTotalTrees        = "display_total_trees"
)

// GlobalSetting is a numeric override. A value of 0 means "use the computed figure".
type GlobalSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     int       `gorm:"not null;default:0" json:"value"`
	Label     string    `gorm:"size:200" json:"label"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook for GlobalSetting
func (g *GlobalSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

// DefaultGlobalSettings are seeded on first start.
var DefaultGlobalSettings = []GlobalSetting{
	{Key: SettingDisplayTotalTarget, Label: "Target Total Pohon"},
	{Key: SettingDisplayTotalParticipants, Label: "Total Partisipan"},
	{Key: SettingDisplayTotalTrees, Label: "Total Pohon Tertanam"},
}

// IsGlobalSettingKey reports whether key is one of the known display overrides.
func IsGlobalSettingKey(key string) bool {
	for _, s := range DefaultGlobalSettings {
		if s.Key == key {
			return true
		}
	}
	return false
}

const (
	SiteSettingHero = "hero"
	SiteSettingLogo = "logo"
)

// SiteSetting holds the branding blocks edited from the admin panel.
type SiteSetting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate hook for SiteSetting
func (s *SiteSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Image sources for hero and logo blocks.
const (
	ImageDefault = "default"
	ImageNone    = "none"
	ImageURL     = "url"
	ImageUpload  = "upload"
)

// HeroSettings is the landing page hero block.
type HeroSettings struct {
	BadgeText                 string `json:"badge_text"`
	TitleLine1                string `json:"title_line1"`
	TitleLine2                string `json:"title_line2"`
	Description               string `json:"description"`
	ButtonText                string `json:"button_text"`
	Stat1Value                string `json:"stat1_value"`
	Stat1Label                string `json:"stat1_label"`
	Stat2Value                string `json:"stat2_value"`
	Stat2Label                string `json:"stat2_label"`
	Stat3Value                string `json:"stat3_value"`
	Stat3Label                string `json:"stat3_label"`
	ImageURL                  string `json:"image_url"`
	ImageType                 string `json:"image_type"`
	SecondaryImageURL         string `json:"secondary_image_url"`
	SecondaryImageType        string `json:"secondary_image_type"`
	SecondaryImageTitle       string `json:"secondary_image_title"`
	SecondaryImageDescription string `json:"secondary_image_description"`
}

// DefaultHeroSettings is served until an admin saves the hero block.
var DefaultHeroSettings = HeroSettings{
	BadgeText:           "Sistem Pendataan Pohon",
	TitleLine1:          "Bank Data",
	TitleLine2:          "Pohon",
	Description:         "Sistem pendataan pohon untuk mendukung program Agro Mopomulo untuk pelestarian lingkungan. Mari bersama menjaga bumi untuk generasi mendatang.",
	ButtonText:          "Form Pendataan Pohon",
	Stat1Value:          "10K+",
	Stat1Label:          "Pohon Tercatat",
	Stat2Value:          "50+",
	Stat2Label:          "Jenis Pohon",
	Stat3Value:          "25",
	Stat3Label:          "OPD Terlibat",
	ImageType:           ImageDefault,
	SecondaryImageType:  ImageNone,
	SecondaryImageTitle: "Dokumentasi Program Agro Mopomulo",
}

func (h HeroSettings) Validate() error {
	switch h.ImageType {
	case ImageDefault, ImageURL, ImageUpload:
	default:
		return fmt.Errorf("image_type %q tidak dikenal", h.ImageType)
	}
	switch h.SecondaryImageType {
	case ImageNone, ImageURL, ImageUpload:
	default:
		return fmt.Errorf("secondary_image_type %q tidak dikenal", h.SecondaryImageType)
	}
	if h.ImageType != ImageDefault && h.ImageURL == "" {
		return fmt.Errorf("image_url wajib diisi untuk image_type %q", h.ImageType)
	}
	if h.SecondaryImageType != ImageNone && h.SecondaryImageURL == "" {
		return fmt.Errorf("secondary_image_url wajib diisi untuk secondary_image_type %q", h.SecondaryImageType)
	}
	return nil
}

// LogoSettings is the header branding block.
type LogoSettings struct {
	LogoURL      string `json:"logo_url"`
	LogoType     string `json:"logo_type"`
	SiteName     string `json:"site_name"`
	SiteSubtitle string `json:"site_subtitle"`
}

// DefaultLogoSettings is served until an admin saves the logo block.
var DefaultLogoSettings = LogoSettings{
	LogoType:     ImageDefault,
	SiteName:     "Program Agro Mopomulo",
	SiteSubtitle: "Kabupaten Gorontalo Utara",
}

func (l LogoSettings) Validate() error {
	switch l.LogoType {
	case ImageDefault, ImageURL, ImageUpload:
	default:
		return fmt.Errorf("logo_type %q tidak dikenal", l.LogoType)
	}
	if l.LogoType != ImageDefault && l.LogoURL == "" {
		return fmt.Errorf("logo_url wajib diisi untuk logo_type %q", l.LogoType)
	}
	if l.SiteName == "" {
		return fmt.Errorf("site_name tidak boleh kosong")
	}
	return nil
}

// DecodeSiteSetting parses raw JSON for key into its typed block and validates it.
// The returned value is re-encoded so unknown fields are dropped before storage.
func DecodeSiteSetting(key string, raw []byte) (datatypes.JSON, error) {
	var v interface{ Validate() error }
	switch key {
	case SiteSettingHero:
		h := DefaultHeroSettings
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("invalid hero settings: %w", err)
		}
		v = h
	case SiteSettingLogo:
		l := DefaultLogoSettings
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("invalid logo settings: %w", err)
		}
		v = l
	default:
		return nil, fmt.Errorf("unknown site setting %q", key)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

// DefaultSiteSetting returns the built-in value for key, or false when key is unknown.
func DefaultSiteSetting(key string) (datatypes.JSON, bool) {
	var v interface{}
	switch key {
	case SiteSettingHero:
		v = DefaultHeroSettings
	case SiteSettingLogo:
		v = DefaultLogoSettings
	default:
		return nil, false
	}
	out, _ := json.Marshal(v)
	return datatypes.JSON(out), true
}
