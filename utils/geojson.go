package utils

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"agromopomulo.id/bankpohon/models"
)

// RegistrationsToGeoJSON turns located registrations into point features.
// Rows without both coordinates are skipped. The collection carries a bbox
// when it has at least one feature.
func RegistrationsToGeoJSON(regs []models.TreeRegistration) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var bound orb.Bound
	for _, r := range regs {
		if !r.HasLocation() {
			continue
		}
		// GeoJSON order is longitude, latitude
		point := orb.Point{*r.Longitude, *r.Latitude}
		f := geojson.NewFeature(point)
		f.ID = r.ID.String()
		f.Properties = geojson.Properties{
			"full_name":     r.FullName,
			"tree_type":     r.TreeType,
			"tree_category": r.TreeCategory,
			"tree_count":    r.TreeCount,
			"opd":           r.OPDName(),
			"photo_url":     r.PhotoURL,
			"created_at":    r.CreatedAt.Format(time.RFC3339),
		}
		fc.Append(f)

		if len(fc.Features) == 1 {
			bound = point.Bound()
		} else {
			bound = bound.Extend(point)
		}
	}
	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}
