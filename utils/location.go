package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Coordinate represents a geographic coordinate with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var ErrNoCoordinate = errors.New("no coordinate found")

const number = `(-?\d{1,3}(?:\.\d+)?)`

var (
	// place pin inside a maps data parameter: !3d0.87!4d122.9
	pinPattern = regexp.MustCompile(`!3d` + number + `!4d` + number)
	// map viewport: /@0.87,122.9,17z
	atPattern = regexp.MustCompile(`@` + number + `,\s*` + number)
	// plain "lat, lng" text
	pairPattern = regexp.MustCompile(`^\s*` + number + `\s*[,;]\s*` + number + `\s*$`)
)

// coordinate query parameters in order of preference
var locationParams = []string{"q", "query", "ll", "destination", "center"}

// ParseLocation extracts a coordinate from a Google Maps link or from
// "lat, lng" text. Short links (maps.app.goo.gl) carry no coordinate and
// yield ErrNoCoordinate; callers keep the raw text in that case.
func ParseLocation(text string) (Coordinate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Coordinate{}, ErrNoCoordinate
	}

	if m := pairPattern.FindStringSubmatch(text); m != nil {
		return coordinateFrom(m[1], m[2])
	}
	if m := pinPattern.FindStringSubmatch(text); m != nil {
		return coordinateFrom(m[1], m[2])
	}
	if u, err := url.Parse(text); err == nil {
		q := u.Query()
		for _, p := range locationParams {
			if v := q.Get(p); v != "" {
				if m := pairPattern.FindStringSubmatch(v); m != nil {
					return coordinateFrom(m[1], m[2])
				}
			}
		}
	}
	if m := atPattern.FindStringSubmatch(text); m != nil {
		return coordinateFrom(m[1], m[2])
	}
	return Coordinate{}, ErrNoCoordinate
}

func coordinateFrom(lat, lng string) (Coordinate, error) {
	var c Coordinate
	var err error
	if c.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	if c.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q: %w", lng, err)
	}
	if err := ValidateCoordinate(c); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// ValidateCoordinate checks the WGS84 ranges.
func ValidateCoordinate(coord Coordinate) error {
	if coord.Lat < -90 || coord.Lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", coord.Lat)
	}
	if coord.Lng < -180 || coord.Lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", coord.Lng)
	}
	return nil
}
