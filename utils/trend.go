package utils

import (
	"fmt"
	"time"
)

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// TrendSample is one registration reduced to its time and tree count.
type TrendSample struct {
	At    time.Time
	Trees int
}

// TrendBucket is one period of the registration trend.
type TrendBucket struct {
	Label         string    `json:"label"`
	Start         time.Time `json:"start"`
	Registrations int       `json:"registrations"`
	Trees         int       `json:"trees"`
}

// IsValidPeriod reports whether period is day, week or month.
func IsValidPeriod(period string) bool {
	switch period {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// PeriodStart truncates t to the beginning of its period in t's location.
// Weeks start on Monday.
func PeriodStart(t time.Time, period string) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	switch period {
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

func nextPeriod(t time.Time, period string) time.Time {
	switch period {
	case PeriodWeek:
		return t.AddDate(0, 0, 7)
	case PeriodMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func periodLabel(t time.Time, period string) string {
	switch period {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// DefaultTrendWindow is how far back each period looks when no range is given.
func DefaultTrendWindow(now time.Time, period string) time.Time {
	switch period {
	case PeriodWeek:
		return PeriodStart(now.AddDate(0, 0, -7*11), PeriodWeek)
	case PeriodMonth:
		return PeriodStart(now.AddDate(0, -11, 0), PeriodMonth)
	default:
		return PeriodStart(now.AddDate(0, 0, -29), PeriodDay)
	}
}

// GroupByPeriod buckets samples from from to to (inclusive) in loc. Periods
// without registrations are present with zero counts so charts get a
// continuous axis. Samples outside the range are ignored.
func GroupByPeriod(samples []TrendSample, period string, from, to time.Time, loc *time.Location) []TrendBucket {
	if loc == nil {
		loc = time.UTC
	}
	start := PeriodStart(from.In(loc), period)
	end := PeriodStart(to.In(loc), period)

	var buckets []TrendBucket
	index := make(map[int64]int)
	for t := start; !t.After(end); t = nextPeriod(t, period) {
		index[t.Unix()] = len(buckets)
		buckets = append(buckets, TrendBucket{Label: periodLabel(t, period), Start: t})
	}

	for _, s := range samples {
		i, ok := index[PeriodStart(s.At.In(loc), period).Unix()]
		if !ok {
			continue
		}
		buckets[i].Registrations++
		buckets[i].Trees += s.Trees
	}
	return buckets
}
