// Package contribution computes per-OPD planting progress from the unit list
// and the registration list. Everything here is pure; loading the inputs is
// done by a Source (see loader.go).
package contribution

// Unit is the reporting view of an OPD.
type Unit struct {
	ID                  string
	Name                string
	PersonnelCount      int
	TreeTargetPerPerson int
}

// Registration is the projection of a planting record the report needs.
// UnitID is nil when the submitter picked no unit or the unit was deleted.
type Registration struct {
	UnitID    *string
	TreeCount int
	Email     string
}

// Stats is the derived, never stored, aggregate of one unit.
type Stats struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	PersonnelCount          int    `json:"personnel_count"`
	TreeTargetPerPerson     int    `json:"tree_target_per_person"`
	TotalTarget             int    `json:"total_target"`
	TreesPlanted            int    `json:"trees_planted"`
	Participants            int    `json:"participants"`
	CompletionPercentage    int    `json:"completion_percentage"`
	ParticipationPercentage int    `json:"participation_percentage"`
}

// Policy decides whether percentages are capped at 100.
type Policy int

const (
	// Unclamped reports over-achievement as is (contribution report).
	Unclamped Policy = iota
	// ClampTo100 caps both percentages at 100 (admin dashboard progress bars).
	ClampTo100
)

// Aggregate returns one Stats per unit, in the order of units. Registrations
// whose UnitID is nil or names no unit in the list are ignored.
func Aggregate(units []Unit, registrations []Registration, policy Policy) []Stats {
	type acc struct {
		trees  int
		emails map[string]struct{}
	}

	byUnit := make(map[string]*acc, len(units))
	for _, u := range units {
		byUnit[u.ID] = &acc{emails: make(map[string]struct{})}
	}

	for _, r := range registrations {
		if r.UnitID == nil {
			continue
		}
		a, ok := byUnit[*r.UnitID]
		if !ok {
			continue
		}
		a.trees += r.TreeCount
		a.emails[r.Email] = struct{}{}
	}

	out := make([]Stats, 0, len(units))
	for _, u := range units {
		a := byUnit[u.ID]
		target := u.PersonnelCount * u.TreeTargetPerPerson
		participants := len(a.emails)

		out = append(out, Stats{
			ID:                      u.ID,
			Name:                    u.Name,
			PersonnelCount:          u.PersonnelCount,
			TreeTargetPerPerson:     u.TreeTargetPerPerson,
			TotalTarget:             target,
			TreesPlanted:            a.trees,
			Participants:            participants,
			CompletionPercentage:    policy.apply(Percent(a.trees, target)),
			ParticipationPercentage: policy.apply(Percent(participants, u.PersonnelCount)),
		})
	}
	return out
}

// Percent returns round(100*part/whole) rounding halves up, or 0 when whole
// is not positive. Integer arithmetic keeps x.5 exact.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

func (p Policy) apply(pct int) int {
	if p == ClampTo100 && pct > 100 {
		return 100
	}
	return pct
}

// Contributed drops units that have not planted anything yet. Order is kept.
func Contributed(stats []Stats) []Stats {
	out := make([]Stats, 0, len(stats))
	for _, s := range stats {
		if s.TreesPlanted > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the aggregate of the unit with the given id.
func Find(stats []Stats, id string) (Stats, bool) {
	for _, s := range stats {
		if s.ID == id {
			return s, true
		}
	}
	return Stats{}, false
}
