package contribution

// Totals are program-wide figures over every registration, including those
// that reference no unit.
type Totals struct {
	TotalTrees        int `json:"total_trees"`
	TotalParticipants int `json:"total_participants"`
	TotalPersonnel    int `json:"total_personnel"`
	TotalTarget       int `json:"total_target"`
}

// ComputeTotals sums trees and distinct submitters over all registrations and
// personnel/targets over all units.
func ComputeTotals(units []Unit, registrations []Registration) Totals {
	var t Totals
	emails := make(map[string]struct{}, len(registrations))
	for _, r := range registrations {
		t.TotalTrees += r.TreeCount
		emails[r.Email] = struct{}{}
	}
	t.TotalParticipants = len(emails)

	for _, u := range units {
		t.TotalPersonnel += u.PersonnelCount
		t.TotalTarget += u.PersonnelCount * u.TreeTargetPerPerson
	}
	return t
}

// Overrides are the admin-configured display figures; zero means unset.
type Overrides struct {
	Target       int
	Participants int
	Trees        int
}

// Display is what the dashboards show after applying overrides.
type Display struct {
	Trees                  int  `json:"trees"`
	Participants           int  `json:"participants"`
	Target                 int  `json:"target"`
	Percentage             int  `json:"percentage"`
	TreesOverridden        bool `json:"trees_overridden"`
	ParticipantsOverridden bool `json:"participants_overridden"`
	TargetOverridden       bool `json:"target_overridden"`
}

// ApplyOverrides picks each override when positive, otherwise the computed value.
func ApplyOverrides(t Totals, o Overrides) Display {
	d := Display{
		Trees:        t.TotalTrees,
		Participants: t.TotalParticipants,
		Target:       t.TotalTarget,
	}
	if o.Trees > 0 {
		d.Trees = o.Trees
		d.TreesOverridden = true
	}
	if o.Participants > 0 {
		d.Participants = o.Participants
		d.ParticipantsOverridden = true
	}
	if o.Target > 0 {
		d.Target = o.Target
		d.TargetOverridden = true
	}
	d.Percentage = Percent(d.Trees, d.Target)
	return d
}
