package contribution

// ChartData is the bar chart payload of the contribution view.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Entries  []Entry   `json:"entries"`
}

// Dataset is one data series. BackgroundColor holds one color per bar.
type Dataset struct {
	Label           string   `json:"label"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor,omitempty"`
}

// Entry carries the per-bar tooltip and drill-down data.
type Entry struct {
	Stats
	Tier  Tier   `json:"tier"`
	Color string `json:"color"`
}

// NewEntry tags stats with its completion tier.
func NewEntry(s Stats) Entry {
	t := TierOf(s.CompletionPercentage)
	return Entry{Stats: s, Tier: t, Color: t.Color()}
}

// BuildChart renders the contributed units as bars of trees planted, colored
// by tier, plus the target series.
func BuildChart(stats []Stats) ChartData {
	contributed := Contributed(stats)

	chart := ChartData{
		Labels:  make([]string, 0, len(contributed)),
		Entries: make([]Entry, 0, len(contributed)),
	}
	trees := Dataset{Label: "Jumlah Pohon Tertanam", Data: []int{}}
	targets := Dataset{Label: "Target", Data: []int{}}

	for _, s := range contributed {
		e := NewEntry(s)
		chart.Labels = append(chart.Labels, s.Name)
		chart.Entries = append(chart.Entries, e)
		trees.Data = append(trees.Data, s.TreesPlanted)
		trees.BackgroundColor = append(trees.BackgroundColor, e.Color)
		targets.Data = append(targets.Data, s.TotalTarget)
	}

	chart.Datasets = []Dataset{trees, targets}
	return chart
}
