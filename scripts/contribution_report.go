// Command contribution_report prints the per-OPD contribution report straight
// from the database, for checking dashboard figures by hand.
//
//	go run ./scripts -all
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"agromopomulo.id/bankpohon/config"
	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/pkg/contribution"
	"agromopomulo.id/bankpohon/services"
)

func main() {
	all := flag.Bool("all", false, "include units without trees")
	clamp := flag.Bool("clamp", false, "cap percentages at 100 like the admin dashboard")
	flag.Parse()

	log := logger.App()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := config.Connect(cfg); err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	policy := contribution.Unclamped
	if *clamp {
		policy = contribution.ClampTo100
	}
	res := contribution.Load(ctx, services.NewReportSource(config.DB), policy)
	if res.State != contribution.StateLoaded {
		log.WithError(res.Err).Fatal("report load failed")
	}

	stats := res.Stats
	if !*all {
		stats = contribution.Contributed(stats)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "OPD\tPersonel\tTarget\tPohon\tPeserta\tCapaian %\tPartisipasi %\tTier\t")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t\n",
			s.Name, s.PersonnelCount, s.TotalTarget, s.TreesPlanted, s.Participants,
			s.CompletionPercentage, s.ParticipationPercentage, contribution.TierOf(s.CompletionPercentage))
	}
	tw.Flush()

	t := contribution.ComputeTotals(res.Units, res.Registrations)
	fmt.Printf("\nTotal: %d pohon, %d peserta, target %d (%d%%)\n",
		t.TotalTrees, t.TotalParticipants, t.TotalTarget, contribution.Percent(t.TotalTrees, t.TotalTarget))
}
