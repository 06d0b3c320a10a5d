package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"yasno-outages/internal/config"
	"yasno-outages/internal/data"
	"yasno-outages/internal/outage"

	"github.com/hako/durafmt"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "status":
		cmdStatus(os.Args[2:])
	case "events":
		cmdEvents(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli status --config examples/config.yaml [--data schedule.json] [--now 2024-11-24T13:00:00+02:00]")
	fmt.Println("  cli events --config examples/config.yaml [--data schedule.json] --start <rfc3339> --end <rfc3339>")
	fmt.Println("  cli export --config examples/config.yaml [--data schedule.json] --out results/outages.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --data the schedule is fetched live")
	fmt.Println("  - --city/--group override the config file")
}

type commonFlags struct {
	dataPath *string
	cfgPath  *string
	city     *string
	group    *string
}

func addCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		dataPath: fs.String("data", "", "Path to a saved schedule JSON (default: fetch live)"),
		cfgPath:  fs.String("config", "", "Path to YAML config"),
		city:     fs.String("city", "", "City override"),
		group:    fs.String("group", "", "Group override"),
	}
}

func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	common := addCommon(fs)
	nowStr := fs.String("now", "", "Evaluate at this RFC 3339 instant (default: now)")
	_ = fs.Parse(args)

	snap, builder, cfg := loadSnapshot(common)
	now := parseTimeOr(*nowStr, time.Now(), builder.Location())

	status := snap.StatusAt(now)
	attrs := snap.Attributes(now)
	fmt.Printf("%s\n", cfg.Name())
	fmt.Printf("state=%s detailed_state=%s outages=%d\n", status.BinaryState(), attrs.DetailedState, attrs.TotalOutagesScheduled)

	if cur, ok := snap.CurrentEvent(now); ok {
		fmt.Printf("current outage: %s -> %s (power back in %s)\n",
			cur.Start.Format(time.RFC3339), cur.End.Format(time.RFC3339), humanize(cur.End.Sub(now)))
	}
	if next, ok := snap.NextEvent(now); ok {
		fmt.Printf("next outage:    %s -> %s (starts in %s)\n",
			next.Start.Format(time.RFC3339), next.End.Format(time.RFC3339), humanize(next.Start.Sub(now)))
	}
}

func cmdEvents(args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	common := addCommon(fs)
	startStr := fs.String("start", "", "Window start (RFC 3339, default: start of today)")
	endStr := fs.String("end", "", "Window end (RFC 3339, default: end of tomorrow)")
	_ = fs.Parse(args)

	snap, builder, _ := loadSnapshot(common)
	loc := builder.Location()
	y, m, d := time.Now().In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	start := parseTimeOr(*startStr, today, loc)
	end := parseTimeOr(*endStr, today.AddDate(0, 0, 2), loc)

	events := snap.EventsOverlapping(start, end)
	fmt.Printf("%-4s %-26s %-26s %-10s\n", "#", "start", "end", "duration")
	for i, ev := range events {
		fmt.Printf("%-4d %-26s %-26s %-10s\n", i+1, ev.Start.Format(time.RFC3339), ev.End.Format(time.RFC3339), humanize(ev.Duration()))
	}
	fmt.Printf("%d outage(s) between %s and %s\n", len(events), start.Format(time.RFC3339), end.Format(time.RFC3339))
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	common := addCommon(fs)
	outPath := fs.String("out", "results/outages.csv", "Output CSV path")
	_ = fs.Parse(args)

	snap, _, _ := loadSnapshot(common)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}
	if err := outage.WriteIntervalsCSV(*outPath, snap.Intervals()); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", snap.Len(), *outPath)
}

func loadSnapshot(common commonFlags) (*outage.Snapshot, *outage.Builder, *config.Config) {
	cfg, err := config.LoadUnchecked(*common.cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *common.city != "" {
		cfg.City = *common.city
	}
	if *common.group != "" {
		cfg.Group = *common.group
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var raw []byte
	if *common.dataPath != "" {
		raw, err = data.LoadScheduleJSON(*common.dataPath)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		raw, err = data.NewYasnoClient(cfg.APIURL).FetchSchedule(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to load schedule: %v", err)
	}

	// Keep per-day warnings off stdout.
	builder, err := outage.NewBuilder(cfg.City, cfg.Group, log.New(os.Stderr, "", log.LstdFlags))
	if err != nil {
		log.Fatalf("Failed to create builder: %v", err)
	}
	res := builder.BuildDocument(raw)
	if len(res.Issues) > 0 {
		fmt.Fprintf(os.Stderr, "%d part(s) of the schedule were skipped\n", len(res.Issues))
	}
	return outage.NewSnapshot(res.Intervals, time.Now(), len(res.Issues)), builder, cfg
}

func parseTimeOr(s string, def time.Time, loc *time.Location) time.Time {
	if s == "" {
		return def.In(loc)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		log.Fatalf("Invalid time %q (expected RFC 3339): %v", s, err)
	}
	return t.In(loc)
}

func humanize(d time.Duration) string {
	return durafmt.Parse(d.Truncate(time.Minute)).LimitFirstN(2).String()
}
