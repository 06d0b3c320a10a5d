package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"yasno-outages/internal/data"
	"yasno-outages/internal/model"
	"yasno-outages/internal/outage"
)

// Demo:
// - Load a saved schedule document
// - Build the interval list for one city/group
// - Step through a day and print every grid status change
func main() {
	dataPath := flag.String("data", "data/schedule.json", "Path to a saved schedule JSON")
	city := flag.String("city", "kiev", "City key in the schedule")
	group := flag.String("group", "1.1", "Group id")
	day := flag.String("day", "", "Day to simulate, DD.MM.YYYY (default: first scheduled day)")
	step := flag.Duration("step", 15*time.Minute, "Simulation step")
	flag.Parse()

	raw, err := data.LoadScheduleJSON(*dataPath)
	if err != nil {
		log.Fatal(err)
	}

	builder, err := outage.NewBuilder(*city, *group, log.New(os.Stderr, "", 0))
	if err != nil {
		log.Fatal(err)
	}
	res := builder.BuildDocument(raw)
	snap := outage.NewSnapshot(res.Intervals, time.Now(), len(res.Issues))
	fmt.Printf("Built %d outage(s), %d skipped part(s)\n", snap.Len(), snap.Issues())
	if snap.Len() == 0 {
		return
	}

	var start time.Time
	if *day != "" {
		start, err = builder.ParseTitleDate(*day)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		first := snap.Intervals()[0].Start
		y, m, d := first.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, builder.Location())
	}
	end := start.AddDate(0, 0, 1)

	var prev model.GridStatus
	for t := start; t.Before(end); t = t.Add(*step) {
		status := snap.StatusAt(t)
		if status == prev {
			continue
		}
		prev = status
		attrs := snap.Attributes(t)
		line := fmt.Sprintf("%s  %-8s", t.Format("15:04"), status)
		if attrs.MinutesUntilPower != nil {
			line += fmt.Sprintf(" power back in %d min", *attrs.MinutesUntilPower)
		} else if attrs.MinutesUntilOutage != nil {
			line += fmt.Sprintf(" next outage in %d min", *attrs.MinutesUntilOutage)
		}
		fmt.Println(line)
	}
}
