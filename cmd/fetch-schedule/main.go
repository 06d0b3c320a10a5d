package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"yasno-outages/internal/data"
	"yasno-outages/internal/schedule"
)

// Downloads the raw schedule document so it can be replayed with the CLI or
// used as a test fixture.
func main() {
	var (
		url        = flag.String("url", "", "Schedule endpoint (default: "+data.DefaultScheduleURL+")")
		outputPath = flag.String("output", "", "Output file path (default: ./data/schedule.json)")
		timeout    = flag.Duration("timeout", 30*time.Second, "Request timeout")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = data.GetDefaultSchedulePath()
	}

	client := data.NewYasnoClient(*url)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Printf("Fetching schedule from %s\n", client.URL)
	raw, err := client.FetchSchedule(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch schedule: %v", err)
	}

	doc, err := schedule.Parse(raw)
	if err != nil {
		log.Fatalf("Response is not valid JSON: %v", err)
	}
	for _, key := range []string{schedule.DailyScheduleKey, schedule.TomorrowScheduleKey} {
		sub, ok := schedule.Find(doc, key)
		if !ok {
			fmt.Printf("  ⚠️  %s not present\n", key)
			continue
		}
		cities, _ := sub.Members()
		names := make([]string, 0, len(cities))
		for _, c := range cities {
			names = append(names, c.Key)
		}
		fmt.Printf("  ✓ %s: cities %v\n", key, names)
	}

	if err := data.SaveScheduleJSON(raw, *outputPath); err != nil {
		log.Fatalf("Failed to save schedule: %v", err)
	}
	fmt.Printf("Saved %d bytes to %s\n", len(raw), *outputPath)
}
