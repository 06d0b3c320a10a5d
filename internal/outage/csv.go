package outage

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"yasno-outages/internal/model"
)

func WriteIntervalsCSV(path string, intervals []model.OutageInterval) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeIntervals(f, intervals)
}

func writeIntervals(out io.Writer, intervals []model.OutageInterval) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"index",
		"start",
		"end",
		"duration_minutes",
		"group",
		"summary",
		"description",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, iv := range intervals {
		row := []string{
			strconv.Itoa(i),
			fmtTime(iv.Start),
			fmtTime(iv.End),
			strconv.Itoa(wholeMinutes(iv.Duration())),
			iv.Group,
			iv.Summary,
			iv.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
