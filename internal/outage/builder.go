package outage

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"yasno-outages/internal/model"
	"yasno-outages/internal/schedule"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TimeZone is the zone every schedule is published in. It is not configurable.
const TimeZone = "Europe/Kyiv"

const (
	titleSeparator = " на "
	// Accepts both "05.03.2024" and "5.3.2024".
	titleDateLayout = "2.1.2006"
)

// Builder turns the provider's schedule documents into outage intervals for
// one city and one group.
type Builder struct {
	City  string
	Group string

	loc *time.Location
	log *log.Logger
}

// BuildResult is the outcome of one build pass. Intervals are sorted by start
// and deduplicated; Issues lists every day or period that had to be skipped.
type BuildResult struct {
	Intervals []model.OutageInterval
	Issues    []*Issue
}

// NewBuilder fails only if the configuration itself is unusable.
func NewBuilder(city, group string, logger *log.Logger) (*Builder, error) {
	if strings.TrimSpace(city) == "" {
		return nil, errors.New("city is required")
	}
	if group == "" {
		return nil, errors.New("group is required")
	}
	loc, err := time.LoadLocation(TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %s: %w", TimeZone, err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{City: city, Group: group, loc: loc, log: logger}, nil
}

// Location returns the fixed schedule time zone.
func (b *Builder) Location() *time.Location { return b.loc }

// BuildDocument extracts both schedules from a raw provider document and
// builds from them. Empty or unparseable input gives an empty result.
func (b *Builder) BuildDocument(raw []byte) BuildResult {
	doc, err := schedule.Parse(raw)
	if err != nil {
		b.log.Printf("[Builder] Error parsing schedule document: %v", err)
		return BuildResult{Issues: []*Issue{{Source: "document", Period: -1, Err: err}}}
	}
	daily, _ := schedule.Find(doc, schedule.DailyScheduleKey)
	tomorrow, _ := schedule.Find(doc, schedule.TomorrowScheduleKey)
	return b.Build(daily, tomorrow)
}

// Build converts the daily and tomorrow schedule sub-documents (either may be
// absent) into a sorted interval list. Bad data never fails the build; the
// offending day or period is skipped and reported in Issues.
func (b *Builder) Build(daily, tomorrow schedule.Value) BuildResult {
	var res BuildResult
	b.addSchedule(&res, schedule.DailyScheduleKey, daily)
	b.addSchedule(&res, schedule.TomorrowScheduleKey, tomorrow)

	sort.SliceStable(res.Intervals, func(i, j int) bool {
		return res.Intervals[i].Start.Before(res.Intervals[j].Start)
	})
	return res
}

func (b *Builder) addSchedule(res *BuildResult, source string, doc schedule.Value) {
	if doc.IsAbsent() {
		return
	}
	cityData, ok := b.lookupCity(doc)
	if !ok {
		b.log.Printf("[Builder] %s: no data for city %q", source, b.City)
		return
	}
	days, ok := cityData.Members()
	if !ok {
		b.report(res, &Issue{Source: source, Day: b.City, Period: -1,
			Err: fmt.Errorf("%w: city entry is a %s, not an object", ErrMalformedDay, cityData.Kind())})
		return
	}
	for _, day := range days {
		b.addDay(res, source, day)
	}
}

// lookupCity prefers an exact key and falls back to a case-insensitive match.
func (b *Builder) lookupCity(doc schedule.Value) (schedule.Value, bool) {
	if v, ok := doc.Get(b.City); ok {
		return v, true
	}
	members, ok := doc.Members()
	if !ok {
		return schedule.Value{}, false
	}
	want := foldCity(b.City)
	for _, m := range members {
		if foldCity(m.Key) == want {
			return m.Value, true
		}
	}
	return schedule.Value{}, false
}

func (b *Builder) addDay(res *BuildResult, source string, day schedule.Member) {
	groups, _ := day.Value.Get("groups")
	periods, ok := groups.Get(b.Group)
	if !ok {
		return
	}

	dayIssue := func(err error) {
		b.report(res, &Issue{Source: source, Day: day.Key, Period: -1, Err: err})
	}

	titleVal, _ := day.Value.Get("title")
	title, ok := titleVal.AsString()
	if !ok {
		dayIssue(fmt.Errorf("%w: missing title", ErrMalformedDay))
		return
	}
	date, err := b.ParseTitleDate(title)
	if err != nil {
		dayIssue(err)
		return
	}
	items, ok := periods.Items()
	if !ok {
		dayIssue(fmt.Errorf("%w: group %q periods are a %s, not a list", ErrMalformedDay, b.Group, periods.Kind()))
		return
	}

	for idx, item := range items {
		iv, err := b.interval(date, item)
		if err != nil {
			b.report(res, &Issue{Source: source, Day: day.Key, Period: idx, Err: err})
			continue
		}
		if !addUnique(res, iv) {
			b.log.Printf("[Builder] %s: dropping %s-%s, overlaps an earlier outage",
				source, iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
		}
	}
}

// addUnique appends iv unless it touches an interval already collected. The
// earlier report wins as-is; it is never widened to the union.
func addUnique(res *BuildResult, iv model.OutageInterval) bool {
	for _, existing := range res.Intervals {
		if existing.Touches(iv) {
			return false
		}
	}
	res.Intervals = append(res.Intervals, iv)
	return true
}

// ParseTitleDate reads the date from a day title such as
// "24.11.2024 на понеділок": the text before the first " на " as day.month.year.
func (b *Builder) ParseTitleDate(title string) (time.Time, error) {
	token := title
	if i := strings.Index(title, titleSeparator); i >= 0 {
		token = title[:i]
	}
	date, err := time.ParseInLocation(titleDateLayout, strings.TrimSpace(token), b.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: title %q: %v", ErrMalformedDay, title, err)
	}
	return date, nil
}

// Period decodes one raw period entry against its day.
func (b *Builder) Period(date time.Time, item schedule.Value) (model.OutagePeriod, error) {
	start, err := hourField(item, "start")
	if err != nil {
		return model.OutagePeriod{}, err
	}
	end, err := hourField(item, "end")
	if err != nil {
		return model.OutagePeriod{}, err
	}
	return model.OutagePeriod{Date: date, Start: start, End: end}, nil
}

func (b *Builder) interval(date time.Time, item schedule.Value) (model.OutageInterval, error) {
	p, err := b.Period(date, item)
	if err != nil {
		return model.OutageInterval{}, err
	}
	start, err := b.at(p.Date, p.Start)
	if err != nil {
		return model.OutageInterval{}, err
	}
	end, err := b.at(p.Date, p.End)
	if err != nil {
		return model.OutageInterval{}, err
	}
	if !start.Before(end) {
		return model.OutageInterval{}, fmt.Errorf("%w: end %v is not after start %v", ErrMalformedPeriod, p.End, p.Start)
	}
	return model.OutageInterval{
		Start:       start,
		End:         end,
		Group:       b.Group,
		Summary:     fmt.Sprintf("Power Outage Group %s", b.Group),
		Description: fmt.Sprintf("Scheduled power outage for group %s in %s", b.Group, cases.Title(language.Und).String(strings.TrimSpace(b.City))),
	}, nil
}

// at places a fractional hour on date. 24:00 lands on the following midnight.
func (b *Builder) at(date time.Time, hours float64) (time.Time, error) {
	h, m, err := SplitHours(hours)
	if err != nil {
		return time.Time{}, err
	}
	y, mon, d := date.Date()
	return time.Date(y, mon, d, h, m, 0, 0, b.loc), nil
}

func hourField(item schedule.Value, key string) (float64, error) {
	v, ok := item.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedPeriod, key)
	}
	n, ok := v.AsNumber()
	if !ok {
		return 0, fmt.Errorf("%w: %q is a %s, not a number", ErrMalformedPeriod, key, v.Kind())
	}
	return n, nil
}

func (b *Builder) report(res *BuildResult, issue *Issue) {
	b.log.Printf("[Builder] Skipping %v", issue)
	res.Issues = append(res.Issues, issue)
}

func foldCity(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
