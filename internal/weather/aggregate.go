package weather

import (
	"sort"
	"time"
)

// Summarize reduces a 3-hour forecast series into one summary per calendar
// date, ordered by date ascending. Dates are derived from each sample's
// timestamp in tz (nil means time.Local).
//
// For each date: min/max temperature across the date's samples; dominant
// condition is the condition with the highest sample count, ties broken by
// earliest first appearance in the series; the representative icon comes
// from the first sample whose local hour falls in [11,13], else the date's
// first sample.
func Summarize(series ForecastSeries, tz *time.Location) []DailySummary {
	if tz == nil {
		tz = time.Local
	}
	if len(series.Samples) == 0 {
		return nil
	}

	type dayAcc struct {
		minTemp     float64
		maxTemp     float64
		counts      map[string]int
		firstSeen   map[string]int
		noonSample  *ForecastSample
		firstSample ForecastSample
	}

	days := make(map[string]*dayAcc)
	order := 0

	for i := range series.Samples {
		s := series.Samples[i]
		ts := s.Time(tz)
		date := ts.Format("2006-01-02")

		acc, ok := days[date]
		if !ok {
			acc = &dayAcc{
				minTemp:     s.Temperature,
				maxTemp:     s.Temperature,
				counts:      make(map[string]int),
				firstSeen:   make(map[string]int),
				firstSample: s,
			}
			days[date] = acc
		}

		if s.Temperature < acc.minTemp {
			acc.minTemp = s.Temperature
		}
		if s.Temperature > acc.maxTemp {
			acc.maxTemp = s.Temperature
		}

		if _, seen := acc.firstSeen[s.Condition]; !seen {
			acc.firstSeen[s.Condition] = order
		}
		acc.counts[s.Condition]++
		order++

		if acc.noonSample == nil {
			if h := ts.Hour(); h >= 11 && h <= 13 {
				sample := s
				acc.noonSample = &sample
			}
		}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	summaries := make([]DailySummary, 0, len(dates))
	for _, date := range dates {
		acc := days[date]

		dominant := ""
		bestCount := 0
		for cond, count := range acc.counts {
			if count > bestCount ||
				(count == bestCount && acc.firstSeen[cond] < acc.firstSeen[dominant]) {
				dominant = cond
				bestCount = count
			}
		}

		rep := acc.firstSample
		if acc.noonSample != nil {
			rep = *acc.noonSample
		}

		summaries = append(summaries, DailySummary{
			Date:              date,
			MinTemp:           acc.minTemp,
			MaxTemp:           acc.maxTemp,
			DominantCondition: dominant,
			Description:       rep.Description,
			Icon:              rep.Icon,
		})
	}

	return summaries
}
