package trials

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

const (
	// topSponsorCount caps the sponsor leaderboard in a summary.
	topSponsorCount = 5
	// histogramBins is the number of equal-width enrollment buckets.
	histogramBins = 10
)

// ValueCount is one bar of a categorical distribution.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// HistogramBin is one equal-width bucket of a numeric distribution. Low is
// inclusive; High is exclusive except for the final bin.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Summary is the dashboard-facing aggregation of a trial table: headline
// metrics, chart-ready distributions, and the facet values present in the
// table for building filter controls.
type Summary struct {
	TotalTrials          int            `json:"total_trials"`
	ActiveSponsors       int            `json:"active_sponsors"`
	MedianEnrollment     null.Float     `json:"median_enrollment"`
	MedianDurationMonths null.Float     `json:"median_duration_months"`
	StatusCounts         []ValueCount   `json:"status_counts"`
	TopSponsors          []ValueCount   `json:"top_sponsors"`
	EnrollmentHistogram  []HistogramBin `json:"enrollment_histogram"`
	Statuses             []string       `json:"statuses"`
	Sponsors             []string       `json:"sponsors"`
}

// Summarize computes the dashboard summary for a table. Null values are
// excluded from the metric or distribution they would feed; a table with no
// usable values for a metric yields a null metric, not a zero.
func Summarize(table TrialTable) Summary {
	statusCounts := map[string]int{}
	sponsorCounts := map[string]int{}
	enrollments := []float64{}
	durations := []float64{}

	for _, rec := range table {
		if rec.Status.Valid {
			statusCounts[rec.Status.String]++
		}
		if rec.Sponsor.Valid {
			sponsorCounts[rec.Sponsor.String]++
		}
		if rec.Enrollment.Valid {
			enrollments = append(enrollments, float64(rec.Enrollment.Int64))
		}
		if months := rec.DurationMonths(); months.Valid {
			durations = append(durations, months.Float64)
		}
	}

	return Summary{
		TotalTrials:          len(table),
		ActiveSponsors:       len(sponsorCounts),
		MedianEnrollment:     median(enrollments),
		MedianDurationMonths: median(durations),
		StatusCounts:         sortedCounts(statusCounts, 0),
		TopSponsors:          sortedCounts(sponsorCounts, topSponsorCount),
		EnrollmentHistogram:  histogram(enrollments, histogramBins),
		Statuses:             sortedKeys(statusCounts),
		Sponsors:             sortedKeys(sponsorCounts),
	}
}

func median(values []float64) null.Float {
	m, err := stats.Median(values)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(m)
}

// sortedCounts orders a distribution by descending count, ties broken by
// value, and truncates to limit when limit is positive.
func sortedCounts(counts map[string]int, limit int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// histogram buckets values into bins equal-width bins spanning [min, max].
// Values are never dropped: the maximum lands in the final bin. A single
// distinct value collapses to one bin.
func histogram(values []float64, bins int) []HistogramBin {
	if len(values) == 0 {
		return []HistogramBin{}
	}

	low, _ := stats.Min(values)
	high, _ := stats.Max(values)
	if low == high {
		return []HistogramBin{{Low: low, High: high, Count: len(values)}}
	}

	width := (high - low) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Low = low + float64(i)*width
		out[i].High = low + float64(i+1)*width
	}
	out[bins-1].High = high

	for _, v := range values {
		idx := int((v - low) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}
