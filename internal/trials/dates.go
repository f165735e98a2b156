package trials

import (
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/guregu/null.v3"
)

// The registry reports dates at day, month, or year precision depending on
// how the study was registered.
var registryDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// daysPerMonth converts day spans to months the same way the dashboard's
// duration metric always has.
const daysPerMonth = 30.44

// ParseRegistryDate parses a raw registry date string. Partial dates resolve
// to the first day of their period; anything unparsable coerces to nil.
func ParseRegistryDate(raw null.String) *time.Time {
	if !raw.Valid || raw.String == "" {
		return nil
	}

	for _, layout := range registryDateLayouts {
		if t, err := time.Parse(layout, raw.String); err == nil {
			return &t
		}
	}

	// Rare free-form values fall through to lenient parsing.
	if t, err := dateparse.ParseAny(raw.String); err == nil {
		return &t
	}

	return nil
}

// ParsedStart is the StartDate column parsed to a point in time, nil when
// absent or unparsable.
func (r TrialRecord) ParsedStart() *time.Time {
	return ParseRegistryDate(r.StartDate)
}

// ParsedCompletion is the CompletionDate column parsed to a point in time,
// nil when absent or unparsable.
func (r TrialRecord) ParsedCompletion() *time.Time {
	return ParseRegistryDate(r.CompletionDate)
}

// DurationMonths is the span between start and completion in months, null
// when either endpoint is missing.
func (r TrialRecord) DurationMonths() null.Float {
	start := r.ParsedStart()
	end := r.ParsedCompletion()
	if start == nil || end == nil {
		return null.Float{}
	}

	days := end.Sub(*start).Hours() / 24
	return null.FloatFrom(days / daysPerMonth)
}
