package trials

import "gopkg.in/guregu/null.v3"

// Filter narrows a trial table by exact status and sponsor values. Empty
// slices leave the corresponding dimension unconstrained.
type Filter struct {
	Statuses []string
	Sponsors []string
}

// Apply returns the rows matching every constrained dimension, preserving
// table order. Rows with a null value on a constrained dimension never match.
func (f Filter) Apply(table TrialTable) TrialTable {
	if len(f.Statuses) == 0 && len(f.Sponsors) == 0 {
		return table
	}

	statuses := toSet(f.Statuses)
	sponsors := toSet(f.Sponsors)

	filtered := TrialTable{}
	for _, rec := range table {
		if !matches(statuses, rec.Status) {
			continue
		}
		if !matches(sponsors, rec.Sponsor) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// matches treats a nil set as unconstrained and a null column value as a
// non-match against any constrained set.
func matches(set map[string]struct{}, value null.String) bool {
	if set == nil {
		return true
	}
	if !value.Valid {
		return false
	}
	_, ok := set[value.String]
	return ok
}
