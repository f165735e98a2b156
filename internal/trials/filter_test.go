package trials

import (
	"reflect"
	"testing"

	"gopkg.in/guregu/null.v3"
)

func filterTable() TrialTable {
	return TrialTable{
		{NCTID: null.StringFrom("NCT00000001"), Status: null.StringFrom("RECRUITING"), Sponsor: null.StringFrom("Acme Health")},
		{NCTID: null.StringFrom("NCT00000002"), Status: null.StringFrom("COMPLETED"), Sponsor: null.StringFrom("Beta Labs")},
		{NCTID: null.StringFrom("NCT00000003"), Status: null.StringFrom("RECRUITING"), Sponsor: null.StringFrom("Beta Labs")},
		{NCTID: null.StringFrom("NCT00000004"), Sponsor: null.StringFrom("Acme Health")},
	}
}

func recordIDs(table TrialTable) []string {
	ids := make([]string, len(table))
	for i, rec := range table {
		ids[i] = rec.NCTID.String
	}
	return ids
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			"unconstrained",
			Filter{},
			[]string{"NCT00000001", "NCT00000002", "NCT00000003", "NCT00000004"},
		},
		{
			"single status",
			Filter{Statuses: []string{"RECRUITING"}},
			[]string{"NCT00000001", "NCT00000003"},
		},
		{
			"multiple statuses",
			Filter{Statuses: []string{"RECRUITING", "COMPLETED"}},
			[]string{"NCT00000001", "NCT00000002", "NCT00000003"},
		},
		{
			"single sponsor",
			Filter{Sponsors: []string{"Beta Labs"}},
			[]string{"NCT00000002", "NCT00000003"},
		},
		{
			"status and sponsor combined",
			Filter{Statuses: []string{"RECRUITING"}, Sponsors: []string{"Beta Labs"}},
			[]string{"NCT00000003"},
		},
		{
			"no matches",
			Filter{Statuses: []string{"TERMINATED"}},
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recordIDs(tt.filter.Apply(filterTable()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() kept %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterExcludesNullValuesFromConstrainedDimensions(t *testing.T) {
	table := filterTable()

	// NCT00000004 has a null status: any status constraint drops it, while a
	// sponsor-only constraint keeps it.
	got := recordIDs(Filter{Statuses: []string{"RECRUITING", "COMPLETED", ""}}.Apply(table))
	for _, id := range got {
		if id == "NCT00000004" {
			t.Error("row with null status matched a status constraint")
		}
	}

	got = recordIDs(Filter{Sponsors: []string{"Acme Health"}}.Apply(table))
	want := []string{"NCT00000001", "NCT00000004"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() kept %v, want %v", got, want)
	}
}
