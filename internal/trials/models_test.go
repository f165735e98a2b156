package trials

import (
	"encoding/json"
	"testing"

	"github.com/ZiggyLiu/clinical-study-visual/internal/registry"
	"gopkg.in/guregu/null.v3"
)

func fullStudy() registry.Study {
	return registry.Study{
		ProtocolSection: &registry.ProtocolSection{
			Identification: &registry.IdentificationModule{
				NCTID:      null.StringFrom("NCT01234567"),
				BriefTitle: null.StringFrom("A Study of Something"),
			},
			Status: &registry.StatusModule{
				OverallStatus:        null.StringFrom("RECRUITING"),
				StartDateStruct:      &registry.DateStruct{Date: null.StringFrom("2021-05")},
				CompletionDateStruct: &registry.DateStruct{Date: null.StringFrom("2023-05-01")},
			},
			Sponsor: &registry.SponsorCollaboratorsModule{
				LeadSponsor: &registry.LeadSponsor{Name: null.StringFrom("Acme Health")},
			},
			Design: &registry.DesignModule{
				PhaseList:      &registry.PhaseList{Phases: []string{"PHASE2", "PHASE3"}},
				EnrollmentInfo: &registry.EnrollmentInfo{Value: null.IntFrom(120)},
			},
		},
	}
}

func TestRecordFromStudy(t *testing.T) {
	rec := RecordFromStudy(fullStudy())

	if got := rec.NCTID.String; got != "NCT01234567" {
		t.Errorf("NCTID = %q, want NCT01234567", got)
	}
	if got := rec.Title.String; got != "A Study of Something" {
		t.Errorf("Title = %q", got)
	}
	if got := rec.Status.String; got != "RECRUITING" {
		t.Errorf("Status = %q, want RECRUITING", got)
	}
	// Only the first listed phase is kept.
	if got := rec.Phase.String; got != "PHASE2" {
		t.Errorf("Phase = %q, want PHASE2", got)
	}
	if got := rec.Sponsor.String; got != "Acme Health" {
		t.Errorf("Sponsor = %q, want Acme Health", got)
	}
	if !rec.Enrollment.Valid || rec.Enrollment.Int64 != 120 {
		t.Errorf("Enrollment = %v, want 120", rec.Enrollment)
	}
	if got := rec.StartDate.String; got != "2021-05" {
		t.Errorf("StartDate = %q, want 2021-05", got)
	}
	if got := rec.CompletionDate.String; got != "2023-05-01" {
		t.Errorf("CompletionDate = %q, want 2023-05-01", got)
	}
}

func TestRecordFromStudyMissingModules(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*registry.ProtocolSection)
		check func(*testing.T, TrialRecord)
	}{
		{
			"no design module",
			func(p *registry.ProtocolSection) { p.Design = nil },
			func(t *testing.T, rec TrialRecord) {
				if rec.Phase.Valid || rec.Enrollment.Valid {
					t.Errorf("Phase = %v, Enrollment = %v, want both null", rec.Phase, rec.Enrollment)
				}
				if !rec.NCTID.Valid || !rec.Status.Valid {
					t.Error("unrelated columns lost their values")
				}
			},
		},
		{
			"empty phase list",
			func(p *registry.ProtocolSection) { p.Design.PhaseList.Phases = nil },
			func(t *testing.T, rec TrialRecord) {
				if rec.Phase.Valid {
					t.Errorf("Phase = %v, want null", rec.Phase)
				}
				if !rec.Enrollment.Valid {
					t.Error("Enrollment lost its value")
				}
			},
		},
		{
			"no date structs",
			func(p *registry.ProtocolSection) {
				p.Status.StartDateStruct = nil
				p.Status.CompletionDateStruct = nil
			},
			func(t *testing.T, rec TrialRecord) {
				if rec.StartDate.Valid || rec.CompletionDate.Valid {
					t.Error("dates set despite missing date structs")
				}
				if !rec.Status.Valid {
					t.Error("Status lost its value")
				}
			},
		},
		{
			"no lead sponsor",
			func(p *registry.ProtocolSection) { p.Sponsor.LeadSponsor = nil },
			func(t *testing.T, rec TrialRecord) {
				if rec.Sponsor.Valid {
					t.Errorf("Sponsor = %v, want null", rec.Sponsor)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			study := fullStudy()
			tt.strip(study.ProtocolSection)
			tt.check(t, RecordFromStudy(study))
		})
	}
}

func TestRecordFromStudyEmptyStudy(t *testing.T) {
	rec := RecordFromStudy(registry.Study{})
	if rec.NCTID.Valid || rec.Title.Valid || rec.Status.Valid || rec.Phase.Valid ||
		rec.Sponsor.Valid || rec.Enrollment.Valid || rec.StartDate.Valid || rec.CompletionDate.Valid {
		t.Errorf("record from empty study has non-null columns: %+v", rec)
	}
}

func TestTrialRecordJSONNulls(t *testing.T) {
	rec := RecordFromStudy(registry.Study{
		ProtocolSection: &registry.ProtocolSection{
			Identification: &registry.IdentificationModule{NCTID: null.StringFrom("NCT01234567")},
		},
	})

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["nct_id"] != "NCT01234567" {
		t.Errorf("nct_id = %v", out["nct_id"])
	}
	for _, key := range []string{"title", "status", "phase", "sponsor", "enrollment", "start_date", "completion_date"} {
		if v, ok := out[key]; !ok || v != nil {
			t.Errorf("%s = %v, want explicit null", key, v)
		}
	}
}
