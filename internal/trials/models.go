package trials

import (
	"time"

	"gopkg.in/guregu/null.v3"

	"github.com/ZiggyLiu/clinical-study-visual/internal/registry"
)

// TrialRecord is one normalized study row. Every column is nullable: the
// registry omits modules freely and absence flattens to JSON null rather
// than a zero value.
type TrialRecord struct {
	NCTID          null.String `json:"nct_id" csv:"nct_id"`
	Title          null.String `json:"title" csv:"title"`
	Status         null.String `json:"status" csv:"status"`
	Phase          null.String `json:"phase" csv:"phase"`
	Sponsor        null.String `json:"sponsor" csv:"sponsor"`
	Enrollment     null.Int    `json:"enrollment" csv:"enrollment"`
	StartDate      null.String `json:"start_date" csv:"start_date"`
	CompletionDate null.String `json:"completion_date" csv:"completion_date"`
}

// TrialTable is the ordered fetch result consumed by the dashboard layer.
// Row order matches registry page order.
type TrialTable []TrialRecord

// RecordFromStudy flattens one registry study entry into a TrialRecord.
// A module missing at any nesting level leaves its leaf columns null; per
// the acquisition contract that is never an error.
func RecordFromStudy(s registry.Study) TrialRecord {
	var rec TrialRecord

	proto := s.ProtocolSection
	if proto == nil {
		return rec
	}

	if id := proto.Identification; id != nil {
		rec.NCTID = id.NCTID
		rec.Title = id.BriefTitle
	}

	if status := proto.Status; status != nil {
		rec.Status = status.OverallStatus
		if status.StartDateStruct != nil {
			rec.StartDate = status.StartDateStruct.Date
		}
		if status.CompletionDateStruct != nil {
			rec.CompletionDate = status.CompletionDateStruct.Date
		}
	}

	if sponsor := proto.Sponsor; sponsor != nil && sponsor.LeadSponsor != nil {
		rec.Sponsor = sponsor.LeadSponsor.Name
	}

	if design := proto.Design; design != nil {
		if design.PhaseList != nil && len(design.PhaseList.Phases) > 0 {
			rec.Phase = null.StringFrom(design.PhaseList.Phases[0])
		}
		if design.EnrollmentInfo != nil {
			rec.Enrollment = design.EnrollmentInfo.Value
		}
	}

	return rec
}

// TrialsResponse is the API envelope for a fetched (and possibly filtered)
// trial table.
type TrialsResponse struct {
	Timestamp time.Time  `json:"timestamp"`
	Condition string     `json:"condition"`
	Count     int        `json:"count"`
	Trials    TrialTable `json:"trials"`
}

// SummaryResponse is the API envelope for the dashboard aggregates.
type SummaryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Condition string    `json:"condition"`
	Summary   Summary   `json:"summary"`
}
