package registry

import "gopkg.in/guregu/null.v3"

// SearchResponse is one page of the registry's study search results.
type SearchResponse struct {
	Studies       []Study `json:"studies"`
	NextPageToken string  `json:"nextPageToken"`
}

// Study is a single study entry from the registry. Only the protocol modules
// the pipeline extracts are modeled; the rest of the payload is ignored.
type Study struct {
	ProtocolSection *ProtocolSection `json:"protocolSection"`
}

// ProtocolSection groups the per-study protocol modules.
type ProtocolSection struct {
	Identification *IdentificationModule       `json:"identificationModule"`
	Status         *StatusModule               `json:"statusModule"`
	Sponsor        *SponsorCollaboratorsModule `json:"sponsorCollaboratorsModule"`
	Design         *DesignModule               `json:"designModule"`
}

// IdentificationModule carries the study identifier and title.
type IdentificationModule struct {
	NCTID      null.String `json:"nctId"`
	BriefTitle null.String `json:"briefTitle"`
}

// StatusModule carries recruitment status and the study date structs.
type StatusModule struct {
	OverallStatus        null.String `json:"overallStatus"`
	StartDateStruct      *DateStruct `json:"startDateStruct"`
	CompletionDateStruct *DateStruct `json:"completionDateStruct"`
}

// DateStruct wraps a registry date, which may be a full or partial date string.
type DateStruct struct {
	Date null.String `json:"date"`
}

// SponsorCollaboratorsModule carries the lead sponsor.
type SponsorCollaboratorsModule struct {
	LeadSponsor *LeadSponsor `json:"leadSponsor"`
}

// LeadSponsor identifies the organization leading the study.
type LeadSponsor struct {
	Name null.String `json:"name"`
}

// DesignModule carries the phase list and enrollment target.
type DesignModule struct {
	PhaseList      *PhaseList      `json:"phaseList"`
	EnrollmentInfo *EnrollmentInfo `json:"enrollmentInfo"`
}

// PhaseList wraps the ordered list of study phases.
type PhaseList struct {
	Phases []string `json:"phases"`
}

// EnrollmentInfo wraps the target enrollment count.
type EnrollmentInfo struct {
	Value null.Int `json:"value"`
}
