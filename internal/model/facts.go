package model

// Mode selects which phrasing templates the synthesizer uses.
type Mode string

const (
	// ModeDraft optimises an existing draft funding bid.
	ModeDraft Mode = "draft"
	// ModeNotes builds a structured bid from rough notes.
	ModeNotes Mode = "notes"
)

// Valid reports whether m is a recognised mode.
func (m Mode) Valid() bool {
	return m == ModeDraft || m == ModeNotes
}

// Facts holds everything known or inferred about a funding request.
// The zero value of each field means "absent": empty string, false, or
// nil slice. Detection and remote analysis each produce a partial Facts;
// Merge combines them.
type Facts struct {
	Amount         string   `json:"amount,omitempty"`
	FundingType    string   `json:"fundingType,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Beneficiaries  string   `json:"beneficiaries,omitempty"`
	Reach          string   `json:"reach,omitempty"`
	Evidence       string   `json:"evidence,omitempty"`
	Success        string   `json:"success,omitempty"`
	Sustainability string   `json:"sustainability,omitempty"`
	ProjectSummary string   `json:"projectSummary,omitempty"`
	ProjectTypes   []string `json:"projectTypes,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Gaps           []string `json:"gaps,omitempty"`

	HasEvidence       bool `json:"hasEvidence,omitempty"`
	HasOutcomes       bool `json:"hasOutcomes,omitempty"`
	HasSustainability bool `json:"hasSustainability,omitempty"`
}

// Merge returns a copy of f with every field present in other overwriting
// the corresponding field in f. Other is the higher-priority record: a
// remote analysis correcting local heuristics. A remote evidence, success
// or sustainability snippet also sets the matching presence flag, since a
// captured snippet implies the signal.
func (f Facts) Merge(other Facts) Facts {
	out := f
	if other.Amount != "" {
		out.Amount = other.Amount
	}
	if other.FundingType != "" {
		out.FundingType = other.FundingType
	}
	if other.Duration != "" {
		out.Duration = other.Duration
	}
	if other.Beneficiaries != "" {
		out.Beneficiaries = other.Beneficiaries
	}
	if other.Reach != "" {
		out.Reach = other.Reach
	}
	if other.Evidence != "" {
		out.Evidence = other.Evidence
		out.HasEvidence = true
	}
	if other.Success != "" {
		out.Success = other.Success
		out.HasOutcomes = true
	}
	if other.Sustainability != "" {
		out.Sustainability = other.Sustainability
		out.HasSustainability = true
	}
	if other.ProjectSummary != "" {
		out.ProjectSummary = other.ProjectSummary
	}
	if len(other.ProjectTypes) > 0 {
		out.ProjectTypes = other.ProjectTypes
	}
	if len(other.Strengths) > 0 {
		out.Strengths = other.Strengths
	}
	if len(other.Gaps) > 0 {
		out.Gaps = other.Gaps
	}
	if other.HasEvidence {
		out.HasEvidence = true
	}
	if other.HasOutcomes {
		out.HasOutcomes = true
	}
	if other.HasSustainability {
		out.HasSustainability = true
	}
	return out
}

// Answer returns the answerable value for a question field id, or "" if
// the fact is absent. Presence flags and list-valued fields are not
// answerable and always return "".
func (f Facts) Answer(id string) string {
	switch id {
	case FieldAmount:
		return f.Amount
	case FieldFundingType:
		return f.FundingType
	case FieldDuration:
		return f.Duration
	case FieldBeneficiaries:
		return f.Beneficiaries
	case FieldReach:
		return f.Reach
	case FieldEvidence:
		return f.Evidence
	case FieldSuccess:
		return f.Success
	case FieldSustainability:
		return f.Sustainability
	default:
		return ""
	}
}

// Answers maps question field ids to user-confirmed values. A missing or
// empty entry means unanswered.
type Answers map[string]string

// Clone returns a copy of a. A nil receiver yields an empty, writable map.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// NotSure is the set of field ids the user has marked "not sure yet".
type NotSure map[string]bool

// Clone returns a copy of n. A nil receiver yields an empty, writable map.
func (n NotSure) Clone() NotSure {
	out := make(NotSure, len(n))
	for k, v := range n {
		if v {
			out[k] = true
		}
	}
	return out
}
