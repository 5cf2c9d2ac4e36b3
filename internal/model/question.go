package model

// Field ids for the facts the tool ever asks about. The set is fixed: the
// question catalog below is the canonical list and does not change at
// runtime.
const (
	FieldAmount         = "amount"
	FieldFundingType    = "fundingType"
	FieldDuration       = "duration"
	FieldBeneficiaries  = "beneficiaries"
	FieldReach          = "reach"
	FieldEvidence       = "evidence"
	FieldSuccess        = "success"
	FieldSustainability = "sustainability"
)

// InputKind describes how a question is answered.
type InputKind string

const (
	KindText     InputKind = "text"     // single-line free text
	KindLongText InputKind = "longtext" // multi-line free text
	KindToggle   InputKind = "toggle"   // pick one of two options
	KindSelect   InputKind = "select"   // pick from a dropdown list
)

// Question is one entry in the fixed smart-question catalog.
type Question struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Why         string    `json:"why"`
	Kind        InputKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Optional    bool      `json:"optional"`
}

// Catalog is the canonical question set, in display and gap-report order.
var Catalog = []Question{
	{
		ID:          FieldAmount,
		Label:       "How much funding are you requesting?",
		Why:         "Funders want specific amounts with justification",
		Kind:        KindText,
		Placeholder: "e.g. £50,000",
	},
	{
		ID:      FieldFundingType,
		Label:   "Is this a one-off project or a request for ongoing funding?",
		Why:     "This completely changes how your bid is framed",
		Kind:    KindToggle,
		Options: []string{"One-off project", "Ongoing funding"},
	},
	{
		ID:      FieldDuration,
		Label:   "Over what time period?",
		Why:     "Required for budgeting narrative",
		Kind:    KindSelect,
		Options: []string{"6 months", "1 year", "2 years", "3 years", "Other"},
	},
	{
		ID:          FieldBeneficiaries,
		Label:       "Who are the primary beneficiaries?",
		Why:         "Must match funder priorities for strongest alignment",
		Kind:        KindText,
		Placeholder: "e.g. Young people aged 16-25 in South London",
	},
	{
		ID:          FieldReach,
		Label:       "How many people will benefit?",
		Why:         "Funders want scale and reach data",
		Kind:        KindText,
		Placeholder: "e.g. 200 direct beneficiaries, 500 indirect",
	},
	{
		ID:          FieldEvidence,
		Label:       "What evidence of need do you have?",
		Why:         "Strengthens the case significantly",
		Kind:        KindLongText,
		Placeholder: "e.g. Local needs assessment data, ONS statistics, consultation findings...",
		Optional:    true,
	},
	{
		ID:          FieldSuccess,
		Label:       "What will success look like?",
		Why:         "Outcomes and impact measurement are critical for funders",
		Kind:        KindLongText,
		Placeholder: "e.g. 80% of participants report improved wellbeing; 50 people gain qualifications...",
	},
	{
		ID:          FieldSustainability,
		Label:       "What happens when the funding ends?",
		Why:         "Sustainability — funders always ask this question",
		Kind:        KindLongText,
		Placeholder: "e.g. We will seek continuation funding, embed in core services, train volunteers...",
		Optional:    true,
	},
}

// QuestionByID returns the catalog entry for an id, or nil if unknown.
func QuestionByID(id string) *Question {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
