package pipeline

import (
	"github.com/charitytools/bidcraft/internal/model"
)

// answerable are the fields that pre-fill the answer set from detection,
// in catalog order.
var answerable = []string{
	model.FieldAmount,
	model.FieldFundingType,
	model.FieldDuration,
	model.FieldBeneficiaries,
	model.FieldReach,
	model.FieldEvidence,
	model.FieldSuccess,
	model.FieldSustainability,
}

// Reconcile merges the three fact tiers. Remote strictly dominates local,
// producing the display view shown to the user as "detected". Display
// values then pre-fill only the answers the user has not already touched:
// an existing entry in prior is never overwritten, whatever the new
// detection says. A field flagged not-sure keeps its stored answer so it
// can be un-flagged later. Both inputs are left unmodified; the returned
// answer set is a copy.
func Reconcile(local, remote model.Facts, prior model.Answers, notSure model.NotSure) (model.Answers, model.Facts) {
	display := local.Merge(remote)

	answers := prior.Clone()
	for _, id := range answerable {
		if _, touched := answers[id]; touched {
			continue
		}
		if v := display.Answer(id); v != "" {
			answers[id] = v
		}
	}

	return answers, display
}
