package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charitytools/bidcraft/internal/model"
)

func fullAnswers() model.Answers {
	return model.Answers{
		model.FieldAmount:         "£50,000",
		model.FieldFundingType:    "One-off project",
		model.FieldDuration:       "1 year",
		model.FieldBeneficiaries:  "Young people",
		model.FieldReach:          "200 people",
		model.FieldEvidence:       "survey data",
		model.FieldSuccess:        "80% improved wellbeing",
		model.FieldSustainability: "embed in core services",
	}
}

func TestGaps_AllAnswered(t *testing.T) {
	assert.Empty(t, Gaps(fullAnswers(), model.NotSure{}))
}

func TestGaps_BlankAndNotSureInCatalogOrder(t *testing.T) {
	answers := fullAnswers()
	answers[model.FieldReach] = ""
	delete(answers, model.FieldSustainability)
	notSure := model.NotSure{model.FieldSustainability: true}

	gaps := Gaps(answers, notSure)

	require.Len(t, gaps, 2)
	assert.Contains(t, gaps[0], "How many people will benefit?")
	assert.Contains(t, gaps[0], "left blank")
	assert.Contains(t, gaps[1], "What happens when the funding ends?")
	assert.Contains(t, gaps[1], "not sure yet")
}

func TestGaps_OptionalBlankIsNotAGap(t *testing.T) {
	answers := fullAnswers()
	delete(answers, model.FieldEvidence)
	delete(answers, model.FieldSustainability)

	assert.Empty(t, Gaps(answers, model.NotSure{}))
}

func TestGaps_OptionalNotSureIsAGap(t *testing.T) {
	answers := fullAnswers()
	notSure := model.NotSure{model.FieldEvidence: true}

	gaps := Gaps(answers, notSure)

	require.Len(t, gaps, 1)
	assert.Contains(t, gaps[0], "What evidence of need do you have?")
	assert.Contains(t, gaps[0], "not sure yet")
}

func TestGaps_EmptySessionListsAllRequired(t *testing.T) {
	gaps := Gaps(model.Answers{}, model.NotSure{})

	// Six required questions; evidence and sustainability are optional.
	require.Len(t, gaps, 6)
	assert.Contains(t, gaps[0], "How much funding")
	assert.Contains(t, gaps[5], "What will success look like?")
}
