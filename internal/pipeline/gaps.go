package pipeline

import (
	"fmt"

	"github.com/charitytools/bidcraft/internal/model"
)

// Gaps lists the questions that still need attention before submitting, in
// fixed catalog order. A not-sure flag always produces a gap, required and
// optional alike; a blank answer produces one only for required questions.
func Gaps(answers model.Answers, notSure model.NotSure) []string {
	var gaps []string
	for _, q := range model.Catalog {
		switch {
		case notSure[q.ID]:
			gaps = append(gaps, fmt.Sprintf("%s — marked as \"not sure yet\". Address this before submitting.", q.Label))
		case answers[q.ID] == "" && !q.Optional:
			gaps = append(gaps, fmt.Sprintf("%s — left blank. Consider adding this information.", q.Label))
		}
	}
	return gaps
}
