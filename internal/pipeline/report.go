package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/charitytools/bidcraft/internal/model"
)

var printer = message.NewPrinter(language.BritishEnglish)

// FormatSummary renders the working view of a session as plain text: what
// was detected, what the remote analysis added, and what the funder cares
// about. The serve API returns the same data as JSON; this is the CLI
// rendering.
func FormatSummary(sess model.Session) string {
	var b strings.Builder
	d := sess.Detected

	fmt.Fprintf(&b, "# Working summary: %s\n", sess.FunderName)
	if sess.Mode == model.ModeDraft {
		b.WriteString("Mode: optimising your draft funding bid\n")
	} else {
		b.WriteString("Mode: building a structured bid from your notes\n")
	}
	printer.Fprintf(&b, "Input: %d words\n\n", len(strings.Fields(sess.Input)))

	if len(d.ProjectTypes) > 0 {
		fmt.Fprintf(&b, "Project type: %s\n", strings.Join(d.ProjectTypes, ", "))
	}

	items := detectedItems(d)
	if len(items) > 0 {
		b.WriteString("Detected from your input:\n")
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	} else {
		b.WriteString("We couldn't detect specific details from your input yet — answer the questions to build a strong application.\n")
	}

	if d.ProjectSummary != "" {
		fmt.Fprintf(&b, "\nProject summary: %s\n", d.ProjectSummary)
	}
	if len(d.Strengths) > 0 {
		b.WriteString("\nStrengths identified:\n")
		for _, s := range d.Strengths {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if len(d.Gaps) > 0 {
		b.WriteString("\nAreas to strengthen:\n")
		for _, g := range d.Gaps {
			fmt.Fprintf(&b, "  - %s\n", g)
		}
	}

	b.WriteString("\n## Funder priorities\n")
	for _, v := range sess.Profile.Values {
		fmt.Fprintf(&b, "  - %s\n", v)
	}
	fmt.Fprintf(&b, "Tip: %s\n", sess.Profile.Tip)

	return b.String()
}

// detectedItems lists the detected facts in display order.
func detectedItems(d model.Facts) []string {
	var items []string
	if d.Amount != "" {
		items = append(items, "Funding amount: "+d.Amount)
	}
	if d.FundingType != "" {
		items = append(items, "Type: "+d.FundingType)
	}
	if d.Duration != "" {
		items = append(items, "Duration: "+d.Duration)
	}
	if d.Beneficiaries != "" {
		items = append(items, "Beneficiaries: "+d.Beneficiaries)
	}
	if d.Reach != "" {
		items = append(items, "Reach: "+d.Reach)
	}
	if d.HasEvidence {
		items = append(items, "Evidence of need mentioned")
	}
	if d.HasOutcomes {
		items = append(items, "Outcomes/impact mentioned")
	}
	if d.HasSustainability {
		items = append(items, "Sustainability mentioned")
	}
	return items
}

// FormatQuestions renders the question catalog with current answers and
// not-sure flags for the analyse command.
func FormatQuestions(answers model.Answers, notSure model.NotSure) string {
	var b strings.Builder
	b.WriteString("## Questions\n")
	for _, q := range model.Catalog {
		marker := " "
		switch {
		case notSure[q.ID]:
			marker = "?"
		case answers[q.ID] != "":
			marker = "x"
		}
		fmt.Fprintf(&b, "[%s] %s\n", marker, q.Label)
		fmt.Fprintf(&b, "    Why: %s\n", q.Why)
		if v := answers[q.ID]; v != "" {
			fmt.Fprintf(&b, "    Answer: %s\n", v)
		}
	}
	return b.String()
}
