// Package extract infers structured funding-request facts from free text
// using ordered rule families. Extraction is pure and total: any input
// string yields a (possibly empty) Facts record and never an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/charitytools/bidcraft/internal/model"
)

// Amount: first currency-prefixed numeric token, grouped digits, optional
// pence.
var amountRe = regexp.MustCompile(`£[0-9][0-9,]*(?:\.[0-9]{2})?`)

// Funding type cues. One-off (or "project" without an ongoing cue) is
// tested before the ongoing family; the first family that fires wins.
var (
	oneOffRe        = regexp.MustCompile(`(?i)\bone[- ]?off\b`)
	projectRe       = regexp.MustCompile(`(?i)\bproject\b`)
	ongoingRe       = regexp.MustCompile(`(?i)\bongoing\b`)
	ongoingFamilyRe = regexp.MustCompile(`(?i)\bongoing\b|\bannual\b|\bcontinuing\b|\bcore funding\b`)
)

// Duration phrasings in fixed scan order; the first match is the only
// duration ever recorded.
var durationRules = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)\b6\s*months?\b`), "6 months"},
	{regexp.MustCompile(`(?i)\b1\s*year\b|\b12\s*months?\b|\bone\s*year\b`), "1 year"},
	{regexp.MustCompile(`(?i)\b2\s*years?\b|\b24\s*months?\b|\btwo\s*years?\b`), "2 years"},
	{regexp.MustCompile(`(?i)\b3\s*years?\b|\b36\s*months?\b|\bthree\s*years?\b`), "3 years"},
}

// Beneficiary groups. Each rule is tested independently; all hits are
// collected in this (catalog) order, not input order. Several patterns
// deliberately match partial words: "disab" covers disability, disabled,
// disabilities.
var beneficiaryRules = []struct {
	re    *regexp.Regexp
	group string
}{
	{regexp.MustCompile(`(?i)young\s*people|youth|teenagers?`), "Young people"},
	{regexp.MustCompile(`(?i)children|child(?:ren)?`), "Children"},
	{regexp.MustCompile(`(?i)older\s*(?:people|adults?)|elderly|pensioners?|over[- ]?65s?`), "Older people"},
	{regexp.MustCompile(`(?i)disab(?:led|ility|ilities)`), "People with disabilities"},
	{regexp.MustCompile(`(?i)mental\s*health|wellbeing|well[- ]?being`), "People experiencing mental health challenges"},
	{regexp.MustCompile(`(?i)homeless(?:ness)?|rough\s*sleep`), "People experiencing homelessness"},
	{regexp.MustCompile(`(?i)refugee|asylum`), "Refugees and asylum seekers"},
	{regexp.MustCompile(`(?i)women|girls|female`), "Women and girls"},
	{regexp.MustCompile(`(?i)famil(?:y|ies)`), "Families"},
	{regexp.MustCompile(`(?i)carers?`), "Carers"},
	{regexp.MustCompile(`(?i)BAME|ethnic\s*minorit|black|Asian`), "Ethnic minority communities"},
	{regexp.MustCompile(`(?i)LGBTQ|LGBT|queer|trans`), "LGBTQ+ community"},
}

// Reach: a number immediately followed by a people-noun. Group 1 is the
// number (separators stripped on output), group 2 the descriptive phrase.
var reachRe = regexp.MustCompile(`(?i)([0-9][0-9,]*)\s*(people|participants?|beneficiaries|individuals?|young\s*people|children|families|members?)`)

// Evidence, outcomes and sustainability all use the same two-tier pattern:
// a broad keyword set flips a presence flag, a narrower set anchors a
// sentence-fragment snippet capture. A missing snippet still leaves the
// flag set.
var (
	evidenceFlagRe    = regexp.MustCompile(`(?i)evidence|research|data|statistic|survey|consultation|needs\s*assessment|census|ONS`)
	evidenceSnippetRe = regexp.MustCompile(`(?i)(?:evidence|research|data|statistic|survey|consultation)[^.]*\.`)

	outcomeFlagRe    = regexp.MustCompile(`(?i)outcome|impact|success|measur|result|achieve|improve`)
	outcomeSnippetRe = regexp.MustCompile(`(?i)(?:outcome|success|measur|result|achieve|improve)[^.]*\.`)

	sustainFlagRe    = regexp.MustCompile(`(?i)sustainab|after\s*(?:the\s*)?funding|legacy|continuation|embed|long[- ]?term`)
	sustainSnippetRe = regexp.MustCompile(`(?i)(?:sustainab|after\s*(?:the\s*)?funding|legacy|continuation)[^.]*\.`)
)

// Project type families, each contributing at most one fixed label, in
// catalog order.
var projectTypeRules = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)training|workshop|session|programme|program`), "Training / programme delivery"},
	{regexp.MustCompile(`(?i)capital|building|refurbish|renovation|equipment`), "Capital / equipment"},
	{regexp.MustCompile(`(?i)staff|salary|salaries|coordinator|worker|officer`), "Staffing"},
	{regexp.MustCompile(`(?i)outreach|engagement|community\s*work`), "Outreach / community engagement"},
	{regexp.MustCompile(`(?i)research|evaluation|pilot`), "Research / pilot"},
	{regexp.MustCompile(`(?i)event|festival|celebration`), "Events"},
}

// Extract scans text with every rule family and returns the partial facts
// it finds. The families are independent, so scan order does not affect
// the result.
func Extract(text string) model.Facts {
	var f model.Facts

	if m := amountRe.FindString(text); m != "" {
		f.Amount = m
	}

	switch {
	case oneOffRe.MatchString(text) || (projectRe.MatchString(text) && !ongoingRe.MatchString(text)):
		f.FundingType = "One-off project"
	case ongoingFamilyRe.MatchString(text):
		f.FundingType = "Ongoing funding"
	}

	for _, d := range durationRules {
		if d.re.MatchString(text) {
			f.Duration = d.label
			break
		}
	}

	var groups []string
	for _, b := range beneficiaryRules {
		if b.re.MatchString(text) {
			groups = append(groups, b.group)
		}
	}
	if len(groups) > 0 {
		f.Beneficiaries = strings.Join(groups, ", ")
	}

	if m := reachRe.FindStringSubmatch(text); m != nil {
		count := strings.ReplaceAll(m[1], ",", "")
		f.Reach = count + " " + strings.TrimSpace(m[2])
	}

	if evidenceFlagRe.MatchString(text) {
		f.HasEvidence = true
		if m := evidenceSnippetRe.FindString(text); m != "" {
			f.Evidence = strings.TrimSpace(m)
		}
	}

	if outcomeFlagRe.MatchString(text) {
		f.HasOutcomes = true
		if m := outcomeSnippetRe.FindString(text); m != "" {
			f.Success = strings.TrimSpace(m)
		}
	}

	if sustainFlagRe.MatchString(text) {
		f.HasSustainability = true
		if m := sustainSnippetRe.FindString(text); m != "" {
			f.Sustainability = strings.TrimSpace(m)
		}
	}

	for _, p := range projectTypeRules {
		if p.re.MatchString(text) {
			f.ProjectTypes = append(f.ProjectTypes, p.label)
		}
	}

	return f
}
