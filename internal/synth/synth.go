// Package synth renders reconciled answers and a funder profile into a
// structured funding-request document plus alignment notes. It is pure:
// identical inputs always produce identical output, so it doubles as the
// local fallback when no remote generation service is configured.
package synth

import (
	"fmt"
	"html"
	"strings"

	"github.com/charitytools/bidcraft/internal/funder"
	"github.com/charitytools/bidcraft/internal/model"
)

// Input carries everything the synthesizer needs. Answers take precedence
// over detected facts; NotSure suppresses a section's answer branch in
// favour of a bracketed placeholder.
type Input struct {
	Answers  model.Answers
	NotSure  model.NotSure
	Detected model.Facts
	Profile  funder.Profile
	Mode     model.Mode
	RawInput string
}

// Result is the rendered document and its parallel alignment notes, both
// as HTML fragments with all interpolated values escaped.
type Result struct {
	Document  string `json:"document"`
	Alignment string `json:"alignment"`
}

// doc is the resolved rendering context shared by the section builders.
type doc struct {
	in             Input
	amount         string
	duration       string
	beneficiaries  string
	reach          string
	evidence       string
	success        string
	sustainability string
	isOneOff       bool
}

// Defaults substituted for unanswered required facts.
const (
	defaultAmount        = "the requested amount"
	defaultDuration      = "the proposed period"
	defaultBeneficiaries = "our target beneficiaries"
)

// rawInputEchoLimit caps how much of the user's draft is echoed back into
// the Our Project section in draft mode.
const rawInputEchoLimit = 500

// Build renders the seven document sections in fixed order and the
// alignment notes list.
func Build(in Input) Result {
	d := &doc{
		in:             in,
		amount:         answerOr(in.Answers, model.FieldAmount, defaultAmount),
		duration:       answerOr(in.Answers, model.FieldDuration, defaultDuration),
		beneficiaries:  answerOr(in.Answers, model.FieldBeneficiaries, defaultBeneficiaries),
		reach:          in.Answers[model.FieldReach],
		evidence:       in.Answers[model.FieldEvidence],
		success:        in.Answers[model.FieldSuccess],
		sustainability: in.Answers[model.FieldSustainability],
		isOneOff:       in.Answers[model.FieldFundingType] == "One-off project",
	}

	var b strings.Builder
	b.WriteString(d.intro())
	b.WriteString(d.need())
	b.WriteString(d.project())
	b.WriteString(d.outcomes())
	b.WriteString(d.sustainabilitySection())
	b.WriteString(d.budget())
	b.WriteString(d.closing())

	return Result{
		Document:  b.String(),
		Alignment: d.alignment(),
	}
}

func answerOr(a model.Answers, id, fallback string) string {
	if v := a[id]; v != "" {
		return v
	}
	return fallback
}

// esc escapes a value for safe embedding in the HTML document.
func esc(s string) string {
	return html.EscapeString(s)
}

// deliveryNoun is "project" or "programme" depending on the funding type.
func (d *doc) deliveryNoun() string {
	if d.isOneOff {
		return "project"
	}
	return "programme"
}

func (d *doc) intro() string {
	fi := d.in.Profile
	var b strings.Builder
	b.WriteString("<h4>Introduction</h4>")
	if d.in.Mode == model.ModeDraft {
		span := "ongoing work over " + esc(d.duration)
		if d.isOneOff {
			span = "a " + esc(d.duration) + " project"
		}
		fmt.Fprintf(&b, "<p>We are writing to %s to request funding of %s for %s that directly supports %s. This application builds on our strong track record of delivering meaningful impact for %s, and has been informed by the people and communities who stand to benefit most.</p>",
			esc(fi.Name), esc(d.amount), span, esc(fi.Focus), esc(d.beneficiaries))
	} else {
		span := "an ongoing programme over " + esc(d.duration)
		if d.isOneOff {
			span = "a focused " + esc(d.duration) + " project"
		}
		fmt.Fprintf(&b, "<p>We are seeking %s from %s to deliver %s that will make a tangible difference to %s. Our work directly aligns with your commitment to %s, and this proposal has been shaped by the needs and voices of those we serve.</p>",
			esc(d.amount), esc(fi.Name), span, esc(d.beneficiaries), esc(fi.Focus))
	}
	return b.String()
}

func (d *doc) need() string {
	var b strings.Builder
	b.WriteString("<h4>The Need</h4>")
	switch {
	case d.evidence != "":
		fmt.Fprintf(&b, "<p>There is clear and compelling evidence for this work. %s</p>", esc(d.evidence))
		fmt.Fprintf(&b, "<p>%s face significant challenges that require dedicated, well-resourced intervention. ", esc(d.beneficiaries))
		if d.reach != "" {
			fmt.Fprintf(&b, "Our %s will directly reach %s, addressing needs that are currently unmet in our area.", d.deliveryNoun(), esc(d.reach))
		}
		b.WriteString("</p>")
	case d.in.NotSure[model.FieldEvidence]:
		b.WriteString("<p><em>[Evidence of need to be added — consider including local statistics, needs assessment data, or consultation findings that demonstrate why this work is necessary.]</em></p>")
	default:
		fmt.Fprintf(&b, "<p>The need for this work is evident in our community. %s face persistent challenges that require dedicated support. ", esc(d.beneficiaries))
		if d.reach != "" {
			fmt.Fprintf(&b, "Our %s will directly reach %s, ", d.deliveryNoun(), esc(d.reach))
		}
		b.WriteString("and we have seen first-hand the impact that targeted intervention can have.</p>")
		b.WriteString("<p><em>[Strengthen this section by adding specific local or national statistics that evidence the need. Include sources and dates for credibility.]</em></p>")
	}
	return b.String()
}

func (d *doc) project() string {
	fi := d.in.Profile
	types := d.in.Detected.ProjectTypes
	var b strings.Builder
	if d.isOneOff {
		b.WriteString("<h4>Our Project</h4>")
	} else {
		b.WriteString("<h4>Our Programme</h4>")
	}
	if d.in.Mode == model.ModeDraft {
		fmt.Fprintf(&b, "<p>Building on the detail in our full proposal, this %s will deliver structured, outcomes-focused activities for %s over %s. ",
			d.deliveryNoun(), esc(d.beneficiaries), esc(d.duration))
		if len(types) > 0 {
			fmt.Fprintf(&b, "Our approach includes %s, ", esc(strings.ToLower(strings.Join(types, ", "))))
		}
		b.WriteString("designed to create lasting positive change.</p>")
		snippet := d.in.RawInput
		if runes := []rune(snippet); len(runes) > rawInputEchoLimit {
			snippet = string(runes[:rawInputEchoLimit]) + "..."
		}
		if snippet != "" {
			fmt.Fprintf(&b, "<blockquote>%s</blockquote>", esc(snippet))
		}
	} else {
		b.WriteString("<p>")
		if len(types) > 0 {
			fmt.Fprintf(&b, "Our %s will focus on %s, ", d.deliveryNoun(), esc(strings.ToLower(strings.Join(types, ", "))))
		} else {
			fmt.Fprintf(&b, "Our %s will provide ", d.deliveryNoun())
		}
		fmt.Fprintf(&b, "delivering structured, evidence-informed support for %s over %s. ", esc(d.beneficiaries), esc(d.duration))
		if d.reach != "" {
			fmt.Fprintf(&b, "We aim to reach %s through this work. ", esc(d.reach))
		}
		fmt.Fprintf(&b, "Every element of our delivery has been designed with %s's priorities in mind, particularly around %s and %s.</p>",
			esc(fi.Name), esc(strings.ToLower(valueAt(fi, 0))), esc(strings.ToLower(valueAt(fi, 1))))
	}
	return b.String()
}

func (d *doc) outcomes() string {
	var b strings.Builder
	b.WriteString("<h4>Outcomes and Impact</h4>")
	switch {
	case d.success != "":
		b.WriteString("<p>We have identified clear, measurable outcomes for this work:</p>")
		fmt.Fprintf(&b, "<p>%s</p>", esc(d.success))
		b.WriteString("<p>We will use a combination of pre- and post-intervention surveys, case studies, and regular monitoring to track progress against these outcomes. Our evaluation approach will capture both quantitative data and qualitative stories of change.</p>")
	case d.in.NotSure[model.FieldSuccess]:
		b.WriteString("<p><em>[Outcomes and success measures to be defined — funders want specific, measurable outcomes. Consider what will change for your beneficiaries and how you will evidence that change.]</em></p>")
	default:
		fmt.Fprintf(&b, "<p>Our %s will deliver measurable outcomes for %s. We will track impact through regular monitoring and evaluation, using a mix of quantitative measures and qualitative case studies to demonstrate the difference our work makes.</p>",
			d.deliveryNoun(), esc(d.beneficiaries))
		b.WriteString(`<p><em>[Add specific, measurable outcomes here. For example: "80% of participants will report improved confidence" or "50 people will gain accredited qualifications."]</em></p>`)
	}
	return b.String()
}

func (d *doc) sustainabilitySection() string {
	var b strings.Builder
	b.WriteString("<h4>Sustainability</h4>")
	switch {
	case d.sustainability != "":
		fmt.Fprintf(&b, "<p>%s</p>", esc(d.sustainability))
		b.WriteString("<p>We are committed to ensuring that the impact of this work extends well beyond the funding period, and have developed a clear plan for sustaining both the activities and the outcomes achieved.</p>")
	case d.in.NotSure[model.FieldSustainability]:
		b.WriteString("<p><em>[Sustainability plan to be developed — funders will want to know what happens when the funding ends. Consider how you will continue the work through other funding, earned income, volunteering, or by embedding it in existing services.]</em></p>")
	default:
		b.WriteString("<p>We have a clear plan for sustaining the impact of this work beyond the funding period. ")
		if d.isOneOff {
			b.WriteString("While this is a time-limited project, we will ensure that the learning, resources, and relationships developed are embedded in our ongoing work. We will also actively explore additional funding to continue successful elements.")
		} else {
			b.WriteString("We are developing diverse income streams to reduce reliance on any single funder, including exploring earned income opportunities, volunteer capacity, and partnership delivery models.")
		}
		b.WriteString("</p>")
	}
	return b.String()
}

func (d *doc) budget() string {
	var b strings.Builder
	b.WriteString("<h4>Budget Summary</h4>")
	fmt.Fprintf(&b, "<p>We are requesting %s ", esc(d.amount))
	if d.duration != defaultDuration {
		fmt.Fprintf(&b, "over %s ", esc(d.duration))
	}
	fmt.Fprintf(&b, "to deliver this %s. ", d.deliveryNoun())
	b.WriteString("This represents excellent value for money")
	if d.reach != "" {
		b.WriteString(", with a per-beneficiary cost that reflects the depth and quality of our approach")
	}
	b.WriteString(". A detailed budget breakdown is available on request.</p>")
	return b.String()
}

func (d *doc) closing() string {
	fi := d.in.Profile
	var b strings.Builder
	b.WriteString("<h4>Closing</h4>")
	fmt.Fprintf(&b, "<p>We believe this %s strongly aligns with %s's commitment to %s. We would welcome the opportunity to discuss this proposal further and are happy to provide any additional information required.</p>",
		d.deliveryNoun(), esc(fi.Name), esc(fi.Focus))
	b.WriteString("<p>Thank you for considering our application. We look forward to hearing from you.</p>")
	return b.String()
}

// alignment builds the fixed 4-5 item alignment notes list: language tip,
// priority match, evidence note, outcomes note (only when outcomes are
// present), and the funder's tip verbatim.
func (d *doc) alignment() string {
	fi := d.in.Profile
	var b strings.Builder
	b.WriteString("<ul>")

	escaped := make([]string, len(fi.Language))
	for i, l := range fi.Language {
		escaped[i] = esc(l)
	}
	fmt.Fprintf(&b, "<li><strong>Language alignment:</strong> Your bid mirrors %s's terminology. Key phrases to use: <em>%s</em>.</li>",
		esc(fi.Name), strings.Join(escaped, ", "))

	fmt.Fprintf(&b, "<li><strong>Priority match:</strong> Your focus on %s aligns with their priority of <em>%s</em>.</li>",
		esc(d.beneficiaries), esc(strings.ToLower(valueAt(fi, 0))))

	if d.in.Detected.HasEvidence || d.evidence != "" {
		b.WriteString("<li><strong>Evidence base:</strong> You've included evidence of need, which significantly strengthens your application.</li>")
	} else {
		b.WriteString("<li><strong>Evidence gap:</strong> Adding local or national statistics would strengthen your case. Include sources and dates.</li>")
	}

	if d.in.Detected.HasOutcomes || d.success != "" {
		b.WriteString("<li><strong>Outcomes:</strong> You've outlined what success looks like. Ensure these are specific and measurable.</li>")
	}

	fmt.Fprintf(&b, "<li><strong>Funder insight:</strong> %s</li>", esc(fi.Tip))
	b.WriteString("</ul>")
	return b.String()
}

// valueAt returns the funder value at index i, or "" when the profile
// carries fewer values. Built-in profiles always carry five.
func valueAt(p funder.Profile, i int) string {
	if i < len(p.Values) {
		return p.Values[i]
	}
	return ""
}
