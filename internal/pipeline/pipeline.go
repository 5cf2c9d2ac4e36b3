// Package pipeline orchestrates the funding-request flow: rule-based
// detection, funder profile resolution, optional remote enrichment,
// answer reconciliation, gap reporting, and document generation.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/charitytools/bidcraft/internal/extract"
	"github.com/charitytools/bidcraft/internal/funder"
	"github.com/charitytools/bidcraft/internal/model"
	"github.com/charitytools/bidcraft/internal/synth"
	"github.com/charitytools/bidcraft/pkg/assist"
)

// Pipeline wires the detection core to the optional assist service. A nil
// assist client means local-only operation: extraction stands alone and
// the built-in synthesizer writes the document.
type Pipeline struct {
	assist  assist.Client
	funders *funder.Resolver
}

// Output is the final artifact set for a session.
type Output struct {
	Document  string   `json:"document"`
	Alignment string   `json:"alignment"`
	Gaps      []string `json:"gaps"`
	Source    string   `json:"source"` // "assist" or "local"
}

// New creates a Pipeline. client may be nil for local-only mode.
func New(client assist.Client, funders *funder.Resolver) *Pipeline {
	return &Pipeline{assist: client, funders: funders}
}

// Analyse detects facts in the session input, resolves the funder profile,
// merges remote analysis when available, and pre-fills answers. On remote
// failure the session is left untouched and the error surfaces to the
// caller; there is no automatic retry.
func (p *Pipeline) Analyse(ctx context.Context, sess *model.Session) error {
	log := zap.L().With(zap.String("funder", sess.FunderName), zap.String("mode", string(sess.Mode)))

	local := extract.Extract(sess.Input)
	profile := p.funders.Resolve(sess.FunderName)

	var remote model.Facts
	if p.assist != nil {
		analysis, err := p.assist.Analyse(ctx, assist.AnalyseRequest{
			FunderName: sess.FunderName,
			UserInput:  sess.Input,
			Mode:       string(sess.Mode),
		})
		if err != nil {
			return eris.Wrap(err, "pipeline: analyse")
		}
		remote = analysisFacts(analysis)
	}

	answers, display := Reconcile(local, remote, sess.Answers, sess.NotSure)
	sess.Detected = display
	sess.Profile = profile
	sess.Answers = answers

	log.Info("pipeline: analysis complete",
		zap.Bool("remote", p.assist != nil),
		zap.Int("prefilled", len(answers)),
	)
	return nil
}

// Generate produces the document, alignment notes, and gap list for a
// session. With an assist client it delegates generation and fails hard on
// any transport, status, or too-short-document error; without one it runs
// the built-in synthesizer.
func (p *Pipeline) Generate(ctx context.Context, sess *model.Session) (*Output, error) {
	gaps := Gaps(sess.Answers, sess.NotSure)

	if p.assist != nil {
		gen, err := p.assist.Generate(ctx, assist.GenerateRequest{
			FunderName: sess.FunderName,
			UserInput:  sess.Input,
			Mode:       string(sess.Mode),
			Answers:    sess.Answers,
			NotSure:    sess.NotSure,
			FunderInfo: funderInfo(sess.Profile),
		})
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: generate")
		}
		return &Output{
			Document:  gen.Document,
			Alignment: gen.Alignment,
			Gaps:      gaps,
			Source:    "assist",
		}, nil
	}

	res := synth.Build(synth.Input{
		Answers:  sess.Answers,
		NotSure:  sess.NotSure,
		Detected: sess.Detected,
		Profile:  sess.Profile,
		Mode:     sess.Mode,
		RawInput: sess.Input,
	})
	return &Output{
		Document:  res.Document,
		Alignment: res.Alignment,
		Gaps:      gaps,
		Source:    "local",
	}, nil
}

// analysisFacts converts the assist payload into the shared facts record.
// Presence flags follow from captured snippets in Facts.Merge.
func analysisFacts(a *assist.Analysis) model.Facts {
	if a == nil {
		return model.Facts{}
	}
	return model.Facts{
		Amount:         a.Amount,
		FundingType:    a.FundingType,
		Duration:       a.Duration,
		Beneficiaries:  a.Beneficiaries,
		Reach:          a.Reach,
		Evidence:       a.Evidence,
		Success:        a.Success,
		Sustainability: a.Sustainability,
		ProjectSummary: a.ProjectSummary,
		ProjectTypes:   a.ProjectTypes,
		Strengths:      a.Strengths,
		Gaps:           a.Gaps,
	}
}

func funderInfo(p funder.Profile) assist.FunderInfo {
	return assist.FunderInfo{
		Name:     p.Name,
		Focus:    p.Focus,
		Values:   p.Values,
		Tip:      p.Tip,
		Language: p.Language,
	}
}
