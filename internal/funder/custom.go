package funder

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CustomProfile is one entry in a user-supplied funder knowledge file.
// Keywords drive the same case-insensitive substring matching as the
// built-in rules.
type CustomProfile struct {
	Keywords []string `yaml:"keywords"`
	Profile  `yaml:",inline"`
}

type profileFile struct {
	Funders []CustomProfile `yaml:"funders"`
}

// LoadFile reads custom funder profiles from a YAML file and registers them
// ahead of the built-in rules, so a custom keyword hit wins. File order is
// preserved.
func (r *Resolver) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "funder: read profile file")
	}

	var pf profileFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return eris.Wrap(err, "funder: parse profile file")
	}

	var custom []rule
	for i, cp := range pf.Funders {
		if len(cp.Keywords) == 0 {
			return eris.Errorf("funder: profile %d (%q) has no keywords", i, cp.Name)
		}
		if len(cp.Values) < 2 {
			return eris.Errorf("funder: profile %d (%q) needs at least two values", i, cp.Name)
		}
		p := cp.Profile
		custom = append(custom, rule{
			display:  p.Name,
			keywords: cp.Keywords,
			build: func(name string) Profile {
				out := p
				out.Name = name
				return out
			},
		})
	}

	r.rules = append(custom, r.rules...)
	zap.L().Info("funder: loaded custom profiles",
		zap.String("path", path),
		zap.Int("profiles", len(custom)),
	)
	return nil
}
