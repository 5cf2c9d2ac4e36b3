// Package funder maps funder names to fixed knowledge profiles: what the
// funder cares about, the language it uses, and a practical application tip.
package funder

import (
	"fmt"
	"strings"
)

// Profile is the fixed knowledge record for a funder. Values and Language
// are in priority order; the synthesizer uses the first two values
// preferentially. A Profile is immutable once resolved.
type Profile struct {
	Name     string   `json:"name" yaml:"name"`
	Focus    string   `json:"focus" yaml:"focus"`
	Values   []string `json:"values" yaml:"values"`
	Tip      string   `json:"tip" yaml:"tip"`
	Language []string `json:"language" yaml:"language"`
}

// rule pairs a keyword set with a profile builder. Matching is
// case-insensitive substring matching; rules are evaluated in order and the
// first keyword hit wins.
type rule struct {
	display  string
	keywords []string
	build    func(name string) Profile
}

var builtinRules = []rule{
	{
		display:  "National Lottery Community Fund",
		keywords: []string{"lottery", "national lottery"},
		build: func(name string) Profile {
			return Profile{
				Name:  name,
				Focus: "community-led change, reaching underserved groups, and building stronger communities",
				Values: []string{
					"Community voice and ownership",
					"Reaching people most in need",
					"Strengths-based approaches",
					"Partnerships and collaboration",
					"Learning and evaluation",
				},
				Tip:      "The National Lottery Community Fund particularly values applications where the community has been involved in designing the project. Consider adding specific examples of community consultation.",
				Language: []string{"community-led", "strengths-based", "people and places", "co-design"},
			}
		},
	},
	{
		display:  "Comic Relief",
		keywords: []string{"comic relief"},
		build: func(name string) Profile {
			return Profile{
				Name:  name,
				Focus: "tackling poverty and social injustice, with a strong emphasis on lived experience and systemic change",
				Values: []string{
					"Lived experience leadership",
					"Tackling root causes of poverty",
					"Social justice and equity",
					"Power-shifting to communities",
					"Sustainable impact",
				},
				Tip:      "Comic Relief prioritises organisations led by people with lived experience of the issues they address. Highlight any lived experience within your team or governance.",
				Language: []string{"lived experience", "power-shifting", "systemic change", "social justice"},
			}
		},
	},
	{
		display:  "Lloyds Bank Foundation",
		keywords: []string{"lloyds", "lloyd"},
		build: func(name string) Profile {
			return Profile{
				Name:  name,
				Focus: "helping people overcome complex social issues through long-term, flexible partnerships",
				Values: []string{
					"Addressing complex social issues",
					"Unrestricted funding approaches",
					"Organisational development",
					"Long-term partnerships",
					"Reaching those most disadvantaged",
				},
				Tip:      "Lloyds Foundation focuses on small and medium-sized charities. Emphasise your organisation's deep connection to the communities you serve and your track record of impact.",
				Language: []string{"complex social issues", "unrestricted", "flexible", "partnership"},
			}
		},
	},
	{
		display:  "The National Lottery Heritage Fund",
		keywords: []string{"heritage", "lottery heritage"},
		build: func(name string) Profile {
			return Profile{
				Name:  name,
				Focus: "involving people and communities in heritage, broadening access, and building skills for heritage",
				Values: []string{
					"Widening access to heritage",
					"Inclusion and diversity",
					"Building heritage skills",
					"Community engagement",
					"Environmental sustainability",
				},
				Tip:      "Heritage Fund applications score well when they demonstrate genuine community involvement in heritage and clear plans for widening access to underrepresented groups.",
				Language: []string{"heritage", "access", "inclusion", "skills development"},
			}
		},
	},
}

// genericProfile builds the fallback profile for an unrecognised funder.
// The focus and tip interpolate the literal funder name so the output still
// reads as tailored advice.
func genericProfile(name string) Profile {
	return Profile{
		Name:  name,
		Focus: "community impact, sustainability, and evidence-based approaches to social change",
		Values: []string{
			"Demonstrated community need",
			"Clear outcomes and impact measurement",
			"Value for money",
			"Sustainability beyond the funding period",
			"Partnership working",
		},
		Tip:      fmt.Sprintf("Research %s's latest annual report and funding guidelines for their current strategic priorities. Tailoring your language to match their framework significantly strengthens applications.", name),
		Language: []string{"impact", "outcomes", "evidence-based", "sustainability"},
	}
}

// Resolve maps a funder name to its profile. It is pure and total: every
// name resolves to exactly one profile, falling back to a generic profile
// built around the literal name.
func Resolve(name string) Profile {
	return defaultResolver.Resolve(name)
}

var defaultResolver = NewResolver()

// Resolver matches funder names against an ordered rule list. Custom rules
// loaded from a profile file are checked before the built-ins.
type Resolver struct {
	rules []rule
}

// NewResolver returns a Resolver carrying only the built-in funder rules.
func NewResolver() *Resolver {
	return &Resolver{rules: builtinRules}
}

// Resolve maps a funder name to a profile via first-match-wins substring
// matching, falling back to the generic profile.
func (r *Resolver) Resolve(name string) Profile {
	lower := strings.ToLower(name)
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if strings.Contains(lower, kw) {
				return rl.build(name)
			}
		}
	}
	return genericProfile(name)
}

// Profiles returns one representative profile per known rule plus the
// generic fallback, for listing.
func (r *Resolver) Profiles() []Profile {
	out := make([]Profile, 0, len(r.rules)+1)
	for _, rl := range r.rules {
		out = append(out, rl.build(rl.display))
	}
	out = append(out, genericProfile("your funder"))
	return out
}
