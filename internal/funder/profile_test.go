package funder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownFunders(t *testing.T) {
	tests := []struct {
		name      string
		funder    string
		wantFocus string
	}{
		{"lottery", "National Lottery Community Fund", "community-led change, reaching underserved groups, and building stronger communities"},
		{"lottery_any_case", "THE NATIONAL LOTTERY", "community-led change, reaching underserved groups, and building stronger communities"},
		{"comic_relief", "Comic Relief UK", "tackling poverty and social injustice, with a strong emphasis on lived experience and systemic change"},
		{"lloyds", "Lloyds Bank Foundation", "helping people overcome complex social issues through long-term, flexible partnerships"},
		{"lloyd_partial", "Lloyd's Charity Arm", "helping people overcome complex social issues through long-term, flexible partnerships"},
		{"heritage", "Heritage Fund", "involving people and communities in heritage, broadening access, and building skills for heritage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.funder)
			assert.Equal(t, tt.funder, p.Name)
			assert.Equal(t, tt.wantFocus, p.Focus)
			assert.GreaterOrEqual(t, len(p.Values), 2)
			assert.NotEmpty(t, p.Tip)
			assert.NotEmpty(t, p.Language)
		})
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	// "lottery" is checked before "heritage", so the combined name hits
	// the lottery rule first.
	p := Resolve("National Lottery Heritage Fund")
	assert.Contains(t, p.Focus, "community-led change")
}

func TestResolve_GenericFallback(t *testing.T) {
	p := Resolve("The Acme Benevolent Trust")
	assert.Equal(t, "The Acme Benevolent Trust", p.Name)
	assert.Contains(t, p.Tip, "The Acme Benevolent Trust")
	assert.Equal(t, "community impact, sustainability, and evidence-based approaches to social change", p.Focus)
	assert.Len(t, p.Values, 5)
}

func TestResolve_Total(t *testing.T) {
	// Every name resolves; no error path exists.
	for _, name := range []string{"", "  ", "???", "a"} {
		p := Resolve(name)
		assert.NotEmpty(t, p.Focus)
		assert.NotEmpty(t, p.Values)
	}
}

func TestResolver_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
funders:
  - name: Borough Trust
    keywords: [borough trust, borough]
    focus: neighbourhood renewal and resident-led projects
    values:
      - Resident leadership
      - Local partnerships
    tip: Keep it local and specific.
    language: [resident-led, neighbourhood]
`), 0o644))

	r := NewResolver()
	require.NoError(t, r.LoadFile(path))

	p := r.Resolve("The Borough Trust")
	assert.Equal(t, "The Borough Trust", p.Name)
	assert.Equal(t, "neighbourhood renewal and resident-led projects", p.Focus)
	assert.Equal(t, []string{"Resident leadership", "Local partnerships"}, p.Values)

	// Built-ins still resolve after custom rules are prepended.
	assert.Contains(t, r.Resolve("lottery fund").Focus, "community-led change")
}

func TestResolver_LoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	noKeywords := filepath.Join(dir, "nokw.yaml")
	require.NoError(t, os.WriteFile(noKeywords, []byte(`
funders:
  - name: Broken
    focus: something
    values: [One, Two]
    tip: t
`), 0o644))

	tooFewValues := filepath.Join(dir, "vals.yaml")
	require.NoError(t, os.WriteFile(tooFewValues, []byte(`
funders:
  - name: Broken
    keywords: [broken]
    focus: something
    values: [Only one]
    tip: t
`), 0o644))

	r := NewResolver()
	assert.Error(t, r.LoadFile(noKeywords))
	assert.Error(t, r.LoadFile(tooFewValues))
	assert.Error(t, r.LoadFile(filepath.Join(dir, "missing.yaml")))
}

func TestResolver_Profiles(t *testing.T) {
	// Four built-ins plus the generic fallback.
	assert.Len(t, NewResolver().Profiles(), 5)
}
