// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinShapes(t *testing.T) {
	tests := []struct {
		name       string
		cat        *Catalogue
		categories []string
		maxScore   int
	}{
		{
			name: "personalization",
			cat:  Personalization(),
			categories: []string{
				UserIdentification, ContentRecommendation, UserTracking,
				GeoLocalization, TechnicalImplementation, CartTransaction,
			},
			maxScore: 30,
		},
		{
			name:       "tracking",
			cat:        Tracking(),
			categories: []string{AnalyticsPlatforms, CustomInstrumentation},
			maxScore:   12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cat.Name())
			assert.Equal(t, tt.categories, tt.cat.CategoryNames())
			assert.Equal(t, tt.maxScore, tt.cat.MaxScore())

			sum := 0
			for _, name := range tt.cat.CategoryNames() {
				sum += tt.cat.CategoryMax(name)
			}
			assert.Equal(t, tt.maxScore, sum)
		})
	}
}

func TestPersonalizationHasFiveSubcategoriesEach(t *testing.T) {
	for _, cat := range Personalization().Categories() {
		assert.Len(t, cat.Subcategories, 5, cat.Name)
		assert.NotEmpty(t, cat.Label, cat.Name)
	}
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	cat, ok := Tracking().Category(AnalyticsPlatforms)
	require.True(t, ok)

	ga := cat.Subcategories[0]
	require.Equal(t, "google_analytics", ga.Name)

	got, ok := ga.Patterns[0].Search("https://WWW.GOOGLE-ANALYTICS.COM/Analytics.js")
	require.True(t, ok)
	assert.Equal(t, "GOOGLE-ANALYTICS.COM/Analytics.js", got)
}

func TestUnicodeGreetingMatches(t *testing.T) {
	cat, ok := Personalization().Category(UserIdentification)
	require.True(t, ok)

	greeting := cat.Subcategories[0].Patterns[1]
	got, ok := greeting.Search("你好, 小明")
	require.True(t, ok)
	assert.Equal(t, "你好, 小明", got)
}

func TestFindAllReturnsWholeMatches(t *testing.T) {
	c := MustBuild(Definition{
		Name: "t",
		Categories: []CategoryDef{{
			Name:          "c",
			Subcategories: []SubcategoryDef{{Name: "s", Patterns: []string{`ua-[0-9]+-[0-9]+`}}},
		}},
	})
	p := c.Categories()[0].Subcategories[0].Patterns[0]
	assert.Equal(t, []string{"UA-1-2", "ua-33-4"}, p.FindAll("x UA-1-2 y ua-33-4"))
	assert.False(t, p.Matches("nothing here"))
}

func TestBuildRejectsInvalidDefinitions(t *testing.T) {
	sub := []SubcategoryDef{{Name: "s", Patterns: []string{"a"}}}
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "no categories", def: Definition{Name: "x"}},
		{name: "unnamed category", def: Definition{Categories: []CategoryDef{{Subcategories: sub}}}},
		{name: "duplicate category", def: Definition{Categories: []CategoryDef{
			{Name: "a", Subcategories: sub}, {Name: "a", Subcategories: sub},
		}}},
		{name: "no subcategories", def: Definition{Categories: []CategoryDef{{Name: "a"}}}},
		{name: "duplicate subcategory", def: Definition{Categories: []CategoryDef{
			{Name: "a", Subcategories: append(sub, sub...)},
		}}},
		{name: "no patterns", def: Definition{Categories: []CategoryDef{
			{Name: "a", Subcategories: []SubcategoryDef{{Name: "s"}}},
		}}},
		{name: "bad regexp", def: Definition{Categories: []CategoryDef{
			{Name: "a", Subcategories: []SubcategoryDef{{Name: "s", Patterns: []string{"(unclosed"}}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.def)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestYAMLRoundTripPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Personalization().WriteYAML(&buf))

	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Personalization().Definition(), loaded.Definition())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\ncategories:\n  - name: c\n    subcategories:\n      - name: s\n        patterns: ['[']\n"), 0o644))
	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tracking().WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"name": "tracking"`)
	assert.Contains(t, buf.String(), `"google_analytics"`)
}

func TestByName(t *testing.T) {
	c, err := ByName("tracking")
	require.NoError(t, err)
	assert.Same(t, Tracking(), c)

	_, err = ByName("other")
	assert.Error(t, err)
}
