// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalogue holds the static pattern tables used to score documents.
// A catalogue is an ordered tree of category → subcategory → patterns. It is
// compiled once with Build and is read-only afterwards, so one value can be
// shared by every analysis in the process.
package catalogue

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPattern reports a pattern that does not compile, or a catalogue
// whose shape breaks the category/subcategory/pattern invariants.
var ErrInvalidPattern = errors.New("invalid catalogue")

// Definition is the uncompiled, serializable form of a catalogue.
type Definition struct {
	Name       string        `json:"name" yaml:"name"`
	Categories []CategoryDef `json:"categories" yaml:"categories"`
}

// CategoryDef declares one category and its subcategories.
type CategoryDef struct {
	Name          string           `json:"name" yaml:"name"`
	Label         string           `json:"label,omitempty" yaml:"label,omitempty"`
	Subcategories []SubcategoryDef `json:"subcategories" yaml:"subcategories"`
}

// SubcategoryDef declares one subcategory and its ordered patterns.
type SubcategoryDef struct {
	Name     string   `json:"name" yaml:"name"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Pattern is a compiled, case-insensitive matcher together with its source text.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// Search returns the leftmost match in s.
func (p Pattern) Search(s string) (string, bool) {
	loc := p.re.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// Matches reports whether the pattern matches anywhere in s.
func (p Pattern) Matches(s string) bool {
	return p.re.MatchString(s)
}

// FindAll returns every non-overlapping match in s.
func (p Pattern) FindAll(s string) []string {
	return p.re.FindAllString(s, -1)
}

// Subcategory is a compiled subcategory.
type Subcategory struct {
	Name     string
	Patterns []Pattern
}

// Category is a compiled category.
type Category struct {
	Name          string
	Label         string
	Subcategories []Subcategory
}

// DisplayName returns the label when set, the name otherwise.
func (c Category) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Catalogue is a compiled pattern table.
type Catalogue struct {
	name       string
	categories []Category
	index      map[string]int
	maxScore   int
}

// Build validates def and compiles every pattern case-insensitively.
// Any failure wraps ErrInvalidPattern.
func Build(def Definition) (*Catalogue, error) {
	if len(def.Categories) == 0 {
		return nil, fmt.Errorf("%w: %q has no categories", ErrInvalidPattern, def.Name)
	}

	c := &Catalogue{
		name:       def.Name,
		categories: make([]Category, 0, len(def.Categories)),
		index:      make(map[string]int, len(def.Categories)),
	}

	for _, cd := range def.Categories {
		if cd.Name == "" {
			return nil, fmt.Errorf("%w: category without a name", ErrInvalidPattern)
		}
		if _, dup := c.index[cd.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidPattern, cd.Name)
		}
		if len(cd.Subcategories) == 0 {
			return nil, fmt.Errorf("%w: category %q has no subcategories", ErrInvalidPattern, cd.Name)
		}

		cat := Category{Name: cd.Name, Label: cd.Label}
		seen := make(map[string]bool, len(cd.Subcategories))
		for _, sd := range cd.Subcategories {
			if sd.Name == "" || seen[sd.Name] {
				return nil, fmt.Errorf("%w: category %q has an empty or duplicate subcategory %q",
					ErrInvalidPattern, cd.Name, sd.Name)
			}
			seen[sd.Name] = true
			if len(sd.Patterns) == 0 {
				return nil, fmt.Errorf("%w: %s/%s has no patterns", ErrInvalidPattern, cd.Name, sd.Name)
			}

			sub := Subcategory{Name: sd.Name, Patterns: make([]Pattern, 0, len(sd.Patterns))}
			for _, src := range sd.Patterns {
				re, err := regexp.Compile("(?i)" + src)
				if err != nil {
					return nil, fmt.Errorf("%w: %s/%s pattern %q: %v", ErrInvalidPattern, cd.Name, sd.Name, src, err)
				}
				sub.Patterns = append(sub.Patterns, Pattern{Source: src, re: re})
			}
			cat.Subcategories = append(cat.Subcategories, sub)
		}

		c.index[cat.Name] = len(c.categories)
		c.categories = append(c.categories, cat)
		c.maxScore += len(cat.Subcategories)
	}

	return c, nil
}

// MustBuild is Build for the built-in tables, which are known to compile.
func MustBuild(def Definition) *Catalogue {
	c, err := Build(def)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the catalogue name.
func (c *Catalogue) Name() string { return c.name }

// Categories returns the categories in declaration order. Callers must not
// modify the returned slice.
func (c *Catalogue) Categories() []Category { return c.categories }

// CategoryNames returns the category names in declaration order.
func (c *Catalogue) CategoryNames() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Category looks up a category by name.
func (c *Catalogue) Category(name string) (Category, bool) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// CategoryMax returns the maximum score of a category, i.e. its number of
// subcategories. Unknown categories score zero.
func (c *Catalogue) CategoryMax(name string) int {
	cat, ok := c.Category(name)
	if !ok {
		return 0
	}
	return len(cat.Subcategories)
}

// MaxScore returns the number of subcategories across all categories.
func (c *Catalogue) MaxScore() int { return c.maxScore }

// Definition returns the uncompiled form of the catalogue.
func (c *Catalogue) Definition() Definition {
	def := Definition{Name: c.name, Categories: make([]CategoryDef, 0, len(c.categories))}
	for _, cat := range c.categories {
		cd := CategoryDef{Name: cat.Name, Label: cat.Label}
		for _, sub := range cat.Subcategories {
			sd := SubcategoryDef{Name: sub.Name, Patterns: make([]string, len(sub.Patterns))}
			for i, p := range sub.Patterns {
				sd.Patterns[i] = p.Source
			}
			cd.Subcategories = append(cd.Subcategories, sd)
		}
		def.Categories = append(def.Categories, cd)
	}
	return def
}
