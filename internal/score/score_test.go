// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitescope/internal/catalogue"
	"github.com/pdiddy/sitescope/internal/extract"
	"github.com/pdiddy/sitescope/pkg/types"
)

func parse(t *testing.T, page string) *extract.Document {
	t.Helper()
	doc, err := extract.ParseString(page)
	require.NoError(t, err)
	return doc
}

func feature(t *testing.T, r types.DocumentResult, subcategory string) types.Feature {
	t.Helper()
	for _, f := range r.Features {
		if f.Subcategory == subcategory {
			return f
		}
	}
	t.Fatalf("no feature for subcategory %q in %+v", subcategory, r.Features)
	return types.Feature{}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "abc", want: "abc"},
		{name: "exactly limit", in: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "one over", in: strings.Repeat("a", 101), want: strings.Repeat("a", 100) + "..."},
		{name: "runes not bytes", in: strings.Repeat("你", 100), want: strings.Repeat("你", 100)},
		{name: "runes over", in: strings.Repeat("你", 120), want: strings.Repeat("你", 100) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in))
		})
	}
}

func TestExternalAnalyticsScript(t *testing.T) {
	doc := parse(t, `<html><head><script src="https://www.google-analytics.com/analytics.js"></script></head><body></body></html>`)
	r := New(catalogue.Personalization()).Score("ga", doc)

	f := feature(t, r, "tracking_scripts")
	assert.Equal(t, catalogue.UserTracking, f.Category)
	assert.Equal(t, types.SourceScriptExternal, f.Evidence.Source)
	assert.Equal(t, "https://www.google-analytics.com/analytics.js", f.Evidence.Value)
	assert.Equal(t, 1, r.CategoryScores[catalogue.UserTracking])
}

func TestNoMatchesScoresZero(t *testing.T) {
	doc := parse(t, `<html><body><p>Lorem ipsum dolor sit amet.</p></body></html>`)
	s := New(catalogue.Personalization())
	r := s.Score("plain", doc)

	assert.Equal(t, 0, r.TotalScore)
	assert.Empty(t, r.Features)
	assert.NotNil(t, r.Features)
	assert.Equal(t, 30, r.MaxScore)
	assert.Len(t, r.CategoryScores, 6)
	for _, v := range r.CategoryScores {
		assert.Zero(t, v)
	}
}

func TestScriptEvidenceWinsOverEarlierText(t *testing.T) {
	doc := parse(t, `<html><body>
<p>Powered by hotjar.com</p>
<script src="https://static.hotjar.com/c/hotjar.js"></script>
</body></html>`)
	r := New(catalogue.Personalization()).Score("order", doc)

	f := feature(t, r, "tracking_scripts")
	assert.Equal(t, types.SourceScriptExternal, f.Evidence.Source)
	// The src URL, the paragraph, and the src attribute all match.
	assert.Equal(t, 3, f.Hits)

	hm := feature(t, r, "heatmap_tracking")
	assert.Equal(t, types.SourceScriptExternal, hm.Evidence.Source)
}

func TestSubcategoryScoreIsBinary(t *testing.T) {
	doc := parse(t, `<html><body>
<p>Recently viewed</p><p>recently viewed</p><div id="recently-viewed">RECENTLY VIEWED</div>
</body></html>`)
	r := New(catalogue.Personalization()).Score("binary", doc)

	f := feature(t, r, "recently_viewed")
	assert.Equal(t, 1, r.CategoryScores[catalogue.ContentRecommendation])
	assert.Equal(t, 3, f.Hits)
	assert.Equal(t, types.SourceElementText, f.Evidence.Source)
	assert.Equal(t, "p", f.Evidence.Element)
	assert.Equal(t, "Recently viewed", f.Evidence.Value)
}

func TestTextStopsAtFirstPatternPerSubcategory(t *testing.T) {
	doc := parse(t, `<html><body><p>Welcome back and welcome home</p></body></html>`)
	r := New(catalogue.Personalization()).Score("greeting", doc)

	f := feature(t, r, "personalized_greeting")
	assert.Equal(t, 1, f.Hits)
	assert.Equal(t, "welcome back", f.Evidence.Pattern)
}

func TestInlineScriptRecordsEveryMatch(t *testing.T) {
	doc := parse(t, `<html><head><script>var a = "UA-1-1"; var b = "UA-2-2";</script></head></html>`)
	r := New(catalogue.Tracking()).Score("inline", doc)

	f := feature(t, r, "google_analytics")
	assert.Equal(t, types.SourceScriptInline, f.Evidence.Source)
	assert.Equal(t, "UA-1-1", f.Evidence.Value)
	// Two script matches plus one text match of the same body.
	assert.Equal(t, 3, f.Hits)
	assert.Equal(t, f.Hits, r.TotalHits)
}

func TestAttributeEvidence(t *testing.T) {
	doc := parse(t, `<html><body><div data-banner="Accept cookies"></div></body></html>`)
	r := New(catalogue.Personalization()).Score("attr", doc)

	f := feature(t, r, "cookie_consent")
	assert.Equal(t, types.SourceElementAttribute, f.Evidence.Source)
	assert.Equal(t, "div", f.Evidence.Element)
	assert.Equal(t, "data-banner", f.Evidence.Attribute)
	assert.Equal(t, "accept cookies", f.Evidence.Pattern)
}

func TestScoreInvariantsAndIdempotence(t *testing.T) {
	pages := []string{
		`<p>nothing</p>`,
		`<script src="https://www.googletagmanager.com/gtm.js?id=GTM-ABC"></script><p>Welcome, Bob. Your orders.</p>`,
		`<div id="cart-reminder">Buy now</div><script>localStorage.setItem("x", 1); fbq('track');</script>`,
	}
	for _, cat := range []*catalogue.Catalogue{catalogue.Personalization(), catalogue.Tracking()} {
		s := New(cat, WithProbes(MarkupSignals, TrackingProbes(catalogue.Tracking())...))
		for _, page := range pages {
			doc := parse(t, page)
			r := s.Score("p", doc)

			sum := 0
			for _, name := range r.CategoryOrder {
				v := r.CategoryScores[name]
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, s.CategoryMax(name))
				sum += v
			}
			assert.Equal(t, sum, r.TotalScore)
			assert.Equal(t, len(r.Features), r.TotalScore)
			assert.LessOrEqual(t, r.TotalScore, r.MaxScore)
			assert.Equal(t, s.MaxScore(), r.MaxScore)

			assert.Equal(t, r, s.Score("p", doc))
		}
	}
}

func TestTruncatedEvidence(t *testing.T) {
	long := "Recently viewed " + strings.Repeat("x", 200)
	doc := parse(t, `<p>`+long+`</p>`)
	r := New(catalogue.Personalization()).Score("long", doc)

	f := feature(t, r, "recently_viewed")
	assert.Equal(t, long[:100]+"...", f.Evidence.Value)
}

func TestEmpty(t *testing.T) {
	s := New(catalogue.Tracking(), WithProbes(MarkupSignals, TrackingProbes(catalogue.Tracking())...))
	r := s.Empty("broken")

	assert.Equal(t, "broken", r.DocumentID)
	assert.Equal(t, 19, r.MaxScore)
	assert.Equal(t, []string{catalogue.AnalyticsPlatforms, catalogue.CustomInstrumentation, MarkupSignals}, r.CategoryOrder)
	assert.Empty(t, r.Features)
	assert.Zero(t, r.TotalScore)
}
