// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"

	"github.com/pdiddy/sitescope/internal/catalogue"
	"github.com/pdiddy/sitescope/internal/extract"
	"github.com/pdiddy/sitescope/pkg/types"
)

// MarkupSignals is the category the tracking probes score under.
const MarkupSignals = "markup_signals"

// TrackingProbes returns the structural tracking probes. Patterns from cat
// are reused to recognise analytics iframes and inline handlers.
func TrackingProbes(cat *catalogue.Catalogue) []Probe {
	return []Probe{
		attributeProbe{},
		metaProbe{},
		pixelProbe{},
		iframeProbe{cat: cat},
		jsonLDProbe{},
		dataLayerProbe{},
		handlerProbe{cat: cat},
	}
}

// trackingAttributes are attribute names that mark instrumented elements.
var trackingAttributes = []string{
	"data-track", "data-analytics", "data-event", "data-ga", "data-gtm",
	"data-click", "data-impression", "data-layer", "data-tracking",
	"ga-event", "gtm-event", "track-id", "track-type", "track-name",
	"track-category", "track-action", "track-label", "track-value",
}

type attributeProbe struct{}

func (attributeProbe) Name() string { return "tracking_attribute" }

func (attributeProbe) Probe(doc *extract.Document) []types.Evidence {
	q := doc.Query()
	var out []types.Evidence
	for _, name := range trackingAttributes {
		q.Find("[" + name + "]").Each(func(_ int, sel *goquery.Selection) {
			val, _ := sel.Attr(name)
			out = append(out, types.Evidence{
				Source:    types.SourceTrackingAttribute,
				Element:   goquery.NodeName(sel),
				Attribute: name,
				Value:     val,
			})
		})
	}
	return out
}

var metaKeywords = []string{"google", "facebook", "fb", "twitter", "analytics", "verification", "track", "pixel"}

type metaProbe struct{}

func (metaProbe) Name() string { return "meta_tag_tracking" }

func (metaProbe) Probe(doc *extract.Document) []types.Evidence {
	var out []types.Evidence
	doc.Query().Find("meta[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		if !containsAny(strings.ToLower(name), metaKeywords) {
			return
		}
		content, _ := sel.Attr("content")
		out = append(out, types.Evidence{
			Source:    types.SourceMetaTag,
			Element:   "meta",
			Attribute: "name",
			Value:     name + "=" + content,
		})
	})
	return out
}

type pixelProbe struct{}

func (pixelProbe) Name() string { return "tracking_pixel" }

func (pixelProbe) Probe(doc *extract.Document) []types.Evidence {
	q := doc.Query()
	var out []types.Evidence
	for _, sel := range []string{`img[width="1"][height="1"][src]`, `img[width="0"][height="0"][src]`} {
		q.Find(sel).Each(func(_ int, img *goquery.Selection) {
			src, _ := img.Attr("src")
			out = append(out, types.Evidence{
				Source:    types.SourceImagePixel,
				Element:   "img",
				Attribute: "src",
				Value:     src,
			})
		})
	}
	return out
}

type iframeProbe struct {
	cat *catalogue.Catalogue
}

func (iframeProbe) Name() string { return "tracking_iframe" }

func (p iframeProbe) Probe(doc *extract.Document) []types.Evidence {
	var out []types.Evidence
	doc.Query().Find("iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		for _, pat := range matchingPatterns(p.cat, src) {
			out = append(out, types.Evidence{
				Source:    types.SourceIframe,
				Element:   "iframe",
				Attribute: "src",
				Pattern:   pat,
				Value:     src,
			})
		}
	})
	return out
}

var jsonLDKeys = []string{"tracking", "analytics", "event", "gtm", "ga"}

type jsonLDProbe struct{}

func (jsonLDProbe) Name() string { return "json_ld_tracking" }

func (jsonLDProbe) Probe(doc *extract.Document) []types.Evidence {
	var out []types.Evidence
	for _, sc := range doc.Scripts {
		if sc.Kind != extract.ScriptInline || !strings.EqualFold(strings.TrimSpace(sc.Type), "application/ld+json") {
			continue
		}
		obj, ok := decodeObject(sc.Content)
		if !ok || !hasAnyKey(obj, jsonLDKeys) {
			continue
		}
		compact, err := json.Marshal(obj)
		if err != nil {
			continue
		}
		out = append(out, types.Evidence{
			Source:  types.SourceJSONLD,
			Element: "script",
			Value:   string(compact),
		})
	}
	return out
}

// decodeObject parses a JSON object, repairing it first if it is malformed.
func decodeObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return obj, obj != nil
	}
	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, false
	}
	return obj, obj != nil
}

// dataLayerPush captures the object literal passed to dataLayer.push.
var dataLayerPush = regexp.MustCompile(`dataLayer\.push\(\s*(\{[^}]+\})`)

type dataLayerProbe struct{}

func (dataLayerProbe) Name() string { return "datalayer_push" }

func (dataLayerProbe) Probe(doc *extract.Document) []types.Evidence {
	var out []types.Evidence
	for _, sc := range doc.Scripts {
		if sc.Kind != extract.ScriptInline || !strings.Contains(sc.Content, "dataLayer") {
			continue
		}
		for _, m := range dataLayerPush.FindAllStringSubmatch(sc.Content, -1) {
			out = append(out, types.Evidence{
				Source:  types.SourceDataLayerPush,
				Element: "script",
				Pattern: dataLayerPush.String(),
				Value:   m[1],
			})
		}
	}
	return out
}

var (
	inlineEvents    = []string{"onclick", "onchange", "onsubmit", "onload", "onunload", "onmouseover", "onmouseout", "onfocus", "onblur"}
	handlerKeywords = []string{"track", "event", "analytics", "log", "send", "push"}
)

type handlerProbe struct {
	cat *catalogue.Catalogue
}

func (handlerProbe) Name() string { return "inline_event_handler" }

func (p handlerProbe) Probe(doc *extract.Document) []types.Evidence {
	q := doc.Query()
	var out []types.Evidence
	for _, event := range inlineEvents {
		q.Find("[" + event + "]").Each(func(_ int, sel *goquery.Selection) {
			val, _ := sel.Attr(event)
			ev := types.Evidence{
				Source:    types.SourceInlineHandler,
				Element:   goquery.NodeName(sel),
				Attribute: event,
				Value:     val,
			}
			pats := matchingPatterns(p.cat, val)
			for _, pat := range pats {
				ev.Pattern = pat
				out = append(out, ev)
			}
			if len(pats) == 0 && containsAny(strings.ToLower(val), handlerKeywords) {
				out = append(out, ev)
			}
		})
	}
	return out
}

// matchingPatterns returns the source of every catalogue pattern matching s.
func matchingPatterns(cat *catalogue.Catalogue, s string) []string {
	var out []string
	for _, c := range cat.Categories() {
		for _, sub := range c.Subcategories {
			for _, p := range sub.Patterns {
				if p.Matches(s) {
					out = append(out, p.Source)
				}
			}
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasAnyKey(obj map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}
