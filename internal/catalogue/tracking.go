// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

// Tracking category names.
const (
	AnalyticsPlatforms    = "analytics_platforms"
	CustomInstrumentation = "custom_instrumentation"
)

var trackingDef = Definition{
	Name: "tracking",
	Categories: []CategoryDef{
		{
			Name:  AnalyticsPlatforms,
			Label: "Third-party analytics platforms",
			Subcategories: []SubcategoryDef{
				{Name: "google_analytics", Patterns: []string{
					`google-analytics\.com/analytics\.js`,
					`gtag\(.*\)`,
					`ga\(.*\)`,
					`GoogleAnalyticsObject`,
					`google-analytics\.com/ga\.js`,
					`G-[A-Z0-9]{10,}`,
					`UA-[0-9]+-[0-9]+`,
				}},
				{Name: "google_tag_manager", Patterns: []string{
					`googletagmanager\.com/gtm\.js`,
					`dataLayer\.push\(`,
					`GTM-[A-Z0-9]+`,
				}},
				{Name: "facebook_pixel", Patterns: []string{
					`connect\.facebook\.net/en_US/fbevents\.js`,
					`fbq\(`,
					`_fbq`,
					`facebook-jssdk`,
					`facebook\.com/tr\?`,
				}},
				{Name: "baidu_analytics", Patterns: []string{
					`hm\.baidu\.com/hm\.js`,
					`_hmt\.push\(`,
				}},
				{Name: "umeng_analytics", Patterns: []string{
					`cnzz\.com/z_stat\.php`,
					`cnzz\.mmstat\.com`,
				}},
				{Name: "sensors_analytics", Patterns: []string{
					`sensorsdata\.min\.js`,
					`sa\.track\(`,
					`sensors\.track\(`,
				}},
				{Name: "growingio", Patterns: []string{
					`assets\.giocdn\.com/gio`,
					`gio\(`,
					`growingio\.com`,
				}},
				{Name: "zhuge_io", Patterns: []string{
					`zgsdk\.zhugeio\.com`,
					`zhuge\.track`,
				}},
				{Name: "tencent_analytics", Patterns: []string{
					`tajs\.qq\.com`,
					`pingjs\.qq\.com`,
				}},
				{Name: "other_analytics", Patterns: []string{
					`hotjar\.com`,
					`clarity\.ms`,
					`matomo\.js`,
					`piwik\.js`,
					`adobe\.com/analytics`,
					`omniture`,
					`mixpanel`,
					`heap\.js`,
					`fullstory\.com`,
					`segment\.com`,
					`amplitude\.com`,
				}},
			},
		},
		{
			Name:  CustomInstrumentation,
			Label: "Custom event instrumentation",
			Subcategories: []SubcategoryDef{
				{Name: "custom_events", Patterns: []string{
					`data-track`,
					`data-analytics`,
					`data-event`,
					`onclick="track`,
					`trackEvent\(`,
					`trackPageview\(`,
					`logEvent\(`,
					`sendEvent\(`,
					`pushEvent\(`,
					`trackAction\(`,
				}},
				{Name: "event_listeners", Patterns: []string{
					`addEventListener\(['"]click['"]`,
					`addEventListener\(['"]submit['"]`,
					`addEventListener\(['"]change['"]`,
				}},
			},
		},
	},
}

var tracking = MustBuild(trackingDef)

// Tracking returns the built-in tracking catalogue.
func Tracking() *Catalogue { return tracking }
