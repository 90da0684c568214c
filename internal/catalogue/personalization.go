// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

// Personalization category names.
const (
	UserIdentification      = "user_identification"
	ContentRecommendation   = "content_recommendation"
	UserTracking            = "user_tracking"
	GeoLocalization         = "geo_localization"
	TechnicalImplementation = "technical_implementation"
	CartTransaction         = "cart_transaction"
)

// word matches one Unicode word, so greetings followed by CJK names match too.
const word = `[\p{L}\p{N}_]+`

// personalizationDef is the six-theme personalization table.
var personalizationDef = Definition{
	Name: "personalization",
	Categories: []CategoryDef{
		{
			Name:  UserIdentification,
			Label: "User identification & account personalization",
			Subcategories: []SubcategoryDef{
				{Name: "username_display", Patterns: []string{
					`welcome,\s+` + word,
					`你好,\s+` + word,
					`hi,\s+` + word,
					`hello,\s+` + word,
					`user-name`,
					`username`,
					`user_name`,
					`account-name`,
					`account_name`,
					`data-username`,
					`data-user-name`,
					`class="[^"]*user-name[^"]*"`,
					`id="[^"]*user-name[^"]*"`,
					`class="[^"]*username[^"]*"`,
					`id="[^"]*username[^"]*"`,
				}},
				{Name: "personalized_greeting", Patterns: []string{
					`welcome back`,
					`欢迎回来`,
					`welcome home`,
					`good (morning|afternoon|evening),\s+` + word,
					`(早上|下午|晚上)好,\s+` + word,
					`personalized-greeting`,
					`user-greeting`,
					`class="[^"]*greeting[^"]*"`,
					`id="[^"]*greeting[^"]*"`,
				}},
				{Name: "order_history", Patterns: []string{
					`order history`,
					`my orders`,
					`your orders`,
					`订单历史`,
					`我的订单`,
					`历史订单`,
					`recent orders`,
					`最近订单`,
					`order-history`,
					`order_history`,
					`class="[^"]*order-history[^"]*"`,
					`id="[^"]*order-history[^"]*"`,
				}},
				{Name: "membership_points", Patterns: []string{
					`membership level`,
					`会员等级`,
					`vip level`,
					`loyalty points`,
					`reward points`,
					`积分`,
					`会员积分`,
					`your points`,
					`您的积分`,
					`points balance`,
					`积分余额`,
					`class="[^"]*member-(level|points)[^"]*"`,
					`id="[^"]*member-(level|points)[^"]*"`,
				}},
				{Name: "profile_completion", Patterns: []string{
					`complete your profile`,
					`完善个人资料`,
					`profile completion`,
					`资料完整度`,
					`profile progress`,
					`个人资料进度`,
					`missing profile information`,
					`缺少的个人信息`,
					`class="[^"]*profile-completion[^"]*"`,
					`id="[^"]*profile-completion[^"]*"`,
				}},
			},
		},
		{
			Name:  ContentRecommendation,
			Label: "Content recommendation & personalized display",
			Subcategories: []SubcategoryDef{
				{Name: "product_recommendation", Patterns: []string{
					`recommended for you`,
					`为您推荐`,
					`personalized recommendations`,
					`个性化推荐`,
					`you might also like`,
					`您可能还喜欢`,
					`based on your`,
					`根据您的`,
					`tailored for you`,
					`为您定制`,
					`class="[^"]*personalized-recommendations[^"]*"`,
					`id="[^"]*personalized-recommendations[^"]*"`,
				}},
				{Name: "recommendation_section", Patterns: []string{
					`recommended section`,
					`推荐区域`,
					`for you section`,
					`为您推荐区域`,
					`personalized section`,
					`个性化区域`,
					`class="[^"]*recommendations-section[^"]*"`,
					`id="[^"]*recommendations-section[^"]*"`,
					`data-section-type="recommendations"`,
					`data-section="personalized"`,
				}},
				{Name: "recently_viewed", Patterns: []string{
					`recently viewed`,
					`最近浏览`,
					`you recently viewed`,
					`您最近浏览过`,
					`history viewed`,
					`浏览历史`,
					`viewed products`,
					`浏览过的商品`,
					`class="[^"]*recently-viewed[^"]*"`,
					`id="[^"]*recently-viewed[^"]*"`,
				}},
				{Name: "search_suggestion", Patterns: []string{
					`search suggestions`,
					`搜索建议`,
					`personalized search`,
					`个性化搜索`,
					`recent searches`,
					`最近搜索`,
					`search history`,
					`搜索历史`,
					`class="[^"]*search-suggestions[^"]*"`,
					`id="[^"]*search-suggestions[^"]*"`,
				}},
				{Name: "personalized_ads", Patterns: []string{
					`personalized ads`,
					`个性化广告`,
					`targeted ads`,
					`定向广告`,
					`ads based on`,
					`根据.+的广告`,
					`interest-based ads`,
					`兴趣广告`,
					`class="[^"]*personalized-ads[^"]*"`,
					`id="[^"]*personalized-ads[^"]*"`,
					`data-ad-client`,
					`data-ad-personalized`,
				}},
			},
		},
		{
			Name:  UserTracking,
			Label: "User behaviour tracking & data collection",
			Subcategories: []SubcategoryDef{
				{Name: "tracking_scripts", Patterns: []string{
					`google-analytics\.com/analytics\.js`,
					`gtag\(.*\)`,
					`ga\(.*\)`,
					`GoogleAnalyticsObject`,
					`google-analytics\.com/ga\.js`,
					`G-[A-Z0-9]{10,}`,
					`UA-[0-9]+-[0-9]+`,
					`googletagmanager\.com/gtm\.js`,
					`dataLayer\.push\(`,
					`GTM-[A-Z0-9]+`,
					`connect\.facebook\.net/en_US/fbevents\.js`,
					`fbq\(`,
					`_fbq`,
					`facebook-jssdk`,
					`facebook\.com/tr\?`,
					`hotjar\.com`,
					`clarity\.ms`,
					`matomo\.js`,
					`piwik\.js`,
					`mixpanel`,
					`heap\.js`,
					`fullstory\.com`,
					`segment\.com`,
					`amplitude\.com`,
				}},
				{Name: "user_session_id", Patterns: []string{
					`session[_\-]?id`,
					`会话[_\-]?id`,
					`user[_\-]?id`,
					`用户[_\-]?id`,
					`visitor[_\-]?id`,
					`访客[_\-]?id`,
					`client[_\-]?id`,
					`客户[_\-]?id`,
					`data-user-id`,
					`data-session-id`,
					`data-visitor-id`,
				}},
				{Name: "cookie_consent", Patterns: []string{
					`cookie consent`,
					`cookie政策`,
					`cookie同意`,
					`accept cookies`,
					`接受cookie`,
					`cookie preferences`,
					`cookie设置`,
					`gdpr consent`,
					`gdpr同意`,
					`privacy settings`,
					`隐私设置`,
					`class="[^"]*cookie-consent[^"]*"`,
					`id="[^"]*cookie-consent[^"]*"`,
					`data-consent`,
				}},
				{Name: "preference_storage", Patterns: []string{
					`store preferences`,
					`存储偏好`,
					`save preferences`,
					`保存偏好`,
					`user preferences`,
					`用户偏好`,
					`preference settings`,
					`偏好设置`,
					`localStorage\.setItem`,
					`sessionStorage\.setItem`,
					`document\.cookie`,
					`setCookie`,
					`set_cookie`,
					`class="[^"]*user-preferences[^"]*"`,
					`id="[^"]*user-preferences[^"]*"`,
				}},
				{Name: "heatmap_tracking", Patterns: []string{
					`heatmap`,
					`热图`,
					`click tracking`,
					`点击跟踪`,
					`mouse tracking`,
					`鼠标跟踪`,
					`user behavior`,
					`用户行为`,
					`scroll depth`,
					`滚动深度`,
					`hotjar`,
					`crazyegg`,
					`clicktale`,
					`mouseflow`,
				}},
			},
		},
		{
			Name:  GeoLocalization,
			Label: "Geolocation & localized personalization",
			Subcategories: []SubcategoryDef{
				{Name: "location_detection", Patterns: []string{
					`geolocation`,
					`地理位置`,
					`detect location`,
					`检测位置`,
					`current location`,
					`当前位置`,
					`navigator\.geolocation`,
					`ip geolocation`,
					`ip地理位置`,
					`location services`,
					`位置服务`,
					`class="[^"]*geolocation[^"]*"`,
					`id="[^"]*geolocation[^"]*"`,
					`data-location`,
				}},
				{Name: "localized_content", Patterns: []string{
					`localized content`,
					`本地化内容`,
					`region specific`,
					`区域特定`,
					`content for your region`,
					`您所在区域的内容`,
					`local offers`,
					`本地优惠`,
					`in your area`,
					`在您的区域`,
					`class="[^"]*localized-content[^"]*"`,
					`id="[^"]*localized-content[^"]*"`,
					`data-region`,
				}},
				{Name: "currency_language", Patterns: []string{
					`auto currency`,
					`自动货币`,
					`currency selector`,
					`货币选择器`,
					`language selector`,
					`语言选择器`,
					`auto detect language`,
					`自动检测语言`,
					`change currency`,
					`更改货币`,
					`change language`,
					`更改语言`,
					`class="[^"]*currency-selector[^"]*"`,
					`id="[^"]*currency-selector[^"]*"`,
					`class="[^"]*language-selector[^"]*"`,
					`id="[^"]*language-selector[^"]*"`,
					`data-currency`,
					`data-language`,
				}},
				{Name: "regional_promotion", Patterns: []string{
					`regional promotions`,
					`区域促销`,
					`local promotions`,
					`本地促销`,
					`special offers in`,
					`特别优惠在`,
					`deals in your area`,
					`您所在区域的优惠`,
					`region specific offers`,
					`区域特定优惠`,
					`class="[^"]*regional-promotion[^"]*"`,
					`id="[^"]*regional-promotion[^"]*"`,
					`data-promotion-region`,
				}},
				{Name: "shipping_options", Patterns: []string{
					`shipping options`,
					`配送选项`,
					`delivery options`,
					`送货选项`,
					`shipping to your location`,
					`配送到您的位置`,
					`available in your area`,
					`您所在区域可用`,
					`shipping calculator`,
					`配送计算器`,
					`class="[^"]*shipping-options[^"]*"`,
					`id="[^"]*shipping-options[^"]*"`,
					`data-shipping-region`,
				}},
			},
		},
		{
			Name:  TechnicalImplementation,
			Label: "Technical implementation & APIs",
			Subcategories: []SubcategoryDef{
				{Name: "personalization_api", Patterns: []string{
					`personalization api`,
					`个性化api`,
					`recommendation api`,
					`推荐api`,
					`api\.personalize`,
					`api/recommendations`,
					`api/personalized`,
					`fetch\(['"].*?/personalize`,
					`fetch\(['"].*?/recommend`,
					`axios\.get\(['"].*?/personalize`,
					`axios\.get\(['"].*?/recommend`,
					`\.ajax\(\{[^}]*url:\s*['"].*?/personalize`,
					`\.ajax\(\{[^}]*url:\s*['"].*?/recommend`,
				}},
				{Name: "dynamic_content", Patterns: []string{
					`dynamic content`,
					`动态内容`,
					`content loader`,
					`内容加载器`,
					`lazy load personalized`,
					`懒加载个性化`,
					`async content`,
					`异步内容`,
					`dynamic rendering`,
					`动态渲染`,
					`class="[^"]*dynamic-content[^"]*"`,
					`id="[^"]*dynamic-content[^"]*"`,
					`data-dynamic-content`,
					`data-async-content`,
				}},
				{Name: "ab_testing", Patterns: []string{
					`a/b test`,
					`a/b测试`,
					`split test`,
					`分割测试`,
					`variant test`,
					`变体测试`,
					`experiment id`,
					`实验id`,
					`optimizely`,
					`google optimize`,
					`vwo`,
					`class="[^"]*ab-test[^"]*"`,
					`id="[^"]*ab-test[^"]*"`,
					`data-experiment`,
					`data-variant`,
				}},
				{Name: "user_segmentation", Patterns: []string{
					`user segment`,
					`用户细分`,
					`customer segment`,
					`客户细分`,
					`audience segment`,
					`受众细分`,
					`segment id`,
					`细分id`,
					`user group`,
					`用户组`,
					`class="[^"]*user-segment[^"]*"`,
					`id="[^"]*user-segment[^"]*"`,
					`data-segment`,
					`data-user-group`,
				}},
				{Name: "realtime_engine", Patterns: []string{
					`realtime personalization`,
					`实时个性化`,
					`personalization engine`,
					`个性化引擎`,
					`recommendation engine`,
					`推荐引擎`,
					`real-time recommendations`,
					`实时推荐`,
					`personalization service`,
					`个性化服务`,
					`class="[^"]*realtime-personalization[^"]*"`,
					`id="[^"]*realtime-personalization[^"]*"`,
					`data-realtime-personalization`,
				}},
			},
		},
		{
			Name:  CartTransaction,
			Label: "Cart & transaction personalization",
			Subcategories: []SubcategoryDef{
				{Name: "cart_persistence", Patterns: []string{
					`saved cart`,
					`保存的购物车`,
					`persistent cart`,
					`持久购物车`,
					`cart session`,
					`购物车会话`,
					`remember cart`,
					`记住购物车`,
					`restore cart`,
					`恢复购物车`,
					`class="[^"]*saved-cart[^"]*"`,
					`id="[^"]*saved-cart[^"]*"`,
					`data-cart-persistence`,
				}},
				{Name: "cart_recommendation", Patterns: []string{
					`cart recommendations`,
					`购物车推荐`,
					`recommended with`,
					`推荐搭配`,
					`frequently bought together`,
					`经常一起购买`,
					`complete your purchase`,
					`完成您的购买`,
					`add to your cart`,
					`添加到您的购物车`,
					`class="[^"]*cart-recommendations[^"]*"`,
					`id="[^"]*cart-recommendations[^"]*"`,
					`data-cart-recommendation`,
				}},
				{Name: "personalized_discount", Patterns: []string{
					`personal discount`,
					`个人折扣`,
					`special offer for you`,
					`专属优惠`,
					`your coupon`,
					`您的优惠券`,
					`exclusive discount`,
					`专属折扣`,
					`personalized offer`,
					`个性化优惠`,
					`class="[^"]*personal-discount[^"]*"`,
					`id="[^"]*personal-discount[^"]*"`,
					`data-personal-discount`,
					`data-user-coupon`,
				}},
				{Name: "remarketing", Patterns: []string{
					`abandoned cart`,
					`购物车遗弃`,
					`cart reminder`,
					`购物车提醒`,
					`complete your order`,
					`完成您的订单`,
					`return to cart`,
					`返回购物车`,
					`items waiting`,
					`商品等待中`,
					`class="[^"]*cart-reminder[^"]*"`,
					`id="[^"]*cart-reminder[^"]*"`,
					`data-cart-reminder`,
				}},
				{Name: "one_click_purchase", Patterns: []string{
					`one click purchase`,
					`一键购买`,
					`buy now`,
					`立即购买`,
					`express checkout`,
					`快速结账`,
					`quick buy`,
					`快速购买`,
					`instant purchase`,
					`即时购买`,
					`class="[^"]*one-click-purchase[^"]*"`,
					`id="[^"]*one-click-purchase[^"]*"`,
					`data-one-click-purchase`,
					`data-express-checkout`,
				}},
			},
		},
	},
}

var personalization = MustBuild(personalizationDef)

// Personalization returns the built-in personalization catalogue.
func Personalization() *Catalogue { return personalization }
