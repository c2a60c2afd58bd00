package rules

// Intent group labels understood by the router.
const (
	IntentThanks      = "thanks"
	IntentPricing     = "pricing"
	IntentServices    = "services"
	IntentTimeline    = "timeline"
	IntentPerformance = "performance"
	IntentNextSteps   = "next-steps"
	IntentGreeting    = "greeting"
)

// Seed provides the default matcher tables.
func Seed() Catalog {
	return Catalog{
		Goals: []Rule{
			{Label: "Lead Generation", Keywords: []string{"lead", "pipeline", "demo request", "sign-ups", "signups", "prospects", "inquiries"}},
			{Label: "Brand Awareness", Keywords: []string{"awareness", "visibility", "recognition", "get noticed", "get known", "reach more"}},
			{Label: "Sales Growth", Keywords: []string{"sales", "revenue", "conversions", "more customers", "grow the business", "roas"}},
			{Label: "Product Launch", Keywords: []string{"launch", "new product", "go-to-market", "go to market", "gtm", "rollout"}},
			{Label: "Customer Retention", Keywords: []string{"retention", "churn", "loyalty", "repeat customers", "retain", "lifetime value"}},
			{Label: "Community Building", Keywords: []string{"community", "engagement", "followers", "audience", "fans"}},
		},
		Channels: []Rule{
			{Label: "SEO", Keywords: []string{"seo", "search engine", "organic search", "rank on google", "ranking"}},
			{Label: "Paid Search", Keywords: []string{"google ads", "ppc", "adwords", "paid search", "sem ", "search ads"}},
			{Label: "Paid Social", Keywords: []string{"facebook ads", "instagram ads", "meta ads", "tiktok ads", "linkedin ads", "paid social"}},
			{Label: "Social Media", Keywords: []string{"social media", "instagram", "tiktok", "linkedin", "twitter", "facebook", "youtube"}},
			{Label: "Email Marketing", Keywords: []string{"newsletter", "email marketing", "email campaign", "drip", "klaviyo", "mailchimp", "lifecycle email"}},
			{Label: "Content Marketing", Keywords: []string{"content", "blog", "articles", "podcast", "video series", "whitepaper"}},
			{Label: "Influencer Marketing", Keywords: []string{"influencer", "creator", "ugc", "ambassador"}},
		},
		PainPoints: []Rule{
			{Label: "Low Conversion", Keywords: []string{"not converting", "low conversion", "conversion rate", "bounce", "drop off", "abandon"}},
			{Label: "Limited Bandwidth", Keywords: []string{"no time", "bandwidth", "small team", "stretched thin", "understaffed", "no one to"}},
			{Label: "Inconsistent Brand", Keywords: []string{"inconsistent", "off-brand", "outdated", "messy brand", "all over the place"}},
			{Label: "Poor Tracking", Keywords: []string{"attribution", "tracking", "analytics", "don't know what works", "can't measure", "no data"}},
			{Label: "High Acquisition Cost", Keywords: []string{"expensive leads", "cac", "cost per lead", "cost per acquisition", "acquisition cost", "burning money"}},
			{Label: "Stalled Growth", Keywords: []string{"plateau", "stuck", "stalled", "flatlined", "slow growth", "not growing"}},
		},
		BrandTraits: []Rule{
			{Label: "Playful", Keywords: []string{"playful", " fun ", " fun,", "quirky", "witty", "cheeky"}},
			{Label: "Premium", Keywords: []string{"premium", "luxury", "high-end", "elegant", "exclusive"}},
			{Label: "Trustworthy", Keywords: []string{"trustworthy", "trusted", "reliable", "credible", "authentic"}},
			{Label: "Innovative", Keywords: []string{"innovative", "cutting-edge", "cutting edge", "futuristic", "tech-forward"}},
			{Label: "Friendly", Keywords: []string{"friendly", "approachable", "warm", "human", "down to earth"}},
			{Label: "Bold", Keywords: []string{"bold", "edgy", "disruptive", " loud", "fearless"}},
		},
		Intents: []Rule{
			{Label: IntentThanks, Keywords: []string{"thank", "thanks", "thx", "appreciate", "cheers"}},
			{Label: IntentPricing, Keywords: []string{"price", "pricing", "cost", "how much", " rates", " fee ", " fee?", " fee,", " fee.", " fees", "quote", "expensive", "afford"}},
			{Label: IntentServices, Keywords: []string{"services", "what do you do", "what do you offer", "offerings", "capabilities", "can you help with", "do you handle"}},
			{Label: IntentTimeline, Keywords: []string{"how long", "timeline", "turnaround", "how soon", "how fast", "when can", "deadline", " eta "}},
			{Label: IntentPerformance, Keywords: []string{"results", "case stud", "proof", "portfolio", "track record", "testimonials", "success stories", "references", "clients"}},
			{Label: IntentNextSteps, Keywords: []string{"next step", "get started", "getting started", "book a call", "schedule a call", "set up a call", "hop on a call", "proposal", "move forward", "kick off", "kickoff"}},
			{Label: IntentGreeting, Keywords: []string{" hi ", " hi!", " hi,", " hello", " hey ", " hey!", " hey,", " hiya", "good morning", "good afternoon", "good evening", "greetings", "howdy"}},
		},
	}
}
