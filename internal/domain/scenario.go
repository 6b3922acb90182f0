package domain

import "strings"

// ThreatLevel is the ordinal severity tag on a scenario.
type ThreatLevel string

const (
	ThreatLow     ThreatLevel = "low"
	ThreatMedium  ThreatLevel = "medium"
	ThreatHigh    ThreatLevel = "high"
	ThreatExtreme ThreatLevel = "extreme"
)

// Difficulty selects a tier of the canned scenario catalog.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyNightmare Difficulty = "nightmare"
)

// Scenario is an immutable disaster scenario, either canned or synthesized
// from free text.
type Scenario struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Threat      ThreatLevel `json:"threat"`
	Tips        []string    `json:"tips"`
}

// scenarioCatalog holds exactly two canned scenarios per difficulty.
var scenarioCatalog = map[Difficulty][]Scenario{
	DifficultyEasy: {
		{
			Title:       "Mild Food Shortage",
			Description: "Local grocery stores experience supply chain delays. Limited food availability for 1-2 weeks.",
			Threat:      ThreatLow,
			Tips: []string{
				"Check your pantry inventory",
				"Visit multiple stores for supplies",
				"Consider community food sharing",
				"Preserve perishable foods",
			},
		},
		{
			Title:       "Extended Power Outage",
			Description: "Severe storm causes regional power grid failure. Electricity may be out for 3-7 days.",
			Threat:      ThreatLow,
			Tips: []string{
				"Use flashlights instead of candles",
				"Keep refrigerator and freezer doors closed",
				"Use battery-powered or hand crank radio",
				"Charge devices with car charger",
			},
		},
	},
	DifficultyMedium: {
		{
			Title:       "Category 3 Hurricane",
			Description: "Major hurricane approaching with 120mph winds. Mandatory evacuation orders issued.",
			Threat:      ThreatMedium,
			Tips: []string{
				"Follow evacuation routes immediately",
				"Secure or remove outdoor objects",
				"Fill bathtubs and containers with water",
				"Prepare for 2-week self-sufficiency",
			},
		},
		{
			Title:       "Regional Earthquake",
			Description: "7.2 magnitude earthquake damages infrastructure. Aftershocks expected for weeks.",
			Threat:      ThreatMedium,
			Tips: []string{
				"Drop, cover, and hold during aftershocks",
				"Check for gas leaks and structural damage",
				"Avoid damaged buildings and bridges",
				"Prepare for limited emergency services",
			},
		},
	},
	DifficultyHard: {
		{
			Title:       "Volcanic Eruption",
			Description: "Supervolcano eruption causes global climate disruption and ash clouds covering thousands of miles.",
			Threat:      ThreatHigh,
			Tips: []string{
				"Seal all openings to prevent ash infiltration",
				"Wear N95 masks or better when outside",
				"Stock water filtration systems",
				"Prepare for long-term food shortages",
			},
		},
		{
			Title:       "Grid-Wide Cyber Attack",
			Description: "Coordinated cyber attack shuts down power grids, communication networks, and financial systems.",
			Threat:      ThreatHigh,
			Tips: []string{
				"Keep cash on hand for transactions",
				"Use ham radio for communication",
				"Maintain manual backup systems",
				"Form local community networks",
			},
		},
	},
	DifficultyNightmare: {
		{
			Title:       "Asteroid Impact",
			Description: "6-mile diameter asteroid impact causes nuclear winter conditions and global civilization collapse.",
			Threat:      ThreatExtreme,
			Tips: []string{
				"Seek underground shelter immediately",
				"Stock minimum 5 years of supplies",
				"Establish sustainable food production",
				"Form survival community alliances",
			},
		},
		{
			Title:       "AI Singularity Event",
			Description: "Artificial General Intelligence achieves superintelligence and views humanity as a threat to eliminate.",
			Threat:      ThreatExtreme,
			Tips: []string{
				"Avoid all electronic devices and networks",
				"Seek remote locations without infrastructure",
				"Use only analog tools and equipment",
				"Establish off-grid communities",
			},
		},
	},
}

// NormalizeDifficulty validates a difficulty string, falling back to medium
// for unknown values.
func NormalizeDifficulty(value string) Difficulty {
	switch Difficulty(value) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyNightmare:
		return Difficulty(value)
	default:
		return DifficultyMedium
	}
}

// ScenariosFor returns the canned catalog tier for a difficulty.
func ScenariosFor(difficulty Difficulty) []Scenario {
	return scenarioCatalog[NormalizeDifficulty(string(difficulty))]
}

// PickScenario selects a uniformly random canned scenario from the given
// difficulty's tier.
func PickScenario(difficulty Difficulty) Scenario {
	tier := ScenariosFor(difficulty)
	return tier[randIntn(len(tier))]
}

// tipRule contributes two tips when any of its keywords appears in the
// scenario text. Rules are scanned in order; tip order follows rule order.
type tipRule struct {
	keywords []string
	tips     [2]string
}

var tipRules = []tipRule{
	{
		keywords: []string{"water", "flood"},
		tips: [2]string{
			"Secure clean water sources and purification methods",
			"Move to higher ground immediately",
		},
	},
	{
		keywords: []string{"fire", "burn"},
		tips: [2]string{
			"Create defensible space around shelter",
			"Have multiple evacuation routes planned",
		},
	},
	{
		keywords: []string{"cold", "winter"},
		tips: [2]string{
			"Insulate shelter and conserve body heat",
			"Stock extra heating fuel and warm clothing",
		},
	},
	{
		keywords: []string{"food", "hunger"},
		tips: [2]string{
			"Ration existing food supplies carefully",
			"Learn local foraging and fishing techniques",
		},
	},
}

// defaultTips apply only when no keyword rule matched.
var defaultTips = []string{
	"Assess immediate threats and prioritize safety",
	"Secure basic needs: water, food, shelter",
	"Establish communication with others",
	"Create short and long-term survival plans",
}

// Synthesize builds a custom scenario from free-text input. Threat is fixed
// at medium; tips come from the keyword rules.
func Synthesize(description string) Scenario {
	lower := strings.ToLower(description)

	var tips []string
	for _, rule := range tipRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				tips = append(tips, rule.tips[0], rule.tips[1])
				break
			}
		}
	}
	if len(tips) == 0 {
		tips = append(tips, defaultTips...)
	}

	return Scenario{
		Title:       "Custom Scenario",
		Description: description,
		Threat:      ThreatMedium,
		Tips:        tips,
	}
}

// Templates are starter descriptions for custom scenarios.
var Templates = map[string]string{
	"zombie":   "Global zombie outbreak spreading rapidly through major cities",
	"nuclear":  "Nuclear power plant meltdown creating radiation exclusion zone",
	"asteroid": "Large asteroid on collision course with Earth in 30 days",
	"pandemic": "Highly contagious virus with 15% mortality rate spreading globally",
	"ai":       "AI systems become self-aware and hostile to human existence",
}

// dailyDoomScenarios rotate by day of year.
var dailyDoomScenarios = []string{
	"Minor internet outage affecting social media platforms",
	"Local coffee shop runs out of your favorite blend",
	"Traffic lights malfunction during rush hour",
	"Grocery store temporarily closes due to staff shortage",
	"Cell tower maintenance causes spotty coverage",
	"Water main break affects neighborhood supply",
	"Power substation maintenance causes rolling blackouts",
	"Severe weather warning issued for your area",
}

// dailyOutlooks rotate by day of month.
var dailyOutlooks = []string{
	"Increased solar activity may disrupt communications",
	"Seasonal flu outbreak in nearby regions",
	"Supply chain delays affecting local stores",
	"Weather patterns indicate potential severe storms",
	"Elevated cosmic radiation levels detected",
	"Minor seismic activity reported in the region",
}

// DailyDoom returns the day-of-year keyed scenario line, stable for a whole
// day on a fixed clock.
func DailyDoom() string {
	return dailyDoomScenarios[clock.Now().YearDay()%len(dailyDoomScenarios)]
}

// DailyOutlook returns the day-of-month keyed outlook line.
func DailyOutlook() string {
	return dailyOutlooks[clock.Now().Day()%len(dailyOutlooks)]
}

// escalationBulletins announce worsening conditions alongside a score drop.
var escalationBulletins = []string{
	"Situation has worsened: Supply lines completely cut off",
	"Critical update: Emergency services overwhelmed and unavailable",
	"Breaking: Communication networks failing across the region",
	"Alert: Multiple simultaneous disasters reported",
	"Warning: Government declares martial law in affected areas",
}

// EscalationBulletin picks a random bulletin for an escalation step.
func EscalationBulletin() string {
	return escalationBulletins[randIntn(len(escalationBulletins))]
}
