package domain

import "strings"

// GuideSection is one heading plus its ordered points. Note carries the
// warning or tip callout that closes some sections.
type GuideSection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
	Note    string   `json:"note,omitempty"`
}

// Guide is one static survival guide.
type Guide struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Summary  string         `json:"summary"`
	Sections []GuideSection `json:"sections"`
}

var guides = []Guide{
	{
		ID:      "basic",
		Title:   "Basic Survival Guide",
		Summary: "Core priorities and the rule of threes for any emergency.",
		Sections: []GuideSection{
			{
				Heading: "The Rule of Threes",
				Items: []string{
					"3 minutes without air",
					"3 hours without shelter in extreme conditions",
					"3 days without water",
					"3 weeks without food",
				},
			},
			{
				Heading: "Survival Priorities",
				Items: []string{
					"Safety: Remove yourself from immediate danger",
					"Shelter: Protect from elements",
					"Water: Find and purify drinking water",
					"Fire: Warmth, cooking, signaling",
					"Food: Sustenance for energy",
					"Rescue: Signal for help",
				},
				Note: "Warning: Never drink untreated water from unknown sources. Always purify first.",
			},
		},
	},
	{
		ID:      "water",
		Title:   "Water Procurement Guide",
		Summary: "Finding and purifying drinking water in the field.",
		Sections: []GuideSection{
			{
				Heading: "Finding Water Sources",
				Items: []string{
					"Morning dew on plants and grass",
					"Rainwater collection",
					"Underground springs",
					"Tree wells and rock crevices",
					"Following animal tracks to water",
				},
			},
			{
				Heading: "Purification Methods",
				Items: []string{
					"Boiling: 1 minute at sea level, 3 minutes above 6,500 feet",
					"Water purification tablets: Follow package instructions",
					"UV sterilization: Clear water in clear container, 6 hours direct sunlight",
					"Filtration: Cloth, sand, charcoal layers",
				},
				Note: "Tip: Clear water isn't always safe. Even clear mountain streams can contain harmful parasites.",
			},
		},
	},
	{
		ID:      "shelter",
		Title:   "Shelter Building Guide",
		Summary: "Site selection and basic lean-to construction.",
		Sections: []GuideSection{
			{
				Heading: "Location Selection",
				Items: []string{
					"Dry ground, slightly elevated",
					"Protected from wind",
					"Away from dead trees or loose rocks",
					"Near water source but not in flood zone",
					"Insulated from ground cold",
				},
			},
			{
				Heading: "Basic Lean-To Construction",
				Items: []string{
					"Find or create a ridge pole",
					"Secure between two trees or supports",
					"Lean branches against ridge pole",
					"Add smaller branches and debris",
					"Create insulation layer",
				},
				Note: "Warning: Your shelter should be just big enough for you. Larger spaces are harder to heat.",
			},
		},
	},
	{
		ID:      "fire",
		Title:   "Fire Starting Guide",
		Summary: "Fire triangle, tinder selection, and fire building steps.",
		Sections: []GuideSection{
			{
				Heading: "Fire Triangle Requirements",
				Items: []string{
					"Heat: Spark or flame to ignite",
					"Fuel: Combustible material",
					"Oxygen: Air flow for combustion",
				},
			},
			{
				Heading: "Tinder Materials",
				Items: []string{
					"Dry grass and leaves",
					"Birch bark",
					"Pine needles",
					"Paper or cloth",
					"Steel wool",
				},
			},
			{
				Heading: "Fire Building Steps",
				Items: []string{
					"Prepare tinder nest",
					"Gather kindling (pencil to thumb thickness)",
					"Collect fuel wood (thumb to wrist thickness)",
					"Light tinder",
					"Add kindling gradually",
					"Add fuel wood as fire grows",
				},
			},
		},
	},
	{
		ID:      "food",
		Title:   "Food Procurement Guide",
		Summary: "Common edible plants and the universal edibility test.",
		Sections: []GuideSection{
			{
				Heading: "Edible Plants (Common)",
				Items: []string{
					"Dandelions (entire plant)",
					"Plantain (leaves and seeds)",
					"Clover (flowers and leaves)",
					"Acorns (process to remove tannins)",
					"Wild berries (know your local varieties)",
				},
			},
			{
				Heading: "Universal Edibility Test",
				Items: []string{
					"Avoid mushrooms and unknown berries",
					"Smell for strong or acid odors",
					"Place on inside of wrist for 15 minutes",
					"Touch to corner of mouth for 3 minutes",
					"Touch to tongue tip for 15 minutes",
					"Chew and hold in mouth for 15 minutes",
					"Swallow small amount and wait 8 hours",
				},
				Note: "Warning: When in doubt, don't eat it. Many plants can be toxic or deadly.",
			},
		},
	},
	{
		ID:      "medical",
		Title:   "First Aid Guide",
		Summary: "Primary assessment, bleeding control, and shock treatment.",
		Sections: []GuideSection{
			{
				Heading: "Primary Assessment (ABCs)",
				Items: []string{
					"Airway: Is it clear and open?",
					"Breathing: Is the person breathing?",
					"Circulation: Is there a pulse? Severe bleeding?",
				},
			},
			{
				Heading: "Bleeding Control",
				Items: []string{
					"Apply direct pressure with clean cloth",
					"Elevate injury above heart if possible",
					"Apply pressure to pressure points if needed",
					"Use tourniquet only as last resort",
				},
			},
			{
				Heading: "Shock Treatment",
				Items: []string{
					"Keep person lying down and warm",
					"Elevate legs 12 inches if no spinal injury",
					"Loosen tight clothing",
					"Monitor breathing and pulse",
				},
				Note: "Emergency: Call 911 immediately for serious injuries. These are basic guidelines only.",
			},
		},
	},
}

// Guides returns the full guide catalog in display order.
func Guides() []Guide {
	out := make([]Guide, len(guides))
	copy(out, guides)
	return out
}

// GuideByID looks up a guide, falling back to the basic guide for unknown ids.
func GuideByID(id string) Guide {
	for _, g := range guides {
		if g.ID == id {
			return g
		}
	}
	return guides[0]
}

// SearchGuides filters the catalog by a case-insensitive match on title or
// summary. An empty query returns everything.
func SearchGuides(query string) []Guide {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Guides()
	}

	var out []Guide
	for _, g := range guides {
		if strings.Contains(strings.ToLower(g.Title), query) ||
			strings.Contains(strings.ToLower(g.Summary), query) {
			out = append(out, g)
		}
	}
	return out
}
