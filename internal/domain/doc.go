// Package domain models the preparedness planner core: the supply catalog,
// emergency contacts, disaster scenarios, survival assessments, the mock
// location risk report, and the static survival guides.
//
// # Supply Catalog
//
// The catalog is a fixed table of 20 items across four categories (food,
// medical, tools, shelter). Each item's quantity is a linear function of the
// household size n and the planning duration d in days:
//
//	Water                n·d gallons        First aid kit      1 kit
//	Non-perishable meals n·d·3 meals        Prescription meds  d days supply
//	Canned goods         n·20 cans          Pain relievers     2 bottles
//	Energy bars          n·10 bars          Bandages           20 count
//	Dried fruits/nuts    n·5 lbs            Antiseptic         3 bottles
//
//	Flashlights          n count            Emergency blankets n·2 count
//	Batteries            20 count           Sleeping bags      n count
//	Multi-tool           2 count            Tarps              2 count
//	Duct tape            3 rolls            Warm clothing sets n sets
//	Rope                 100 feet           Rain gear          n sets
//
// Non-positive inputs fall back to n=2, d=14. An item's identity is its
// "<category>_<name>" key; checked state is carried across recomputes by that
// key, so changing n or d never loses a checkmark.
//
// # Survival Assessment
//
// Three independent sub-scores, each clamped to [0,100]:
//
//	preparation = round(100 · checked / total), 0 when total is 0
//	location    = uniform random in [60,100] (stub; no real risk data)
//	resource    = clamp(100 − 5n − 2d, [20,100])
//
// The overall score is the half-up rounded mean of the three. Escalation
// lowers the overall score by 20 per step with a floor of 5. The location
// stub and the resource penalty are demo formulas, not calibrated risk
// models.
//
// # Scenario Synthesis
//
// Custom scenarios carry a fixed medium threat. Tips come from keyword rules
// scanned in a fixed order (water/flood, fire/burn, cold/winter,
// food/hunger), each matched group contributing two tips; a four-tip default
// list applies only when nothing matched.
package domain
