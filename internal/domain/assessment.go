package domain

import "math"

// Assessment is the composite survival score computed for an active scenario.
// Each sub-score lives in [0,100]; the overall score is the half-up rounded
// mean of the three.
type Assessment struct {
	PreparationScore int `json:"preparationScore"`
	LocationScore    int `json:"locationScore"`
	ResourceScore    int `json:"resourceScore"`
	OverallScore     int `json:"overallScore"`
}

// Escalation tuning: each step drops the overall score by 20, never below 5.
const (
	EscalationStep  = 20
	EscalationFloor = 5
)

// Assess computes an assessment from the current supply state and planning
// inputs. A total of zero checked-against supplies scores 0 preparation. The
// location score is a uniform random stand-in for unavailable risk data; the
// resource score is a linear penalty on household size and duration.
func Assess(checkedSupplies, totalSupplies, householdSize, durationDays int) Assessment {
	preparation := 0
	if totalSupplies > 0 {
		preparation = int(math.Round(100 * float64(checkedSupplies) / float64(totalSupplies)))
		preparation = clampScore(preparation, 0, 100)
	}

	location := 60 + randIntn(41)

	resource := clampScore(100-5*householdSize-2*durationDays, 20, 100)

	overall := int(math.Round(float64(preparation+location+resource) / 3))

	return Assessment{
		PreparationScore: preparation,
		LocationScore:    location,
		ResourceScore:    resource,
		OverallScore:     overall,
	}
}

// Escalate returns a copy with the overall score stepped down to its floor.
// Sub-scores are untouched: escalation models worsening conditions, not a
// reassessment.
func (a Assessment) Escalate() Assessment {
	a.OverallScore = max(EscalationFloor, a.OverallScore-EscalationStep)
	return a
}

func clampScore(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
