package domain

// RiskLevel classifies a mock risk percentage.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ClassifyRisk maps a risk percentage to its level: above 70 High, above 40
// Medium, otherwise Low.
func ClassifyRisk(percent int) RiskLevel {
	switch {
	case percent > 70:
		return RiskHigh
	case percent > 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskFactor is one scored dimension of the mock location analysis.
type RiskFactor struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

// RiskReport is the mock location risk analysis. The scores are random
// stand-ins for unavailable real risk data; the ranges match the original
// demo behavior (natural 30-69, population 25-74, infrastructure 20-79).
type RiskReport struct {
	Query          string     `json:"query"`
	Natural        RiskFactor `json:"natural"`
	Population     RiskFactor `json:"population"`
	Infrastructure RiskFactor `json:"infrastructure"`
}

// AnalyzeRisk produces a mock risk report for a location query.
func AnalyzeRisk(query string) RiskReport {
	return RiskReport{
		Query:          query,
		Natural:        riskFactor("natural", 30+randIntn(40)),
		Population:     riskFactor("population", 25+randIntn(50)),
		Infrastructure: riskFactor("infrastructure", 20+randIntn(60)),
	}
}

func riskFactor(name string, score int) RiskFactor {
	return RiskFactor{Name: name, Score: score, Level: ClassifyRisk(score)}
}

// Geo is a stored latitude/longitude pair.
type Geo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SafeZone is a nearby shelter candidate shown with a risk report.
type SafeZone struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
	Capacity string `json:"capacity"`
}

var safeZones = []SafeZone{
	{Name: "Community Center", Distance: "0.8 miles", Capacity: "500 people"},
	{Name: "High School Gymnasium", Distance: "1.2 miles", Capacity: "300 people"},
	{Name: "Public Library", Distance: "0.5 miles", Capacity: "150 people"},
	{Name: "Fire Station", Distance: "2.1 miles", Capacity: "50 people"},
}

// SafeZones returns the fixed safe-zone list.
func SafeZones() []SafeZone {
	zones := make([]SafeZone, len(safeZones))
	copy(zones, safeZones)
	return zones
}

var evacuationRoutes = map[string]string{
	"north": "Highway 101 North - Clear roads, 45 miles to safety zone",
	"south": "Interstate 5 South - Heavy traffic expected, 38 miles to safety zone",
	"east":  "Route 99 East - Mountain pass, 52 miles to safety zone",
	"west":  "Coastal Highway West - Flood risk, 41 miles to safety zone",
}

// EvacuationRoute returns the canned route description for a compass
// direction (north, south, east, west).
func EvacuationRoute(direction string) (string, error) {
	route, ok := evacuationRoutes[direction]
	if !ok {
		return "", &ValidationError{Field: "direction", Reason: "must be north, south, east, or west"}
	}
	return route, nil
}
