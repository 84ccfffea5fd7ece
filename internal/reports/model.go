package reports

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities is the display order used by summaries.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

type Report struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
}

// RadarPoint is one axis of the dashboard's compliance radar.
type RadarPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Overview struct {
	SeverityBreakdown []RadarPoint     `json:"severity_breakdown"`
	ReportsBySeverity map[Severity]int `json:"reports_by_severity"`
}
