package reports

// Catalog is the read-only set of mock reports served by the API.
type Catalog struct {
	reports []Report
	radar   []RadarPoint
}

func NewCatalog(reports []Report, radar []RadarPoint) *Catalog {
	c := &Catalog{
		reports: make([]Report, len(reports)),
		radar:   make([]RadarPoint, len(radar)),
	}
	copy(c.reports, reports)
	copy(c.radar, radar)
	return c
}

// DefaultCatalog holds the demo data shown by the dashboard.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]Report{
			{ID: 1, Title: "Incident: Suspicious Login", Severity: SeverityHigh},
			{ID: 2, Title: "Vulnerability Scan - Passed", Severity: SeverityLow},
			{ID: 3, Title: "Unauthorized SSH Attempt", Severity: SeverityCritical},
		},
		[]RadarPoint{
			{Name: string(SeverityHigh), Value: 5},
			{Name: string(SeverityMedium), Value: 12},
			{Name: string(SeverityLow), Value: 20},
		},
	)
}

// List returns a copy so callers cannot mutate the catalog.
func (c *Catalog) List() []Report {
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

func (c *Catalog) Overview() Overview {
	counts := make(map[Severity]int, len(Severities))
	for _, s := range Severities {
		counts[s] = 0
	}
	for _, r := range c.reports {
		counts[r.Severity]++
	}
	radar := make([]RadarPoint, len(c.radar))
	copy(radar, c.radar)
	return Overview{SeverityBreakdown: radar, ReportsBySeverity: counts}
}
