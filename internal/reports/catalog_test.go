package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shieldops/internal/logging"
)

func TestCatalogListIsACopy(t *testing.T) {
	c := DefaultCatalog()
	first := c.List()
	require.Len(t, first, 3)
	first[0].Title = "mutated"

	assert.Equal(t, "Incident: Suspicious Login", c.List()[0].Title)
}

func TestCatalogOverview(t *testing.T) {
	o := DefaultCatalog().Overview()
	assert.Equal(t, map[Severity]int{
		SeverityCritical: 1,
		SeverityHigh:     1,
		SeverityMedium:   0,
		SeverityLow:      1,
	}, o.ReportsBySeverity)
	assert.Equal(t, []RadarPoint{{"High", 5}, {"Medium", 12}, {"Low", 20}}, o.SeverityBreakdown)
}

func TestListHandler(t *testing.T) {
	h := &ListHandler{Catalog: DefaultCatalog(), Logger: logging.Nop()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":1,"title":"Incident: Suspicious Login","severity":"High"},
		{"id":2,"title":"Vulnerability Scan - Passed","severity":"Low"},
		{"id":3,"title":"Unauthorized SSH Attempt","severity":"Critical"}
	]`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reports", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestOverviewHandler(t *testing.T) {
	h := &OverviewHandler{Catalog: DefaultCatalog(), Logger: logging.Nop()}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var o Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, 1, o.ReportsBySeverity[SeverityCritical])
	assert.Len(t, o.SeverityBreakdown, 3)
}
