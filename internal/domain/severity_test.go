package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	want := map[string]string{
		"murder":                        "High",
		"arson":                         "High",
		"kidnapping":                    "High",
		"terrorism":                     "High",
		"sexual assault":                "High",
		"human trafficking":             "High",
		"rape":                          "High",
		"drug trafficking":              "High",
		"extortion":                     "High",
		"illegal possession of weapons": "High",
		"hate crime":                    "High",
		"domestic violence":             "Medium",
		"assault":                       "Medium",
		"robbery":                       "Medium",
		"theft":                         "Medium",
		"fraud":                         "Medium",
		"cybercrime":                    "Medium",
		"money laundering":              "Medium",
		"bribery":                       "Medium",
		"forgery":                       "Medium",
		"animal cruelty":                "Medium",
		"vandalism":                     "Low",
		"trespassing":                   "Low",
		"public disturbance":            "Low",
		"harassment":                    "Low",
	}
	for incidentType, severity := range want {
		assert.Equal(t, severity, ClassifySeverity(incidentType), "incident type %q", incidentType)
	}

	assert.Equal(t, DefaultSeverity, ClassifySeverity("jaywalking"), "unknown types fall back")
	assert.Equal(t, DefaultSeverity, ClassifySeverity("Theft"), "lookups are case-sensitive")
	assert.Equal(t, DefaultSeverity, ClassifySeverity(""))
}

func TestIsValidReportStatus(t *testing.T) {
	for _, s := range ReportStatuses {
		assert.True(t, IsValidReportStatus(s), s)
	}
	assert.False(t, IsValidReportStatus("archived"))
	assert.False(t, IsValidReportStatus("Pending"))
	assert.False(t, IsValidReportStatus(""))
}

func TestIsValidFeedbackType(t *testing.T) {
	assert.True(t, IsValidFeedbackType("complaint"))
	assert.True(t, IsValidFeedbackType("user support"))
	assert.False(t, IsValidFeedbackType("rant"))
}
