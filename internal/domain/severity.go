package domain

// crimeSeverity maps a normalized incident type to its triage severity.
// Lookups are case-sensitive; callers lowercase and sanitize first.
var crimeSeverity = map[string]string{
	"murder":                         "High",
	"arson":                          "High",
	"kidnapping":                     "High",
	"terrorism":                      "High",
	"sexual assault":                 "High",
	"human trafficking":              "High",
	"rape":                           "High",
	"domestic violence":              "Medium",
	"assault":                        "Medium",
	"robbery":                        "Medium",
	"theft":                          "Medium",
	"fraud":                          "Medium",
	"cybercrime":                     "Medium",
	"drug trafficking":               "High",
	"money laundering":               "Medium",
	"extortion":                      "High",
	"vandalism":                      "Low",
	"trespassing":                    "Low",
	"public disturbance":             "Low",
	"bribery":                        "Medium",
	"illegal possession of weapons":  "High",
	"forgery":                        "Medium",
	"hate crime":                     "High",
	"animal cruelty":                 "Medium",
	"harassment":                     "Low",
}

// DefaultSeverity is returned for incident types missing from the table.
const DefaultSeverity = "Low"

// ClassifySeverity returns the severity tier for an incident type.
func ClassifySeverity(incidentType string) string {
	if s, ok := crimeSeverity[incidentType]; ok {
		return s
	}
	return DefaultSeverity
}
