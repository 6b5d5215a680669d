package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusPending       = "pending"
	StatusInvestigating = "investigating"
	StatusRejected      = "rejected"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"
)

// ReportStatuses lists every valid lifecycle status. Any status may follow
// any other; there is no enforced forward-only ordering.
var ReportStatuses = []string{
	StatusPending,
	StatusInvestigating,
	StatusRejected,
	StatusResolved,
	StatusClosed,
}

func IsValidReportStatus(s string) bool {
	for _, v := range ReportStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Recipient classes for notification dispatch.
const (
	RecipientUser  = "user"
	RecipientAdmin = "admin"
	RecipientBoth  = "both"
)

// Notification severity tiers. Distinct from the classifier's
// {Low, Medium, High} vocabulary; the two are deliberately not unified.
const (
	SeverityLow      = "Low"
	SeverityModerate = "Moderate"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

const (
	EvidenceImage    = "image"
	EvidenceVideo    = "video"
	EvidenceAudio    = "audio"
	EvidenceDocument = "document"
	EvidenceRaw      = "raw"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Feedback categories accepted from the public form.
var FeedbackTypes = []string{
	"complaint", "suggestion", "query", "general", "user support", "report issue", "other",
}

func IsValidFeedbackType(t string) bool {
	for _, v := range FeedbackTypes {
		if v == t {
			return true
		}
	}
	return false
}
