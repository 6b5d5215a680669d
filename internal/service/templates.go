package service

import (
	"fmt"

	"crimegpt/internal/domain"
)

// Push notification templates. Case numbers stand in for the internal ids in
// user-facing text.

func newComplaintTemplate(caseNumber string) (title, body string) {
	return "New Complaint Registration",
		fmt.Sprintf("Your complaint (ID: %s) has been successfully registered. Our team will review it shortly.", caseNumber)
}

func statusUpdateTemplate(caseNumber, status string) (title, body string) {
	title = "Crime Report Status Update"
	switch status {
	case domain.StatusInvestigating:
		body = fmt.Sprintf("Your crime report (ID: %s) is currently under review. We will update you once it's processed.", caseNumber)
	case domain.StatusResolved:
		body = fmt.Sprintf("Good news! Your crime report (ID: %s) has been resolved. Thank you for your report.", caseNumber)
	case domain.StatusRejected:
		body = fmt.Sprintf("We're sorry, but your crime report (ID: %s) has been rejected. If you have additional information, feel free to resubmit.", caseNumber)
	case domain.StatusClosed:
		body = fmt.Sprintf("Dear complainant! Your crime report (ID: %s) has been closed. Thank you for your report.", caseNumber)
	default:
		body = fmt.Sprintf("The status of your crime report (ID: %s) has been updated.", caseNumber)
	}
	return title, body
}

func deleteComplaintTemplate(caseNumber string) (title, body string) {
	return "Complaint Deletion",
		fmt.Sprintf("Your complaint (ID: %s) has been deleted. If this was an error, please submit a new complaint.", caseNumber)
}

func deleteAllComplaintsTemplate(userName string) (title, body string) {
	return "Complaint Deletion",
		fmt.Sprintf("Dear %s, all of your reports have been successfully deleted.", userName)
}

func adminDeletedReportTemplate(caseNumber string) (title, body string) {
	return "Report Deleted",
		fmt.Sprintf("A report with ID %s has been deleted by an admin. If you believe this was a mistake, please contact support.", caseNumber)
}

func adminDeletedAllReportsTemplate() (title, body string) {
	return "All Reports Deleted",
		"All reports in the system have been deleted by an admin. If this was unexpected, please reach out to support."
}

func adminUpdatedReportTemplate(caseNumber string) (title, body string) {
	return "Report Updated",
		fmt.Sprintf("A report with ID %s has been updated by an admin. Please review the changes if necessary.", caseNumber)
}

func adminAddedReportTemplate(caseNumber string) (title, body string) {
	return "New Report Added",
		fmt.Sprintf("A new report with ID %s has been added by an admin. You can view the details in your account.", caseNumber)
}

// PasswordChangedMessage is the push shown after a successful password
// change.
func PasswordChangedMessage() (title, body string) {
	return "Password Changed",
		"Your account password has been successfully changed. If you didn't make this change, please contact support immediately."
}
