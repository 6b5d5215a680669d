package service

import (
	"fmt"
	"net/smtp"
	"strings"
)

const emailFooter = `<hr style="border: 0; border-top: 1px solid #ddd; margin: 20px 0;">
<footer style="text-align: center; color: #999; font-size: 14px;">
  <p>Crime-GPT A Crime Reporting System | Nawabshah, Sindh, Pakistan</p>
</footer>`

// ReportMailer covers the report workflow's outbound mail.
type ReportMailer interface {
	SendReportConfirmation(fullName, email, caseNumber string) error
	SendReportStatusUpdate(fullName, email, caseNumber, status string) error
}

// AccountMailer covers the account lifecycle mail.
type AccountMailer interface {
	SendAccountVerification(fullName, email, verificationURL string) error
	SendLoginSuccess(fullName, email string) error
	SendPasswordReset(fullName, email, resetURL string) error
	SendPasswordChanged(fullName, email string) error
}

// EmailService sends templated HTML mail over SMTP. All sends are
// fire-and-forget from the caller's perspective; errors are for logging only.
type EmailService struct {
	host     string
	port     string
	from     string
	password string
}

func NewEmailService(host, port, from, password string) *EmailService {
	return &EmailService{host: host, port: port, from: from, password: password}
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	if s == nil || s.host == "" {
		return nil
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String()))
}

func (s *EmailService) SendAccountVerification(fullName, email, verificationURL string) error {
	subject := "Welcome to Crime-GPT - Activate Your Account!"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Welcome to Crime-GPT, %s!</h2>
  <p style="color: #555;">We're thrilled to have you on board! Your account has been successfully created, and you're just a step away from exploring all the features we offer.</p>
  <p style="color: #555;">Please click the button below to activate your account:</p>
  <div style="text-align: center; margin: 20px 0;">
    <a href="%s" style="background-color: rgb(16, 50, 86); color: #fff; text-decoration: none; padding: 10px 20px; border-radius: 5px; display: inline-block;">Activate My Account</a>
  </div>
  <p style="color: #555;">If you did not create this account, please ignore this email or contact our support team.</p>
  %s
</div>`, fullName, verificationURL, emailFooter)
	return s.send(email, subject, body)
}

func (s *EmailService) SendLoginSuccess(fullName, email string) error {
	subject := "Successful Login to Crime-GPT!"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Hello %s, you've successfully logged in!</h2>
  <p style="color: #555;">We just wanted to confirm that you have successfully logged into your Crime-GPT account.</p>
  <p style="color: #555;">If this wasn't you, or if you suspect any unusual activity, please reset your password immediately and contact our support team.</p>
  %s
</div>`, fullName, emailFooter)
	return s.send(email, subject, body)
}

func (s *EmailService) SendPasswordReset(fullName, email, resetURL string) error {
	subject := "Reset Your Crime-GPT Password"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Hello %s,</h2>
  <p style="color: #555;">We received a request to reset your Crime-GPT account password. If you made this request, please click the button below:</p>
  <div style="text-align: center; margin: 20px 0;">
    <a href="%s" style="background-color: rgb(16, 50, 86); color: #fff; text-decoration: none; padding: 10px 20px; border-radius: 5px; display: inline-block;">Reset Password</a>
  </div>
  <p style="color: #555;">If you didn't request a password reset, please ignore this email. Your password will remain unchanged.</p>
  %s
</div>`, fullName, resetURL, emailFooter)
	return s.send(email, subject, body)
}

func (s *EmailService) SendPasswordChanged(fullName, email string) error {
	subject := "Your Crime-GPT Password Has Been Changed"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Hello %s,</h2>
  <p style="color: #555;">We wanted to inform you that your Crime-GPT account password has been successfully changed.</p>
  <p style="color: #555;">If you did not make this change, please contact our support team immediately.</p>
  %s
</div>`, fullName, emailFooter)
	return s.send(email, subject, body)
}

func (s *EmailService) SendReportConfirmation(fullName, email, caseNumber string) error {
	subject := "Your Crime Report Has Been Received"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Hello %s,</h2>
  <p style="color: #555;">We wanted to confirm that your crime report has been successfully received. Your report number is <strong>#%s</strong>.</p>
  <p style="color: #555;">Our team will review your report and take appropriate action. If you need to update or add any details, feel free to reach out to us.</p>
  <p style="color: #555;">Thank you for helping us make our community safer!</p>
  %s
</div>`, fullName, caseNumber, emailFooter)
	return s.send(email, subject, body)
}

func (s *EmailService) SendReportStatusUpdate(fullName, email, caseNumber, status string) error {
	subject := "Your Crime Report Has Been Updated"
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Hello %s,</h2>
  <p style="color: #555;">We wanted to inform you that the status of your crime report has been updated. Your report number is <strong>#%s</strong>.</p>
  <p style="color: #555;">The new status of your report is: <strong>%s</strong>.</p>
  <p style="color: #555;">Our team has reviewed the details, and we are working on taking the appropriate action.</p>
  %s
</div>`, fullName, caseNumber, status, emailFooter)
	return s.send(email, subject, body)
}
