package services

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/boyidapuvivek/CaptureRideBackend/models"
)

// Mailer delivers one-time passcodes. SMTP backs it in production.
type Mailer interface {
	SendOTPEmail(to, otp, purpose string) error
}

type EmailService struct {
	host     string
	port     int
	username string
	password string
	appName  string
}

func NewEmailService() *EmailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "CaptureRide"
	}
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		appName:  appName,
	}
}

func (s *EmailService) SendOTPEmail(to, otp, purpose string) error {
	subject, body := otpEmailTemplate(otp, purpose)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.username, s.appName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}

func otpEmailTemplate(otp, purpose string) (subject, body string) {
	switch purpose {
	case models.OtpPurposePasswordReset:
		subject = "Reset Your Password"
		body = otpEmailBody(
			"Password Reset",
			"We received a request to reset your password. Please use the following OTP to proceed:",
			"If you didn't request a password reset, please ignore this email and your password will remain unchanged.",
			otp,
		)
	case models.OtpPurposeLoginVerification:
		subject = "Login Verification Code"
		body = otpEmailBody(
			"Login Verification",
			"Someone is trying to log in to your account. If this is you, please use the following OTP:",
			"If this wasn't you, please secure your account immediately.",
			otp,
		)
	default:
		subject = "Verify Your Email Address"
		body = otpEmailBody(
			"Email Verification",
			"Thank you for registering with us! Please use the following OTP to verify your email address:",
			"If you didn't request this verification, please ignore this email.",
			otp,
		)
	}
	return subject, body
}

func otpEmailBody(heading, intro, footer, otp string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333; text-align: center;">%s</h2>
  <p style="color: #666; font-size: 16px;">%s</p>
  <div style="background-color: #f0f0f0; padding: 20px; text-align: center; border-radius: 5px;">
    <h1 style="font-size: 32px; margin: 0; letter-spacing: 8px;">%s</h1>
  </div>
  <p style="color: #666; font-size: 14px; text-align: center;">This OTP will expire in 10 minutes for security reasons.</p>
  <p style="color: #999; font-size: 12px; text-align: center;">%s</p>
</div>`, heading, intro, otp, footer)
}
