package services

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boyidapuvivek/CaptureRideBackend/models"
	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func TestGenerateOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateOTPCode(otpLength)
		require.NoError(t, err)
		assert.Len(t, code, otpLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit in %q", code)
		}
		seen[code] = true
	}
	// 20 draws from a million possibilities colliding into one value would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestValidateOTPRequest(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		purpose    string
		wantErr    string
		wantStatus int
	}{
		{"valid", "a@b.com", models.OtpPurposeEmailVerification, "", 0},
		{"valid reset", "x@y.org", models.OtpPurposePasswordReset, "", 0},
		{"missing email", "", models.OtpPurposeEmailVerification, utils.EMAIL_REQUIRED, http.StatusBadRequest},
		{"malformed email", "not-an-email", models.OtpPurposeEmailVerification, utils.INVALID_EMAIL, http.StatusBadRequest},
		{"email with spaces", "a b@c.com", models.OtpPurposeEmailVerification, utils.INVALID_EMAIL, http.StatusBadRequest},
		{"bad purpose", "a@b.com", "account_takeover", utils.INVALID_OTP_PURPOSE, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOTPRequest(tt.email, tt.purpose)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, tt.wantStatus, utils.StatusOf(err))
		})
	}
}

func TestOTPStatusJSONKeepsZeroAttemptsLeft(t *testing.T) {
	expired := false
	attemptsLeft := 0
	full := OTPStatus{
		Email:        "a@b.com",
		Purpose:      models.OtpPurposeEmailVerification,
		HasActiveOTP: true,
		IsExpired:    &expired,
		AttemptsLeft: &attemptsLeft,
	}
	data, err := json.Marshal(full)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"attemptsLeft":0`)
	assert.Contains(t, string(data), `"isExpired":false`)

	none := OTPStatus{Email: "a@b.com", Purpose: models.OtpPurposeEmailVerification}
	data, err = json.Marshal(none)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "attemptsLeft")
	assert.NotContains(t, string(data), "isExpired")
}

func TestOtpEmailTemplate(t *testing.T) {
	tests := []struct {
		purpose     string
		wantSubject string
	}{
		{models.OtpPurposeEmailVerification, "Verify Your Email Address"},
		{models.OtpPurposePasswordReset, "Reset Your Password"},
		{models.OtpPurposeLoginVerification, "Login Verification Code"},
		{"unknown", "Verify Your Email Address"},
	}
	for _, tt := range tests {
		t.Run(tt.purpose, func(t *testing.T) {
			subject, body := otpEmailTemplate("123456", tt.purpose)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Contains(t, body, "123456")
			assert.Contains(t, body, "expire in 10 minutes")
		})
	}
}
