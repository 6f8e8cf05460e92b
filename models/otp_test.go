package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPIsExpired(t *testing.T) {
	assert.False(t, OTP{ExpiresAt: time.Now().Add(time.Minute)}.IsExpired())
	assert.True(t, OTP{ExpiresAt: time.Now().Add(-time.Minute)}.IsExpired())
}

func TestOTPAttempts(t *testing.T) {
	assert.Equal(t, 3, OTP{Attempts: 0}.AttemptsLeft())
	assert.Equal(t, 1, OTP{Attempts: 2}.AttemptsLeft())
	assert.Equal(t, 0, OTP{Attempts: 3}.AttemptsLeft())
	assert.Equal(t, 0, OTP{Attempts: 5}.AttemptsLeft())

	assert.False(t, OTP{Attempts: 2}.IsAttemptsExhausted())
	assert.True(t, OTP{Attempts: 3}.IsAttemptsExhausted())
}

func TestIsValidOtpPurpose(t *testing.T) {
	assert.True(t, IsValidOtpPurpose(OtpPurposeEmailVerification))
	assert.True(t, IsValidOtpPurpose(OtpPurposePasswordReset))
	assert.True(t, IsValidOtpPurpose(OtpPurposeLoginVerification))
	assert.False(t, IsValidOtpPurpose(""))
	assert.False(t, IsValidOtpPurpose("something_else"))
}
