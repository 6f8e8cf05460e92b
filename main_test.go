package main

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boyidapuvivek/CaptureRideBackend/services"
)

type noopUploader struct{}

func (noopUploader) Upload(context.Context, []byte, string) (*services.UploadResult, error) {
	return &services.UploadResult{}, nil
}

func (noopUploader) Destroy(context.Context, string) error { return nil }

type noopMailer struct{}

func (noopMailer) SendOTPEmail(string, string, string) error { return nil }

func TestBuildRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := services.NewReconciler(noopUploader{}, services.NewRideStore())
	r := buildRouter(rec, noopUploader{}, noopMailer{})

	require.NotNil(t, r)
	assert.NotEmpty(t, r.Routes())
}
