package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicPhotoIDs(t *testing.T) {
	tests := []struct {
		name string
		ride Ride
		want []string
	}{
		{
			name: "all pending yields nothing",
			ride: Ride{
				AadharPublicPhoto:   PhotoPending,
				DlPublicPhoto:       PhotoPending,
				CustomerPublicPhoto: PhotoPending,
			},
			want: nil,
		},
		{
			name: "partial upload yields only the settled slots",
			ride: Ride{
				AadharPublicPhoto:   "ride_documents/a",
				DlPublicPhoto:       PhotoPending,
				CustomerPublicPhoto: "ride_documents/c",
			},
			want: []string{"ride_documents/a", "ride_documents/c"},
		},
		{
			name: "empty fields are skipped too",
			ride: Ride{},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ride.PublicPhotoIDs())
		})
	}
}
