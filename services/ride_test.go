package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boyidapuvivek/CaptureRideBackend/utils"
)

func validInput() RideInput {
	return RideInput{
		RoomNumber:    "101",
		CustomerName:  "Jane",
		PhoneNumber:   "5551234",
		VehicleNumber: "KA01AB1234",
	}
}

func TestValidateRideInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RideInput, *RidePhotos)
		wantErr string
	}{
		{"valid", func(*RideInput, *RidePhotos) {}, ""},
		{"empty room", func(in *RideInput, _ *RidePhotos) { in.RoomNumber = "" }, utils.ALL_FIELDS_REQUIRED},
		{"whitespace name", func(in *RideInput, _ *RidePhotos) { in.CustomerName = "   " }, utils.ALL_FIELDS_REQUIRED},
		{"empty phone", func(in *RideInput, _ *RidePhotos) { in.PhoneNumber = "" }, utils.ALL_FIELDS_REQUIRED},
		{"empty vehicle", func(in *RideInput, _ *RidePhotos) { in.VehicleNumber = "" }, utils.ALL_FIELDS_REQUIRED},
		{"missing aadhar", func(_ *RideInput, p *RidePhotos) { p.Aadhar = PhotoFile{} }, utils.ALL_PHOTOS_REQUIRED},
		{"missing dl", func(_ *RideInput, p *RidePhotos) { p.Dl = PhotoFile{} }, utils.ALL_PHOTOS_REQUIRED},
		{"missing customer", func(_ *RideInput, p *RidePhotos) { p.Customer = PhotoFile{} }, utils.ALL_PHOTOS_REQUIRED},
		{"empty customer bytes", func(_ *RideInput, p *RidePhotos) { p.Customer.Data = nil }, utils.EMPTY_PHOTO_UPLOAD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			photos := testPhotos()
			tt.mutate(&input, &photos)

			err := validateRideInput(input, photos)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		page, limit int
		want        Pagination
	}{
		{"empty", 0, 1, 10, Pagination{CurrentPage: 1, TotalPages: 0, TotalRides: 0, HasNext: false, HasPrev: false}},
		{"single page", 7, 1, 10, Pagination{CurrentPage: 1, TotalPages: 1, TotalRides: 7, HasNext: false, HasPrev: false}},
		{"first of three", 25, 1, 10, Pagination{CurrentPage: 1, TotalPages: 3, TotalRides: 25, HasNext: true, HasPrev: false}},
		{"middle", 25, 2, 10, Pagination{CurrentPage: 2, TotalPages: 3, TotalRides: 25, HasNext: true, HasPrev: true}},
		{"last", 25, 3, 10, Pagination{CurrentPage: 3, TotalPages: 3, TotalRides: 25, HasNext: false, HasPrev: true}},
		{"exact boundary", 20, 2, 10, Pagination{CurrentPage: 2, TotalPages: 2, TotalRides: 20, HasNext: false, HasPrev: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.total, tt.page, tt.limit))
		})
	}
}

func TestBuildRideFilter(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("no search scopes to owner only", func(t *testing.T) {
		filter := buildRideFilter(userID, "  ")
		assert.Equal(t, bson.M{"userId": userID}, filter)
	})

	t.Run("search adds case-insensitive or across the four fields", func(t *testing.T) {
		filter := buildRideFilter(userID, "KA01")
		assert.Equal(t, userID, filter["userId"])

		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 4)

		seen := map[string]bool{}
		for _, clause := range or {
			m := clause.(bson.M)
			for field, v := range m {
				re := v.(primitive.Regex)
				assert.Equal(t, "KA01", re.Pattern)
				assert.Equal(t, "i", re.Options)
				seen[field] = true
			}
		}
		for _, field := range []string{"customerName", "roomNumber", "phoneNumber", "vehicleNumber"} {
			assert.True(t, seen[field], field)
		}
	})

	t.Run("regex metacharacters are escaped", func(t *testing.T) {
		filter := buildRideFilter(userID, "a.b*")
		or := filter["$or"].(bson.A)
		re := or[0].(bson.M)["customerName"].(primitive.Regex)
		assert.Equal(t, `a\.b\*`, re.Pattern)
	})
}
