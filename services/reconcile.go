package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boyidapuvivek/CaptureRideBackend/models"
)

// UploadFailedMessage is recorded on a ride's per-photo error field when that
// upload does not settle successfully.
const UploadFailedMessage = "Upload Failed"

// PhotoFile is one raw upload handed off from the intake request.
type PhotoFile struct {
	Name string
	Data []byte
}

// RidePhotos are the three document photos a ride is registered with.
type RidePhotos struct {
	Aadhar   PhotoFile
	Dl       PhotoFile
	Customer PhotoFile
}

// UploadOutcome is the settled result of one photo upload: either an uploaded
// asset (URL plus deletable public id) or a failure.
type UploadOutcome struct {
	URL      string
	PublicID string
	Err      error
}

func (o UploadOutcome) Failed() bool {
	return o.Err != nil
}

// Slot order inside a [3]UploadOutcome: aadhar, dl, customer.
const (
	slotAadhar = iota
	slotDl
	slotCustomer
)

var slotFields = [3]struct {
	photo       string
	publicPhoto string
	photoError  string
}{
	slotAadhar:   {"aadharPhoto", "aadharPublicPhoto", "aadharPhotoError"},
	slotDl:       {"dlPhoto", "dlPublicPhoto", "dlPhotoError"},
	slotCustomer: {"customerPhoto", "customerPublicPhoto", "customerPhotoError"},
}

// RideUpdater applies the single terminal reconciliation update to a ride.
// It is the only mutation path a ride has after creation.
type RideUpdater interface {
	ApplyReconcileUpdate(ctx context.Context, rideID primitive.ObjectID, update bson.M) error
}

// Reconciler drives a registered ride's three photo uploads to completion and
// commits exactly one terminal status update.
type Reconciler struct {
	Uploads Uploader
	Rides   RideUpdater
}

func NewReconciler(uploads Uploader, rides RideUpdater) *Reconciler {
	return &Reconciler{Uploads: uploads, Rides: rides}
}

/*
* Upload the three photos concurrently and wait for all of them to settle
* Build the terminal update from the settled outcomes
* Apply the update once; if that write fails there is no recovery, the ride
* stays in processing and the failure is only logged
* A panic anywhere in the orchestration marks the ride failed with the panic
* message in its error field
 */
// Run is invoked exactly once per ride, detached from the HTTP request that
// registered it. It is not safe to retry: a second run would re-upload photos
// already stored remotely.
func (r *Reconciler) Run(rideID primitive.ObjectID, photos RidePhotos) {
	ctx := context.Background()

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Background processing failed for ride %s: %v", rideID.Hex(), rec)
			r.recordFailure(ctx, rideID, rec)
		}
	}()

	outcomes := r.settleUploads(ctx, photos)

	update := BuildReconcileUpdate(outcomes)
	update["updatedAt"] = time.Now()

	if err := r.Rides.ApplyReconcileUpdate(ctx, rideID, update); err != nil {
		// Operational gap kept from the original design: the ride is now stuck
		// in processing with no automatic retry or alerting.
		log.Printf("Reconcile update failed for ride %s, ride left in processing: %v", rideID.Hex(), err)
		return
	}
	log.Printf("Background processing completed for ride %s", rideID.Hex())
}

// recordFailure writes the failed status after a recovered orchestration
// panic. The store may be the very thing that panicked, so this write runs
// under its own recover; a second panic here must not escape the goroutine.
func (r *Reconciler) recordFailure(ctx context.Context, rideID primitive.ObjectID, cause interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Failed to record failure for ride %s: %v", rideID.Hex(), rec)
		}
	}()

	update := bson.M{
		"status":    models.RideStatusFailed,
		"error":     fmt.Sprint(cause),
		"updatedAt": time.Now(),
	}
	if err := r.Rides.ApplyReconcileUpdate(ctx, rideID, update); err != nil {
		log.Printf("Failed to record failure for ride %s: %v", rideID.Hex(), err)
	}
}

// settleUploads fires the three uploads in parallel and collects every
// outcome; one upload failing never cancels or blocks the others. A panic
// inside a single upload is absorbed as that slot's failure.
func (r *Reconciler) settleUploads(ctx context.Context, photos RidePhotos) [3]UploadOutcome {
	files := [3]PhotoFile{
		slotAadhar:   photos.Aadhar,
		slotDl:       photos.Dl,
		slotCustomer: photos.Customer,
	}

	var outcomes [3]UploadOutcome
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int, file PhotoFile) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					outcomes[i] = UploadOutcome{Err: fmt.Errorf("upload panic: %v", rec)}
				}
			}()
			res, err := r.Uploads.Upload(ctx, file.Data, file.Name)
			if err != nil {
				log.Printf("Upload failed for %s: %v", file.Name, err)
				outcomes[i] = UploadOutcome{Err: err}
				return
			}
			outcomes[i] = UploadOutcome{URL: res.URL, PublicID: res.PublicID}
		}(i, files[i])
	}
	wg.Wait()
	return outcomes
}

// Classify reduces the three settled outcomes to the ride's terminal status.
// It is a pure function of the outcomes: any failed slot, up to and including
// all three, classifies as partial_failure; failed is reserved for errors in
// the orchestration itself.
func Classify(outcomes [3]UploadOutcome) string {
	for _, o := range outcomes {
		if o.Failed() {
			return models.RideStatusPartialFailure
		}
	}
	return models.RideStatusCompleted
}

// BuildReconcileUpdate turns the settled outcomes into the single terminal
// update applied to the ride. Successful slots get their URL and public id;
// failed slots get an error flag and keep their pending sentinel.
func BuildReconcileUpdate(outcomes [3]UploadOutcome) bson.M {
	update := bson.M{"status": Classify(outcomes)}
	for i, o := range outcomes {
		fields := slotFields[i]
		if o.Failed() {
			update[fields.photoError] = UploadFailedMessage
			continue
		}
		update[fields.photo] = o.URL
		update[fields.publicPhoto] = o.PublicID
	}
	return update
}
