package recordsRepo

import (
	"context"
	"errors"
	"fmt"

	"fayano/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrRecordNotFound is returned when no booking record matches.
var ErrRecordNotFound = errors.New("booking record not found")

const defaultListLimit = 50

// Create stores rec keyed by its session ID. A retried submission for the
// same session replaces the earlier copy.
func (r *mongoRecordRepo) Create(ctx context.Context, rec *models.BookingRecord) error {
	if rec.ID == "" {
		return errors.New("booking record needs a session id")
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": rec.ID}, rec, opts); err != nil {
		return fmt.Errorf("failed to store booking record: %w", err)
	}
	return nil
}

func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByClient returns the client's bookings, newest first.
func (r *mongoRecordRepo) ListByClient(ctx context.Context, clientID string, limit int64) ([]models.BookingRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"clientId": clientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.BookingRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
