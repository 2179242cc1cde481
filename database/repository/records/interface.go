package recordsRepo

import (
	"context"

	"fayano/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "bookings"

// BookingRecordRepository is the durable ledger of accepted bookings.
type BookingRecordRepository interface {
	Create(ctx context.Context, rec *models.BookingRecord) error
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	ListByClient(ctx context.Context, clientID string, limit int64) ([]models.BookingRecord, error)
	EnsureIndexes() error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a BookingRecordRepository backed by client.
func NewMongoRecordRepo(client *mongo.Client, dbName string) BookingRecordRepository {
	return &mongoRecordRepo{
		coll: client.Database(dbName).Collection(collectionName),
	}
}
