package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skymovel/app-core/internal/core/domain"
	"github.com/skymovel/app-core/internal/core/ports"
)

const requestsCollection = "service_requests"

// RequestRepository implements ports.ServiceRequestRepository using MongoDB.
// It is the local audit trail of requests created through this process.
type RequestRepository struct {
	db *mongo.Database
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(db *mongo.Database) ports.ServiceRequestRepository {
	return &RequestRepository{db: db}
}

// Insert persists a history item. Duplicate protocols are rejected by the
// unique index; callers treat insert failures as non-fatal.
func (r *RequestRepository) Insert(ctx context.Context, item *domain.ServiceRequestHistoryItem) error {
	_, err := r.db.Collection(requestsCollection).InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("insert service request: %w", err)
	}
	return nil
}

// ListByCustomer returns the customer's audit trail, newest first.
func (r *RequestRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.ServiceRequestHistoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.db.Collection(requestsCollection).Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.ServiceRequestHistoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode service requests: %w", err)
	}
	return items, nil
}

// EnsureIndexes creates the indexes the repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(requestsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "protocol", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
