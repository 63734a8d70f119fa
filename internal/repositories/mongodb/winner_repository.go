package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/raffleworks/sorteo-backend/internal/models"
	"github.com/raffleworks/sorteo-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// Create creates a new winner
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, winner)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		winner.ID = id
	}
	return nil
}

// FindByID finds a winner by ID
func (r *WinnerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error) {
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&winner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &winner, nil
}

// FindByPrizeID finds winners for a prize
func (r *WinnerRepository) FindByPrizeID(ctx context.Context, prizeID primitive.ObjectID) ([]*models.Winner, error) {
	return r.find(ctx, bson.M{"prizeId": prizeID})
}

// FindByParticipantID finds winners for a participant
func (r *WinnerRepository) FindByParticipantID(ctx context.Context, participantID primitive.ObjectID) ([]*models.Winner, error) {
	return r.find(ctx, bson.M{"participantId": participantID})
}

// FindAll finds all winners in draw order
func (r *WinnerRepository) FindAll(ctx context.Context) ([]*models.Winner, error) {
	return r.find(ctx, bson.M{})
}

func (r *WinnerRepository) find(ctx context.Context, filter bson.M) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"drawDate": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	winners := make([]*models.Winner, 0)
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// Delete deletes a winner
func (r *WinnerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteAll deletes all winners
func (r *WinnerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// Count counts all winners
func (r *WinnerRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
