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

// PrizeRepository implements the repositories.PrizeRepository interface
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// Create creates a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	now := time.Now()
	prize.CreatedAt = now
	prize.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, prize)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		prize.ID = id
	}
	return nil
}

// CreateMany creates a batch of prizes
func (r *PrizeRepository) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	if len(prizes) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(prizes))
	for _, p := range prizes {
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, inserted := range res.InsertedIDs {
		if id, ok := inserted.(primitive.ObjectID); ok && i < len(prizes) {
			prizes[i].ID = id
		}
	}
	return nil
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &prize, nil
}

// FindAll finds all prizes in insertion order
func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prizes := make([]*models.Prize, 0)
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// FindFirstUndrawn finds the oldest prize that has not been drawn yet
func (r *PrizeRepository) FindFirstUndrawn(ctx context.Context) (*models.Prize, error) {
	opts := options.FindOne().SetSort(bson.M{"createdAt": 1})
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"drawn": false}, opts).Decode(&prize)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &prize, nil
}

// Update updates a prize
func (r *PrizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	prize.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": prize.ID}, prize)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetDrawn conditionally flips the drawn flag
func (r *PrizeRepository) SetDrawn(ctx context.Context, id primitive.ObjectID, drawn bool) (bool, error) {
	filter := bson.M{"_id": id, "drawn": !drawn}
	update := bson.M{"$set": bson.M{"drawn": drawn, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// ResetAllDrawn clears the drawn flag on every prize
func (r *PrizeRepository) ResetAllDrawn(ctx context.Context) error {
	update := bson.M{"$set": bson.M{"drawn": false, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateMany(ctx, bson.M{}, update)
	return err
}

// Delete deletes a prize
func (r *PrizeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteAll deletes all prizes
func (r *PrizeRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// Count counts all prizes
func (r *PrizeRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountDrawn counts prizes that have been drawn
func (r *PrizeRepository) CountDrawn(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"drawn": true})
}
