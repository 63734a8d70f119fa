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

// ParticipantRepository implements the repositories.ParticipantRepository interface
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// Create creates a new participant
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	now := time.Now()
	participant.CreatedAt = now
	participant.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, participant)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		participant.ID = id
	}
	return nil
}

// CreateMany creates a batch of participants
func (r *ParticipantRepository) CreateMany(ctx context.Context, participants []*models.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(participants))
	for _, p := range participants {
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, inserted := range res.InsertedIDs {
		if id, ok := inserted.(primitive.ObjectID); ok && i < len(participants) {
			participants[i].ID = id
		}
	}
	return nil
}

// FindByID finds a participant by ID
func (r *ParticipantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// FindByCedula finds a participant by cedula
func (r *ParticipantRepository) FindByCedula(ctx context.Context, cedula string) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"cedula": cedula}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// FindByTicketNumber finds a participant by ticket number
func (r *ParticipantRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"ticketNumber": ticketNumber}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// FindAll finds all participants in insertion order
func (r *ParticipantRepository) FindAll(ctx context.Context) ([]*models.Participant, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	participants := make([]*models.Participant, 0)
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// Update updates a participant
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	participant.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": participant.ID}, participant)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetActive conditionally flips the active flag
func (r *ParticipantRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error) {
	filter := bson.M{"_id": id, "active": !active}
	update := bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// SetActiveByIDs marks the given participants active
func (r *ParticipantRepository) SetActiveByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{"active": true, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// Delete deletes a participant
func (r *ParticipantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteAll deletes all participants
func (r *ParticipantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// Count counts all participants
func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountActive counts active participants
func (r *ParticipantRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"active": true})
}
