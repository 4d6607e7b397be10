package itinerary

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository is a MongoDB implementation of Repository. Documents live
// in a single collection keyed by itinerary_id and scoped by owner_id, the
// document-store analogue of a per-user itinerary subcollection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a new MongoDB itinerary repository.
func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// Create stores a new document.
func (r *MongoRepository) Create(ctx context.Context, it *Itinerary) error {
	_, err := r.coll.InsertOne(ctx, it)
	return err
}

// ListByOwner returns all of an owner's itineraries, newest first. Sorting
// on created_at descending places documents missing the field last, which
// matches the "no creation time sorts as oldest" contract.
func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Itinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*Itinerary
	for cursor.Next(ctx) {
		var it Itinerary
		if err := cursor.Decode(&it); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// GetByOwnerAndID returns a single document.
func (r *MongoRepository) GetByOwnerAndID(ctx context.Context, ownerID, itineraryID string) (*Itinerary, error) {
	filter := bson.M{"itinerary_id": itineraryID, "owner_id": ownerID}

	var it Itinerary
	err := r.coll.FindOne(ctx, filter).Decode(&it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}

	return &it, nil
}

// Update merges the mutable fields into the stored document. Creator
// identity and creation time are deliberately absent from the $set.
func (r *MongoRepository) Update(ctx context.Context, it *Itinerary) error {
	filter := bson.M{"itinerary_id": it.ID, "owner_id": it.OwnerID}
	update := bson.M{"$set": bson.M{
		"title":         it.Title,
		"info":          it.Info,
		"destination":   it.Destination,
		"month":         it.Month,
		"days":          it.Days,
		"accommodation": it.Accommodation,
		"budget":        it.Budget,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrItineraryNotFound
	}

	return nil
}

// Delete permanently removes a document.
func (r *MongoRepository) Delete(ctx context.Context, ownerID, itineraryID string) error {
	filter := bson.M{"itinerary_id": itineraryID, "owner_id": ownerID}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrItineraryNotFound
	}

	return nil
}

// Ensure MongoRepository implements Repository interface.
var _ Repository = (*MongoRepository)(nil)
