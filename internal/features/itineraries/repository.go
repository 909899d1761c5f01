package itineraries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("itineraries")

	// shareToken is globally unique when present
	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{
			Keys:    bson.D{{Key: "shareToken", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, itinerary *Itinerary) error {
	itinerary.CreatedAt = time.Now()
	itinerary.UpdatedAt = time.Now()

	if itinerary.Locations == nil {
		itinerary.Locations = []Location{}
	}

	result, err := r.collection.InsertOne(ctx, itinerary)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		itinerary.ID = oid
	}
	return nil
}

// GetByID returns the itinerary only when it is owned by userID; a missing
// document and an ownership mismatch are both (nil, nil) so callers cannot
// distinguish them.
func (r *Repository) GetByID(ctx context.Context, id, userID string) (*Itinerary, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid itinerary ID")
	}

	var itinerary Itinerary
	err = r.collection.FindOne(ctx, bson.M{
		"_id":    objectID,
		"userId": userID,
	}).Decode(&itinerary)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *Repository) Update(ctx context.Context, id, userID string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid itinerary ID")
	}

	update["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "userId": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("itinerary not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid itinerary ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":    objectID,
		"userId": userID,
	})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return errors.New("itinerary not found")
	}
	return nil
}

func (r *Repository) List(ctx context.Context, userID string, limit int) ([]Itinerary, error) {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var itineraries []Itinerary
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, err
	}

	if itineraries == nil {
		itineraries = []Itinerary{}
	}
	return itineraries, nil
}

func (r *Repository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

// UpdateLocationStatus sets the status of the stop at the given array index.
// The $exists filter rejects out-of-range indexes instead of growing the array.
func (r *Repository) UpdateLocationStatus(ctx context.Context, id, userID string, index int, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid itinerary ID")
	}

	positional := fmt.Sprintf("locations.%d", index)
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":      objectID,
			"userId":   userID,
			positional: bson.M{"$exists": true},
		},
		bson.M{"$set": bson.M{
			positional + ".status": status,
			"updatedAt":            time.Now(),
		}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("itinerary or location not found")
	}
	return nil
}

// FindByToken looks an itinerary up by share token among shared itineraries
// only. Tokens of unshared itineraries are cleared on unshare, and the
// isShared filter keeps a stale token from resolving either way.
func (r *Repository) FindByToken(ctx context.Context, shareToken string) (*Itinerary, error) {
	if shareToken == "" {
		return nil, nil
	}

	var itinerary Itinerary
	err := r.collection.FindOne(ctx, bson.M{
		"shareToken": shareToken,
		"isShared":   true,
	}).Decode(&itinerary)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

// SaveShareState persists only the share fields of the itinerary.
func (r *Repository) SaveShareState(ctx context.Context, itinerary *Itinerary) error {
	update := bson.M{
		"isShared":   itinerary.IsShared,
		"sharedWith": itinerary.SharedWith,
		"updatedAt":  time.Now(),
	}

	var unset bson.M
	if itinerary.IsShared {
		update["shareToken"] = itinerary.ShareToken
		update["sharePassword"] = itinerary.SharePassword
	} else {
		unset = bson.M{"shareToken": "", "sharePassword": ""}
	}

	change := bson.M{"$set": update}
	if unset != nil {
		change["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": itinerary.ID, "userId": itinerary.UserID},
		change,
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("itinerary not found")
	}
	return nil
}
