package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("agg_room")}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainroom.RoomID) (*domainroom.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainroom.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Save performs an optimistic version-checked upsert: two concurrent writers
// cannot both commit against the same version.
func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	doc := newRoomDocument(rm)
	filter := bson.M{"_id": doc.ID, "version": rm.Version}
	doc.Version = rm.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	rm.Version = doc.Version
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id domainroom.RoomID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	return err
}

type roomDocument struct {
	ID              string `bson:"_id"`
	AccommodationID string `bson:"accommodation_id"`
	Name            string `bson:"name"`
	Capacity        int    `bson:"capacity"`
	BasePrice       int64  `bson:"base_price"`
	Currency        string `bson:"currency"`
	CreatedAt       int64  `bson:"created_at"`
	UpdatedAt       int64  `bson:"updated_at"`
	Version         int64  `bson:"version"`
}

func newRoomDocument(rm *domainroom.Room) roomDocument {
	return roomDocument{
		ID:              string(rm.ID),
		AccommodationID: rm.AccommodationID,
		Name:            rm.Name,
		Capacity:        rm.Capacity,
		BasePrice:       rm.BasePrice.Amount,
		Currency:        rm.BasePrice.Currency,
		CreatedAt:       rm.CreatedAt.UnixMilli(),
		UpdatedAt:       rm.UpdatedAt.UnixMilli(),
		Version:         rm.Version,
	}
}

func (d roomDocument) toAggregate() *domainroom.Room {
	return &domainroom.Room{
		ID:              domainroom.RoomID(d.ID),
		AccommodationID: d.AccommodationID,
		Name:            d.Name,
		Capacity:        d.Capacity,
		BasePrice:       money.Money{Amount: d.BasePrice, Currency: d.Currency},
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func optionsReplaceUpsert() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}
