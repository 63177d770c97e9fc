package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
)

// RateStore persists rate intervals in the rate_intervals collection. The
// queries stay simple range/equality filters; all reconciliation logic lives
// in the domain layer.
type RateStore struct {
	col *mongo.Collection
}

func NewRateStore(db *mongo.Database) *RateStore {
	return &RateStore{col: db.Collection("rate_intervals")}
}

func (s *RateStore) Find(ctx context.Context, roomID domainroom.RoomID, kind domainrate.Kind, dayType domainrate.DayType) ([]domainrate.Interval, error) {
	return s.find(ctx, bson.M{"room_id": string(roomID), "kind": string(kind), "day_type": string(dayType)})
}

func (s *RateStore) FindByFrom(ctx context.Context, roomID domainroom.RoomID, kind domainrate.Kind, dayType domainrate.DayType, from time.Time) ([]domainrate.Interval, error) {
	return s.find(ctx, bson.M{"room_id": string(roomID), "kind": string(kind), "day_type": string(dayType), "from": from.UnixMilli()})
}

func (s *RateStore) FindByTo(ctx context.Context, roomID domainroom.RoomID, kind domainrate.Kind, dayType domainrate.DayType, to time.Time) ([]domainrate.Interval, error) {
	return s.find(ctx, bson.M{"room_id": string(roomID), "kind": string(kind), "day_type": string(dayType), "to": to.UnixMilli()})
}

func (s *RateStore) find(ctx context.Context, filter bson.M) ([]domainrate.Interval, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []intervalDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domainrate.Interval, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toInterval())
	}
	return out, nil
}

func (s *RateStore) Save(ctx context.Context, iv domainrate.Interval) (domainrate.Interval, error) {
	doc := newIntervalDocument(iv)
	opts := optionsReplaceUpsert()
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return domainrate.Interval{}, err
	}
	return iv, nil
}

func (s *RateStore) SaveAll(ctx context.Context, ivs []domainrate.Interval) error {
	for _, iv := range ivs {
		if _, err := s.Save(ctx, iv); err != nil {
			return err
		}
	}
	return nil
}

func (s *RateStore) Delete(ctx context.Context, iv domainrate.Interval) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": iv.ID})
	return err
}

func (s *RateStore) DeleteAll(ctx context.Context, ivs []domainrate.Interval) error {
	if len(ivs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ivs))
	for _, iv := range ivs {
		ids = append(ids, iv.ID)
	}
	_, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (s *RateStore) DeleteByRoom(ctx context.Context, roomID domainroom.RoomID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"room_id": string(roomID)})
	return err
}

type intervalDocument struct {
	ID      string `bson:"_id"`
	RoomID  string `bson:"room_id"`
	Kind    string `bson:"kind"`
	DayType string `bson:"day_type"`
	Amount  int    `bson:"amount"`
	From    int64  `bson:"from"`
	To      int64  `bson:"to"`
}

func newIntervalDocument(iv domainrate.Interval) intervalDocument {
	doc := intervalDocument{
		ID:      iv.ID,
		RoomID:  string(iv.RoomID),
		Kind:    string(iv.Kind),
		DayType: string(iv.DayType),
		Amount:  iv.Amount,
	}
	if !iv.From.IsZero() {
		doc.From = iv.From.UnixMilli()
	}
	if !iv.To.IsZero() {
		doc.To = iv.To.UnixMilli()
	}
	return doc
}

func (d intervalDocument) toInterval() domainrate.Interval {
	iv := domainrate.Interval{
		ID:      d.ID,
		RoomID:  domainroom.RoomID(d.RoomID),
		Kind:    domainrate.Kind(d.Kind),
		DayType: domainrate.DayType(d.DayType),
		Amount:  d.Amount,
	}
	if d.From != 0 {
		iv.From = timestampToTime(d.From)
	}
	if d.To != 0 {
		iv.To = timestampToTime(d.To)
	}
	return iv
}
