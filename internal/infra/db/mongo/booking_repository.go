package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "stayprice/internal/domain/booking"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
	"stayprice/internal/domain/shared/money"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking_request")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.RequestID) (*domainbooking.Request, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, req *domainbooking.Request) error {
	doc := newBookingDocument(req)
	filter := bson.M{"_id": doc.ID, "version": req.Version}
	doc.Version = req.Version + 1
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
	req.Version = doc.Version
	return nil
}

// FindOverlapping fetches every room line of requests whose stay overlaps
// [from, to). Status filtering is left to the availability checker.
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID domainroom.RoomID, from, to time.Time) ([]domainbooking.Occupancy, error) {
	filter := bson.M{
		"lines.room_id": string(roomID),
		"check_in":      bson.M{"$lt": to.UnixMilli()},
		"check_out":     bson.M{"$gt": from.UnixMilli()},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	var out []domainbooking.Occupancy
	for _, doc := range docs {
		dr := daterange.DateRange{CheckIn: timestampToTime(doc.CheckIn), CheckOut: timestampToTime(doc.CheckOut)}
		for _, line := range doc.Lines {
			if line.RoomID != string(roomID) {
				continue
			}
			out = append(out, domainbooking.Occupancy{
				Range:  dr,
				Status: domainbooking.Status(doc.Status),
				Units:  line.Units,
			})
		}
	}
	return out, nil
}

type bookingDocument struct {
	ID        string         `bson:"_id"`
	GuestID   string         `bson:"guest_id"`
	CheckIn   int64          `bson:"check_in"`
	CheckOut  int64          `bson:"check_out"`
	Status    string         `bson:"status"`
	Lines     []lineDocument `bson:"lines"`
	Total     int64          `bson:"total"`
	Currency  string         `bson:"currency"`
	CreatedAt int64          `bson:"created_at"`
	UpdatedAt int64          `bson:"updated_at"`
	Version   int64          `bson:"version"`
}

type lineDocument struct {
	RoomID string `bson:"room_id"`
	Units  int    `bson:"units"`
}

func newBookingDocument(req *domainbooking.Request) bookingDocument {
	lines := make([]lineDocument, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, lineDocument{RoomID: string(l.RoomID), Units: l.Units})
	}
	return bookingDocument{
		ID:        string(req.ID),
		GuestID:   req.GuestID,
		CheckIn:   req.Range.CheckIn.UnixMilli(),
		CheckOut:  req.Range.CheckOut.UnixMilli(),
		Status:    string(req.Status),
		Lines:     lines,
		Total:     req.Total.Amount,
		Currency:  req.Total.Currency,
		CreatedAt: req.CreatedAt.UnixMilli(),
		UpdatedAt: req.UpdatedAt.UnixMilli(),
		Version:   req.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Request {
	lines := make([]domainbooking.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, domainbooking.Line{RoomID: domainroom.RoomID(l.RoomID), Units: l.Units})
	}
	return &domainbooking.Request{
		ID:        domainbooking.RequestID(d.ID),
		GuestID:   d.GuestID,
		Range:     daterange.DateRange{CheckIn: timestampToTime(d.CheckIn), CheckOut: timestampToTime(d.CheckOut)},
		Lines:     lines,
		Status:    domainbooking.Status(d.Status),
		Total:     money.Money{Amount: d.Total, Currency: d.Currency},
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}
