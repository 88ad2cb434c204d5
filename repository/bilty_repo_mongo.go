package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roadwaysledger/models"
)

type MongoBiltyRepo struct {
	DB *mongo.Database
}

func NewMongoBiltyRepo(db *mongo.Database) *MongoBiltyRepo {
	return &MongoBiltyRepo{DB: db}
}

// biltyDoc is the stored shape; quantities are kept as decimal text.
type biltyDoc struct {
	ID             int64     `bson:"_id"`
	BiltySlNo      string    `bson:"bilty_sl_no"`
	LRNo           string    `bson:"lr_no"`
	BillNo         string    `bson:"bill_no"`
	BillDate       string    `bson:"bill_date,omitempty"`
	TruckNo        string    `bson:"truck_no"`
	Destination    string    `bson:"destination"`
	Weight         *string   `bson:"weight"`
	Freight        *string   `bson:"freight"`
	Diesel         *string   `bson:"diesel"`
	TotalAdv       *string   `bson:"total_adv"`
	Balance        *string   `bson:"balance"`
	PumpName       string    `bson:"pump_name"`
	PaymentOfficer string    `bson:"payment_officer"`
	DamageIfAny    string    `bson:"damage_if_any"`
	Margin         *string   `bson:"margin"`
	DateAdded      time.Time `bson:"date_added"`
}

func qtyToDoc(q models.Quantity) *string {
	if !q.Valid {
		return nil
	}
	s := q.Amount.String()
	return &s
}

func qtyFromDoc(s *string) models.Quantity {
	if s == nil {
		return models.Quantity{}
	}
	return models.ParseQuantity(*s)
}

func toBiltyDoc(b *models.Bilty) biltyDoc {
	added, _ := b.DateAdded.Time()
	return biltyDoc{
		ID:             b.ID,
		BiltySlNo:      b.BiltySlNo,
		LRNo:           b.LRNo,
		BillNo:         b.BillNo,
		BillDate:       b.BillDate.DateOnly(),
		TruckNo:        b.TruckNo,
		Destination:    b.Destination,
		Weight:         qtyToDoc(b.Weight),
		Freight:        qtyToDoc(b.Freight),
		Diesel:         qtyToDoc(b.Diesel),
		TotalAdv:       qtyToDoc(b.TotalAdv),
		Balance:        qtyToDoc(b.Balance),
		PumpName:       b.PumpName,
		PaymentOfficer: b.PaymentOfficer,
		DamageIfAny:    b.DamageIfAny,
		Margin:         qtyToDoc(b.Margin),
		DateAdded:      added.UTC(),
	}
}

func (d *biltyDoc) model() *models.Bilty {
	return &models.Bilty{
		ID:             d.ID,
		BiltySlNo:      d.BiltySlNo,
		LRNo:           d.LRNo,
		BillNo:         d.BillNo,
		BillDate:       models.Date(d.BillDate),
		TruckNo:        d.TruckNo,
		Destination:    d.Destination,
		Weight:         qtyFromDoc(d.Weight),
		Freight:        qtyFromDoc(d.Freight),
		Diesel:         qtyFromDoc(d.Diesel),
		TotalAdv:       qtyFromDoc(d.TotalAdv),
		Balance:        qtyFromDoc(d.Balance),
		PumpName:       d.PumpName,
		PaymentOfficer: d.PaymentOfficer,
		DamageIfAny:    d.DamageIfAny,
		Margin:         qtyFromDoc(d.Margin),
		DateAdded:      models.DateFromTime(d.DateAdded),
	}
}

// EnsureIndexes creates the unique serial number index.
func (r *MongoBiltyRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.DB.Collection("bilty").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bilty_sl_no", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoBiltyRepo) ListBilty(ctx context.Context) ([]*models.Bilty, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_added", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.DB.Collection("bilty").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Bilty{}
	for cur.Next(ctx) {
		var d biltyDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.model())
	}
	return out, cur.Err()
}

func (r *MongoBiltyRepo) GetBilty(ctx context.Context, id int64) (*models.Bilty, error) {
	var d biltyDoc
	err := r.DB.Collection("bilty").FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *MongoBiltyRepo) CreateBilty(ctx context.Context, bilty *models.Bilty) error {
	id, err := nextSequence(ctx, r.DB, "bilty")
	if err != nil {
		return err
	}
	bilty.ID = id
	if bilty.DateAdded.IsZero() {
		bilty.DateAdded = models.DateFromTime(time.Now())
	}

	doc := toBiltyDoc(bilty)
	if _, err := r.DB.Collection("bilty").InsertOne(ctx, doc); err != nil {
		bilty.ID = 0
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: bilty_sl_no %q", ErrDuplicate, bilty.BiltySlNo)
		}
		return err
	}
	*bilty = *doc.model()
	return nil
}

func (r *MongoBiltyRepo) UpdateBilty(ctx context.Context, bilty *models.Bilty) error {
	doc := toBiltyDoc(bilty)
	set := bson.M{
		"lr_no":           doc.LRNo,
		"bill_no":         doc.BillNo,
		"bill_date":       doc.BillDate,
		"truck_no":        doc.TruckNo,
		"destination":     doc.Destination,
		"weight":          doc.Weight,
		"freight":         doc.Freight,
		"diesel":          doc.Diesel,
		"total_adv":       doc.TotalAdv,
		"balance":         doc.Balance,
		"pump_name":       doc.PumpName,
		"payment_officer": doc.PaymentOfficer,
		"damage_if_any":   doc.DamageIfAny,
		"margin":          doc.Margin,
	}

	var updated biltyDoc
	err := r.DB.Collection("bilty").FindOneAndUpdate(ctx,
		bson.M{"_id": bilty.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	*bilty = *updated.model()
	return nil
}

func (r *MongoBiltyRepo) DeleteBilty(ctx context.Context, id int64) error {
	res, err := r.DB.Collection("bilty").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// nextSequence hands out integer ids from the counters collection so Mongo
// records keep the same numeric id contract as the SQL stores.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return counter.Seq, nil
}
