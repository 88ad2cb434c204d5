package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roadwaysledger/models"
)

type MongoInitialRepo struct {
	DB *mongo.Database
}

func NewMongoInitialRepo(db *mongo.Database) *MongoInitialRepo {
	return &MongoInitialRepo{DB: db}
}

// SaveInitial upserts the profile document.
func (r *MongoInitialRepo) SaveInitial(ctx context.Context, p *models.CompanyProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.ID == 0 {
		id, err := nextSequence(ctx, r.DB, "company_profile")
		if err != nil {
			return err
		}
		p.ID = id
	}
	p.Phones = phonesOrEmpty(p.Phones)

	_, err := r.DB.Collection("company_profile").ReplaceOne(ctx,
		bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoInitialRepo) GetInitial(ctx context.Context) (*models.CompanyProfile, error) {
	p := &models.CompanyProfile{}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	err := r.DB.Collection("company_profile").FindOne(ctx, bson.M{}, opts).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
