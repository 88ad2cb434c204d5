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

type MongoUserRepo struct {
	DB *mongo.Database
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.DB.Collection("app_user").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	user.Username = normalizeUsername(user.Username)
	if err := HashPassword(user); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	id, err := nextSequence(ctx, r.DB, "app_user")
	if err != nil {
		return err
	}
	user.ID = id

	if _, err := r.DB.Collection("app_user").InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
		}
		return err
	}
	return nil
}

func (r *MongoUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.DB.Collection("app_user").
		FindOne(ctx, bson.M{"username": normalizeUsername(username)}).Decode(user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
