package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

type PortfolioRepository interface {
	FindByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Portfolio, error)
	Insert(ctx context.Context, portfolio *models.Portfolio) error
	ReplaceByOwner(ctx context.Context, portfolio *models.Portfolio) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error
}

type mongoPortfolioRepository struct {
	coll *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) PortfolioRepository {
	return &mongoPortfolioRepository{coll: db.Collection("portfolios")}
}

func (r *mongoPortfolioRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.coll.FindOne(ctx, bson.M{"user": owner}).Decode(&portfolio)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("Portfolio")
		}
		return nil, models.NewInternalError(err)
	}
	return &portfolio, nil
}

func (r *mongoPortfolioRepository) Insert(ctx context.Context, portfolio *models.Portfolio) error {
	now := time.Now().UTC()
	portfolio.CreatedAt = now
	portfolio.UpdatedAt = now
	if portfolio.Id.IsZero() {
		portfolio.Id = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, portfolio)
	if err != nil {
		// The unique index on "user" is what holds the one-portfolio-per-owner
		// invariant under concurrent creates.
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("Portfolio already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *mongoPortfolioRepository) ReplaceByOwner(ctx context.Context, portfolio *models.Portfolio) error {
	portfolio.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"user": portfolio.User}, portfolio)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("Portfolio")
	}
	return nil
}

func (r *mongoPortfolioRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user": owner})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("Portfolio")
	}
	return nil
}
