package repository

import (
	"context"
	"errors"
	"fmt"
	addresserrors "postaladdr/internal/addresses/errors"
	"postaladdr/pkg/config"
	mongotx "postaladdr/pkg/db/mongo"
	"postaladdr/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Addresses"
)

type mongoAddressRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type AddressRepository interface {
	Create(ctx context.Context, rec *model.AddressRecord) error
	FindByID(ctx context.Context, id string) (*model.AddressRecord, error)
	FindAll(ctx context.Context, limit int, offset int, filter model.AddressFilter) ([]*model.AddressRecord, error)
	Count(ctx context.Context, filter model.AddressFilter) (int64, error)
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoAddressRepository(cfg *config.Config) AddressRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAddressRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds ctx by timeout unless it is a transaction session,
// which must be passed through untouched.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	if remaining := time.Until(deadline); remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func buildFilter(f model.AddressFilter) bson.M {
	filter := bson.M{}
	switch len(f.CityKeys) {
	case 0:
	case 1:
		filter["city_key"] = f.CityKeys[0]
	default:
		filter["city_key"] = bson.M{"$in": f.CityKeys}
	}
	if f.StateKind != "" {
		filter["state_kind"] = f.StateKind
	}
	if f.CountryKind != "" {
		filter["country_kind"] = f.CountryKind
	}
	return filter
}

func (r *mongoAddressRepository) Create(ctx context.Context, rec *model.AddressRecord) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	rec.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAddressRepository) FindByID(ctx context.Context, id string) (*model.AddressRecord, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", addresserrors.ErrInvalidID, id)
	}

	var rec model.AddressRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", addresserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find address: %w", err)
	}

	rec.Hydrate()
	return &rec, nil
}

func (r *mongoAddressRepository) FindAll(ctx context.Context, limit int, offset int, filter model.AddressFilter) ([]*model.AddressRecord, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*model.AddressRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	for _, rec := range records {
		rec.Hydrate()
	}
	return records, nil
}

func (r *mongoAddressRepository) Count(ctx context.Context, filter model.AddressFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return count, nil
}

func (r *mongoAddressRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", addresserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", addresserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoAddressRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
