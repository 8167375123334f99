package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Collection names.
const (
	usersCollection      = "users"
	productsCollection   = "products"
	bookingsCollection   = "bookings"
	categoriesCollection = "categories"
	blogsCollection      = "blogs"
	faqsCollection       = "faqs"
)

// Connect opens a client against uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}

	zap.L().Info("connected to MongoDB")
	return client, nil
}

// Store is the data-access object for every collection the API touches.
type Store struct {
	users      *mongo.Collection
	products   *mongo.Collection
	bookings   *mongo.Collection
	categories *mongo.Collection
	blogs      *mongo.Collection
	faqs       *mongo.Collection
}

// NewStore binds the collections of database.
func NewStore(database *mongo.Database) *Store {
	return &Store{
		users:      database.Collection(usersCollection),
		products:   database.Collection(productsCollection),
		bookings:   database.Collection(bookingsCollection),
		categories: database.Collection(categoriesCollection),
		blogs:      database.Collection(blogsCollection),
		faqs:       database.Collection(faqsCollection),
	}
}

// EnsureIndexes creates the indexes the store relies on. The unique email
// index is what makes user creation race free.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "create users index")
	}

	_, err = s.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "sellerEmail", Value: 1}}},
		{Keys: bson.D{{Key: "advertised", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return errors.Wrap(err, "create products indexes")
	}

	_, err = s.bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "buyerEmail", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "create bookings index")
	}
	return nil
}

// findAll runs filter on coll and decodes every document into out, which
// must point to a slice.
func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return errors.Wrapf(err, "find %s", coll.Name())
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return errors.Wrapf(err, "decode %s", coll.Name())
	}
	return nil
}
