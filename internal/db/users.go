package db

import (
	"context"

	"github.com/m7real/ex-mobile-server/internal/models"
	"github.com/m7real/ex-mobile-server/internal/services"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindUserByEmail returns services.ErrNotFound when no user has email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

// CreateUserIfAbsent upserts on email with $setOnInsert, so an existing
// document is never modified. A duplicate key error means a concurrent
// request won the insert.
func (s *Store) CreateUserIfAbsent(ctx context.Context, u models.User) (primitive.ObjectID, bool, error) {
	onInsert := bson.M{
		"verified":  u.Verified,
		"createdAt": u.CreatedAt,
	}
	if u.Name != "" {
		onInsert["name"] = u.Name
	}
	if u.PhotoURL != "" {
		onInsert["photoURL"] = u.PhotoURL
	}
	if u.Role != "" {
		onInsert["role"] = u.Role
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": u.Email},
		bson.M{"$setOnInsert": onInsert},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, errors.Wrap(err, "upsert user")
	}
	if res.UpsertedCount == 0 {
		return primitive.NilObjectID, false, nil
	}
	id, _ := res.UpsertedID.(primitive.ObjectID)
	return id, true, nil
}

// roleFilter selects the users for which models.User.HasRole(role) holds.
// An empty role selects everyone.
func roleFilter(role models.Role) bson.M {
	switch role {
	case "":
		return bson.M{}
	case models.RoleBuyer:
		return bson.M{"$or": bson.A{
			bson.M{"role": models.RoleBuyer},
			bson.M{"role": bson.M{"$exists": false}},
			bson.M{"role": ""},
		}}
	default:
		return bson.M{"role": role}
	}
}

// ListUsers returns the users holding role, or all users for an empty role.
func (s *Store) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	users := []models.User{}
	if err := findAll(ctx, s.users, roleFilter(role), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserRole returns the user as it was before the change.
func (s *Store) SetUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error) {
	return s.updateUser(ctx, id, bson.M{"role": role})
}

// SetUserVerified returns the user as it was before the change.
func (s *Store) SetUserVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*models.User, error) {
	return s.updateUser(ctx, id, bson.M{"verified": verified})
}

// updateUser applies set to an existing user and returns the previous
// document. It never upserts.
func (s *Store) updateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	var before models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return &before, nil
}

// DeleteUser reports how many users were removed.
func (s *Store) DeleteUser(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.Wrap(err, "delete user")
	}
	return res.DeletedCount, nil
}

// CountUsers uses collection metadata, not a scan.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "count users")
}
