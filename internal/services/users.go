package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m7real/ex-mobile-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SellerStatus answers the public seller check.
type SellerStatus struct {
	IsSeller   bool         `json:"isSeller"`
	IsVerified bool         `json:"isVerified"`
	User       *models.User `json:"user,omitempty"`
}

// UserService manages user documents and the public identity checks.
type UserService struct {
	users    UserStore
	products ProductStore
	tokens   *TokenService
	now      func() time.Time
}

// NewUserService returns a UserService. products receives the verified
// flag when a seller is verified.
func NewUserService(users UserStore, products ProductStore, tokens *TokenService) *UserService {
	return &UserService{users: users, products: products, tokens: tokens, now: time.Now}
}

// IssueToken signs a token for a registered email. Unknown emails get
// ErrNotFound.
func (s *UserService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrNotFound
	}
	if _, err := s.users.FindUserByEmail(ctx, email); err != nil {
		return "", err
	}
	return s.tokens.Issue(email)
}

// IsAdmin reports whether email belongs to an admin. Unknown emails are
// not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.HasRole(models.RoleAdmin), nil
}

// SellerStatus describes the seller behind email, or the zero status when
// email is unknown or not a seller.
func (s *UserService) SellerStatus(ctx context.Context, email string) (SellerStatus, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return SellerStatus{}, nil
	}
	if err != nil {
		return SellerStatus{}, err
	}
	if !user.HasRole(models.RoleSeller) {
		return SellerStatus{}, nil
	}
	return SellerStatus{IsSeller: true, IsVerified: user.Verified, User: user}, nil
}

// List returns all users, or only sellers or buyers when typ names one.
func (s *UserService) List(ctx context.Context, typ string) ([]models.User, error) {
	var role models.Role
	switch typ {
	case "":
	case string(models.RoleSeller):
		role = models.RoleSeller
	case string(models.RoleBuyer):
		role = models.RoleBuyer
	default:
		return nil, fmt.Errorf("%w: unknown user type %q", ErrBadRequest, typ)
	}
	return s.users.ListUsers(ctx, role)
}

// Create registers u unless the email is already taken, in which case it
// acknowledges without writing.
func (s *UserService) Create(ctx context.Context, u models.User) (models.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	if err := validateStruct(u); err != nil {
		return models.InsertResult{}, err
	}
	u.ID = primitive.NilObjectID
	u.Verified = false
	u.CreatedAt = s.now().UTC()

	id, created, err := s.users.CreateUserIfAbsent(ctx, u)
	if err != nil {
		return models.InsertResult{}, err
	}
	if !created {
		return models.InsertResult{Acknowledged: true}, nil
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

// PromoteAdmin sets the admin role on an existing user.
func (s *UserService) PromoteAdmin(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error) {
	before, err := s.users.SetUserRole(ctx, id, models.RoleAdmin)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return changed(before.Role != models.RoleAdmin), nil
}

// VerifySeller marks a user verified and stamps the flag on their listings.
func (s *UserService) VerifySeller(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error) {
	before, err := s.users.SetUserVerified(ctx, id, true)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if before.Email != "" {
		n, err := s.products.MarkSellerVerified(ctx, before.Email)
		if err != nil {
			return models.UpdateResult{}, err
		}
		zap.L().Debug("seller products verified", zap.String("email", before.Email), zap.Int64("products", n))
	}
	return changed(!before.Verified), nil
}

// Delete removes user id. A missing id deletes nothing and is not an error.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	n, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func changed(modified bool) models.UpdateResult {
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res
}
