package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/internal/repository"
	"github.com/Temirlan472/Office_Board/pkg/apperror"
	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/Temirlan472/Office_Board/pkg/paginate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserService encapsulates account management for admins and employees.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// AddAdminInput carries the fields for creating an administrator account.
type AddAdminInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// ListUsersInput are the optional user list filters.
type ListUsersInput struct {
	Role    string
	Keyword string
}

// BuildUserFilter assembles the user list filter. Keyword matches name
// (case-insensitive substring), exact email or phone, or a raw id.
// Soft-deleted accounts are always excluded.
func BuildUserFilter(input ListUsersInput) bson.M {
	filter := bson.M{"is_deleted": false}
	if input.Role != "" {
		filter["role"] = input.Role
	}
	applyUserKeyword(filter, input.Keyword)
	return filter
}

// BuildAdminFilter assembles the filter for listing admin accounts.
func BuildAdminFilter(keyword string) bson.M {
	filter := bson.M{
		"is_deleted": false,
		"role":       bson.M{"$in": models.AdminRoles},
	}
	applyUserKeyword(filter, keyword)
	return filter
}

func applyUserKeyword(filter bson.M, keyword string) {
	if keyword == "" {
		return
	}
	or := []bson.M{
		{"name": primitive.Regex{Pattern: keyword, Options: "i"}},
		{"email": keyword},
		{"phone": keyword},
	}
	if id, err := primitive.ObjectIDFromHex(keyword); err == nil {
		or = append(or, bson.M{"_id": id})
	}
	filter["$or"] = or
}

// ListUsers returns a page of non-deleted users, optionally narrowed by role
// and keyword.
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput, params paginate.Params) ([]models.User, paginate.Pagination, error) {
	if input.Role != "" && input.Role != models.RoleUser && !models.IsAdminRole(input.Role) {
		return nil, paginate.Pagination{}, apperror.BadRequest("Role not valid.")
	}
	if params.SortField == "" {
		params.SortField = "created_at"
	}
	return s.repo.FindPage(ctx, BuildUserFilter(input), params)
}

// ListAdmins returns a page of admin and sub-admin accounts.
func (s *UserService) ListAdmins(ctx context.Context, keyword string, params paginate.Params) ([]models.User, paginate.Pagination, error) {
	if params.SortField == "" {
		params.SortField = "created_at"
	}
	return s.repo.FindPage(ctx, BuildAdminFilter(keyword), params)
}

// GetUser fetches a single user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	return user, nil
}

// AddAdmin creates a new administrator account with a hashed password.
func (s *UserService) AddAdmin(ctx context.Context, input AddAdminInput) (*models.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, apperror.BadRequest("Email already taken")
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperror.BadRequest("Password and Confirm Password not matched.")
	}
	if !models.IsAdminRole(input.Role) {
		return nil, apperror.BadRequest("Please provide a valid role for admin")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	admin := &models.User{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		Role:           input.Role,
		Status:         models.UserStatusActive,
		HashedPassword: string(hashed),
	}

	created, err := s.repo.CreateUser(ctx, admin)
	if err != nil {
		return nil, apperror.Internal("Something went wrong!")
	}

	logger.Log.WithFields(map[string]interface{}{
		"userID": created.ID.Hex(),
		"role":   created.Role,
	}).Info("Admin account created")
	return created, nil
}

// UpdateAdmin changes an admin's role and/or status. Admins can never
// manipulate their own account through this path.
func (s *UserService) UpdateAdmin(ctx context.Context, actorID, id, role, status string) (*models.User, error) {
	if actorID == id {
		return nil, apperror.BadRequest("You can't manipulate your own account")
	}
	if role != "" && !models.IsAdminRole(role) {
		return nil, apperror.BadRequest("Please provide a valid role for admin")
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	fields := bson.M{}
	if role != "" {
		fields["role"] = role
	}
	if status != "" {
		fields["status"] = status
	}

	updated, err := s.repo.UpdateUserFields(ctx, objID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to update admin: %v", err)
	}
	return updated, nil
}

// DeleteAdmin removes an admin account. Never the actor's own.
func (s *UserService) DeleteAdmin(ctx context.Context, actorID, id string) (*models.User, error) {
	if actorID == id {
		return nil, apperror.BadRequest("You can't delete your own account")
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	deleted, err := s.repo.HardDeleteUser(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to delete admin: %v", err)
	}
	return deleted, nil
}

// UpdateUserStatus updates a user's status (and optionally role).
func (s *UserService) UpdateUserStatus(ctx context.Context, id string, status, role string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	fields := bson.M{}
	if status != "" {
		fields["status"] = status
	}
	if role != "" {
		fields["role"] = role
	}

	updated, err := s.repo.UpdateUserFields(ctx, objID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to update user status: %v", err)
	}
	return updated, nil
}

// UpdateProfile applies profile fields a user may edit about themselves.
// Role and status can never be changed through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, fields bson.M) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}

	delete(fields, "role")
	delete(fields, "status")
	delete(fields, "is_deleted")

	updated, err := s.repo.UpdateUserFields(ctx, objID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}
	return updated, nil
}

// DeleteProfile soft-deletes a user account.
func (s *UserService) DeleteProfile(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("User not found")
	}

	if err := s.repo.SoftDeleteUser(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("User not found")
		}
		return fmt.Errorf("failed to delete user: %v", err)
	}
	return nil
}

// ConnectPartner links two accounts by their partner codes. The two writes
// are independent single-document updates with no compensating rollback; a
// failure between them leaves one side linked. Retrying the call converges.
func (s *UserService) ConnectPartner(ctx context.Context, userID, code string) error {
	if code == "" {
		return apperror.BadRequest("Code is required")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperror.BadRequest("Invalid user ID")
	}

	partner, err := s.repo.GetUserByCode(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("No user exist with this code")
		}
		return fmt.Errorf("failed to look up partner: %v", err)
	}

	if partner.ID == objID {
		return apperror.BadRequest("You can't connect to yourself")
	}

	if err := s.repo.LinkPartners(ctx, objID, partner.ID); err != nil {
		return fmt.Errorf("failed to connect partner: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"userID":    userID,
		"partnerID": partner.ID.Hex(),
	}).Info("Accounts connected")
	return nil
}
