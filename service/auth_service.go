package application

import (
	"context"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

const tokenLifetime = 24 * time.Hour

type AuthService struct {
	users     domain.UserStore
	secretKey []byte
}

func NewAuthService(users domain.UserStore, secretKey []byte) *AuthService {
	return &AuthService{
		users:     users,
		secretKey: secretKey,
	}
}

// Signup creates a regular user account. The password is stored as a
// bcrypt hash, never in plain text.
func (service *AuthService) Signup(ctx context.Context, input *domain.SignupInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:       strings.TrimSpace(input.Name),
		Email:      input.Email,
		Password:   string(hash),
		Role:       domain.RoleUser,
		Favourites: []primitive.ObjectID{},
	}

	return service.users.Insert(ctx, user)
}

// Login verifies credentials and returns the user alongside a signed
// token. Unknown emails and wrong passwords yield distinct errors so
// handlers can map them per the API contract.
func (service *AuthService) Login(ctx context.Context, input *domain.LoginInput) (*domain.PublicUser, string, error) {
	if err := input.Validate(); err != nil {
		return nil, "", domain.ErrMissingFields
	}

	user, err := service.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := service.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user.Public(), token, nil
}

// RegisterAsManager upgrades a regular account to the manager role and
// records the application details. Accounts that already hold manager
// or admin rights cannot apply again.
func (service *AuthService) RegisterAsManager(ctx context.Context, userID primitive.ObjectID, app *domain.ManagerApplication) (*domain.PublicUser, string, error) {
	if err := app.Validate(); err != nil {
		return nil, "", domain.ErrMissingFields
	}

	user, err := service.users.Get(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if user.Role != domain.RoleUser {
		return nil, "", domain.ErrAlreadyManager
	}

	managerData := &domain.ManagerData{
		BusinessName: strings.TrimSpace(app.BusinessName),
		Phone:        strings.TrimSpace(app.Phone),
		Verified:     false,
		AppliedAt:    time.Now(),
	}

	if err := service.users.UpdateRole(ctx, userID, domain.RoleManager, managerData); err != nil {
		return nil, "", err
	}

	user.Role = domain.RoleManager
	user.ManagerData = managerData

	// The role lives inside the token, so a fresh one is issued.
	token, err := service.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user.Public(), token, nil
}

func (service *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*domain.PublicUser, error) {
	user, err := service.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (service *AuthService) GenerateJWT(user *domain.User) (string, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, service.secretKey)
	if err != nil {
		return "", err
	}
	builder := jwt.NewBuilder(signer)

	claims := &domain.Claims{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Role:      user.Role,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(tokenLifetime),
	}

	token, err := builder.Build(claims)
	if err != nil {
		return "", err
	}
	return token.String(), nil
}
