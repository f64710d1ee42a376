package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/letterbox-server/internal/apperrors"
	"github.com/dtroode/letterbox-server/internal/logger"
	"github.com/dtroode/letterbox-server/internal/model"
	"github.com/dtroode/letterbox-server/internal/telemetry"
)

const (
	// DefaultListLimit is used when a listing does not specify a limit.
	DefaultListLimit = 100
	// MaxListLimit caps the page size of listings.
	MaxListLimit = 1000
)

// User registers and looks up users.
type User struct {
	userStore model.UserStore
	validate  *validator.Validate
	telemetry *telemetry.Instruments
	logger    *logger.Logger
	now       func() time.Time
}

func NewUser(
	userStore model.UserStore,
	instruments *telemetry.Instruments,
	logger *logger.Logger,
) *User {
	return &User{
		userStore: userStore,
		validate:  newValidator(),
		telemetry: instruments,
		logger:    logger,
		now:       now,
	}
}

// CreateUser registers a user. An email that is already registered is a
// validation error, whether it is caught by the lookup or by the unique
// constraint when two registrations race.
func (s *User) CreateUser(ctx context.Context, params model.CreateUserParams) (user model.User, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "user.create")
	defer func() { end(err) }()

	params.Email = strings.TrimSpace(params.Email)
	params.Name = strings.TrimSpace(params.Name)

	if vErr := s.validate.Struct(params); vErr != nil {
		return model.User{}, validationError(vErr)
	}

	_, err = s.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.User{}, apperrors.NewErrEmailTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	user, err = s.userStore.Create(ctx, model.User{
		ID:        uuid.New(),
		Email:     params.Email,
		Name:      params.Name,
		CreatedAt: s.now(),
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		return model.User{}, apperrors.NewErrEmailTaken()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered",
		"user_id", user.ID)

	return user, nil
}

// ListUsers returns users in registration order. A non-positive limit means
// DefaultListLimit and limits above MaxListLimit are capped.
func (s *User) ListUsers(ctx context.Context, skip, limit int) (users []model.User, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "user.list",
		attribute.Int("skip", skip),
		attribute.Int("limit", limit))
	defer func() { end(err) }()

	skip = max(skip, 0)
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	users, err = s.userStore.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

func (s *User) GetUser(ctx context.Context, id uuid.UUID) (user model.User, err error) {
	ctx, end := s.telemetry.StartSpan(ctx, "user.get")
	defer func() { end(err) }()

	user, err = s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// now returns the current UTC time at the precision PostgreSQL stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
