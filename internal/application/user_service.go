package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/drewhq/drew/internal/domain/entity"
	repo "github.com/drewhq/drew/internal/domain/repository"
	"github.com/drewhq/drew/internal/infrastructure/postgres"
	"github.com/drewhq/drew/pkg/helpers"
	"github.com/drewhq/drew/pkg/mailer"
	"github.com/drewhq/drew/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrForbidden          = errors.New("not allowed to update this user")
	ErrNoUpdateData       = errors.New("no update data provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const (
	userCacheTTL  = 10 * time.Minute
	sessionTTL    = 24 * time.Hour
	magicLinkTTL  = 30 * time.Minute
	appName       = "Drew"
	magicLinkPath = "/auth/confirm"
)

// UserService covers registration, authentication, profile and onboarding.
type UserService struct {
	Users        repo.UserRepository
	Orgs         repo.OrganizationRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	Rabbit       *helpers.RabbitPublisher
	Logger       *logrus.Logger
	MagicLinkURL string // absolute URL the emailed link points at
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewUserService(users repo.UserRepository, orgs repo.OrganizationRepository, jwt *helpers.JWTManager, rdb *redis.Client, rabbit *helpers.RabbitPublisher, logger *logrus.Logger, magicLinkURL string) *UserService {
	return &UserService{
		Users:        users,
		Orgs:         orgs,
		JWT:          jwt,
		Redis:        rdb,
		Rabbit:       rabbit,
		Logger:       logger,
		MagicLinkURL: magicLinkURL,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// Register creates a new account. Email and username must both be unused.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if u, err := s.Users.GetByEmail(ctx, email); err == nil && u != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !postgres.IsNotFound(err) {
		return nil, err
	}
	if u, err := s.Users.GetByUsername(ctx, username); err == nil && u != nil {
		return nil, ErrUsernameTaken
	} else if err != nil && !postgres.IsNotFound(err) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      strings.TrimSpace(in.Role),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueToken(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.KeySession(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login combines Authenticate and IssueToken.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueToken(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// GetProfile returns the user, served from the Redis cache when warm.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, helpers.KeyUserCache(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if s.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, s.Redis, helpers.KeyUserCache(userID), u, userCacheTTL)
	}
	return u, nil
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *string
	Username  *string
}

// UpdateUser applies a partial update. Users may only update themselves.
func (s *UserService) UpdateUser(ctx context.Context, callerID, targetID string, in UpdateUserInput) (*entity.User, error) {
	if callerID != targetID {
		return nil, ErrForbidden
	}
	if in.FirstName == nil && in.LastName == nil && in.Role == nil && in.Username == nil {
		return nil, ErrNoUpdateData
	}
	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Username != nil && strings.TrimSpace(*in.Username) != u.Username {
		username := strings.TrimSpace(*in.Username)
		if other, uErr := s.Users.GetByUsername(ctx, username); uErr == nil && other != nil && other.ID != u.ID {
			return nil, ErrUsernameTaken
		}
		u.Username = username
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		u.Role = strings.TrimSpace(*in.Role)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateUserCache(ctx, u.ID)
	return u, nil
}

type OnboardingOrganization struct {
	Name        string
	Industry    string
	CompanySize string
	Website     string
}

type OnboardingInput struct {
	FirstName    string
	LastName     string
	Role         string
	Organization *OnboardingOrganization
}

// CompleteOnboarding saves the profile, optionally creates an organization the
// user does not yet have, and marks onboarding done.
func (s *UserService) CompleteOnboarding(ctx context.Context, userID string, in OnboardingInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Role = strings.TrimSpace(in.Role)

	if in.Organization != nil && u.OrganizationID == "" && strings.TrimSpace(in.Organization.Name) != "" {
		org := &entity.Organization{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(in.Organization.Name),
			Industry:    strings.TrimSpace(in.Organization.Industry),
			CompanySize: strings.TrimSpace(in.Organization.CompanySize),
			Website:     strings.TrimSpace(in.Organization.Website),
		}
		if err := s.Orgs.Create(ctx, org); err != nil {
			return nil, err
		}
		u.OrganizationID = org.ID
	}

	u.HasCompletedOnboarding = true
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateUserCache(ctx, u.ID)
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data: templates.ToMap(templates.EmailData{
			Name:    u.FirstName,
			Email:   u.Email,
			AppName: appName,
		}),
	})
	return u, nil
}

// MagicLinkInit stores a single-use token and queues the sign-in email.
// It reports success even for unknown addresses so callers cannot probe
// which emails are registered.
func (s *UserService) MagicLinkInit(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil
	}
	token, err := helpers.GenToken(32)
	if err != nil {
		return err
	}
	if s.Redis == nil {
		return errors.New("redis not configured")
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, helpers.KeyMagicLink(token), u.ID, magicLinkTTL); err != nil {
		return err
	}
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.MagicLink,
		Data: templates.ToMap(templates.EmailData{
			Name:          u.FirstName,
			Email:         u.Email,
			AppName:       appName,
			MagicLinkURL:  s.MagicLinkURL + magicLinkPath + "?token=" + token,
			ExpiresAtText: "in 30 minutes",
		}),
	})
	return nil
}

// MagicLinkConfirm redeems a token, deleting it so it cannot be reused.
func (s *UserService) MagicLinkConfirm(ctx context.Context, token string) (*entity.User, TokenPair, error) {
	if s.Redis == nil || token == "" {
		return nil, TokenPair{}, ErrInvalidToken
	}
	key := helpers.KeyMagicLink(token)
	var userID string
	ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &userID)
	if err != nil || !ok {
		return nil, TokenPair{}, ErrInvalidToken
	}
	_ = helpers.RedisDel(ctx, s.Redis, key)

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, TokenPair{}, ErrInvalidToken
	}
	pair, err := s.IssueToken(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout drops the Redis session and cached profile. Best effort.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	_ = helpers.RedisDel(ctx, s.Redis, helpers.KeySession(userID))
	_ = helpers.RedisDel(ctx, s.Redis, helpers.KeyUserCache(userID))
}

func (s *UserService) invalidateUserCache(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	_ = helpers.RedisDel(ctx, s.Redis, helpers.KeyUserCache(userID))
}

func (s *UserService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Rabbit == nil {
		return
	}
	if err := s.Rabbit.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("enqueue email failed")
	}
}
