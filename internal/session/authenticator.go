package session

import (
	"context"
	"strconv"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/errors"
	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthClient exchanges credentials for a session against the backend.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, profile models.Profile) (*models.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	MyJobs(ctx context.Context, token string) ([]models.JobPosting, error)
}

var validate = validator.New()

type registrationInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Authenticator drives the sign-in/register/sign-out flows: the client
// resolves a session, the store commits and broadcasts it.
//
// When AllowMockOnFailure is set, auth failures from the backend are replaced
// with a locally synthesized session instead of surfacing. The flag is meant
// for UI development without a live backend and defaults to off.
type Authenticator struct {
	client             AuthClient
	store              *Store
	logger             *zap.Logger
	AllowMockOnFailure bool
}

func NewAuthenticator(client AuthClient, store *Store, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		client: client,
		store:  store,
		logger: logger,
	}
}

// SignIn logs in and commits the resulting session. A context canceled before
// the commit (the caller tore down while awaiting the response) means no
// commit happens and no state changes.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		if !a.AllowMockOnFailure || !errors.IsType(err, errors.ErrTypeAuth) {
			return nil, err
		}
		a.logger.Warn("login failed, synthesizing mock session", zap.Error(err))
		sess = mockSession(email, "Mock User", models.RoleSeeker)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Internal("login abandoned before commit", err)
	}
	if err := a.store.Commit(ctx, *sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Register validates the profile locally, registers it with the backend, and
// commits the returned session. Validation failures never reach the network.
func (a *Authenticator) Register(ctx context.Context, profile models.Profile, confirmPassword string) (*models.Session, error) {
	if profile.Password != confirmPassword {
		return nil, errors.Validation("passwords do not match", nil)
	}
	input := registrationInput{
		Name:     profile.Name,
		Email:    profile.Email,
		Password: profile.Password,
	}
	if err := validate.Struct(input); err != nil {
		return nil, errors.Validation("invalid registration profile", err)
	}
	if !profile.Role.Valid() {
		profile.Role = models.RoleSeeker
	}

	sess, err := a.client.Register(ctx, profile)
	if err != nil {
		if !a.AllowMockOnFailure || !errors.IsType(err, errors.ErrTypeAuth) {
			return nil, err
		}
		a.logger.Warn("registration failed, synthesizing mock session", zap.Error(err))
		sess = mockSession(profile.Email, profile.Name, profile.Role)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Internal("registration abandoned before commit", err)
	}
	if err := a.store.Commit(ctx, *sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SignOut clears the persisted session.
func (a *Authenticator) SignOut(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// RequestPasswordReset forwards the request. Callers show the same generic
// acknowledgment whether or not the email exists.
func (a *Authenticator) RequestPasswordReset(ctx context.Context, email string) error {
	return a.client.RequestPasswordReset(ctx, email)
}

// MyJobs fetches the active finder's postings, degrading to an empty list on
// any failure so the dashboard stays usable offline.
func (a *Authenticator) MyJobs(ctx context.Context) []models.JobPosting {
	sess := a.store.Load(ctx)
	if sess == nil {
		return nil
	}

	jobs, err := a.client.MyJobs(ctx, sess.AuthToken)
	if err != nil {
		a.logger.Warn("failed to fetch job postings, showing empty list", zap.Error(err))
		return []models.JobPosting{}
	}
	return jobs
}

func mockSession(email, name string, role models.Role) *models.Session {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return &models.Session{
		Identity:    now,
		DisplayName: name,
		Email:       email,
		Role:        role,
		AuthToken:   "mock-token-" + now,
	}
}
