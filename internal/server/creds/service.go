package creds

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/twit2/t2-auth/internal/common"
	"github.com/twit2/t2-auth/internal/logging"
	"github.com/twit2/t2-auth/internal/server/config"
	"github.com/twit2/t2-auth/internal/server/hashing"
)

// usernames are limited to an alphanumeric/underscore character class
var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ProfileClient calls the user-profile peer service. A companion profile
// record is created for every credential at registration time.
type ProfileClient interface {
	CreateProfile(ctx context.Context, username string, ownerID string) error
}

// TokenIssuer mints a session token bound to an owner identity.
type TokenIssuer interface {
	Issue(ownerID string) (string, error)
}

// Service is the credential manager: the sole orchestrator of the hasher,
// the credential store, the token issuer and the user-profile peer.
type Service struct {
	repo           Repository
	hasher         *hashing.Hasher
	tokens         TokenIssuer
	profiles       ProfileClient
	logger         logging.Logger
	profileTimeout time.Duration
	usernameMinLen int
	usernameMaxLen int
	passwordMinLen int
	passwordMaxLen int
}

func NewService(repo Repository, hasher *hashing.Hasher, tokens TokenIssuer, profiles ProfileClient, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:           repo,
		hasher:         hasher,
		tokens:         tokens,
		profiles:       profiles,
		logger:         logger.With("module", "creds"),
		profileTimeout: cfg.ProfileCallTimeout,
		usernameMinLen: cfg.UsernameMinLen,
		usernameMaxLen: cfg.UsernameMaxLen,
		passwordMinLen: cfg.PasswordMinLen,
		passwordMaxLen: cfg.PasswordMaxLen,
	}
}

func (s *Service) validatePassword(password string) error {
	if len(password) < s.passwordMinLen || len(password) > s.passwordMaxLen {
		return fmt.Errorf("%w: invalid password", common.ErrorValidation)
	}
	return nil
}

func (s *Service) validateUsername(username string) error {
	if len(username) < s.usernameMinLen || len(username) > s.usernameMaxLen {
		return fmt.Errorf("%w: invalid username", common.ErrorValidation)
	}
	if !usernameRegexp.MatchString(username) {
		return fmt.Errorf("%w: invalid username", common.ErrorValidation)
	}
	return nil
}

// CreateCredential creates a credential for a new subject and coordinates the
// companion profile record with the user-profile peer.
//
// The uniqueness pre-check is an optimization only; the store's unique index
// is the final arbiter, so a concurrent create for the same username still
// results in exactly one success. The profile call happens after the
// credential is persisted: when it fails, the operation fails with
// ErrorProfileCreation and the already-committed credential remains (there is
// no compensating delete; upstream recovery is an operator concern).
func (s *Service) CreateCredential(ctx context.Context, username string, password string) (*Credential, error) {

	if err := s.validatePassword(password); err != nil {
		return nil, err
	}
	if err := s.validateUsername(username); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	ownerID := uuid.NewString()

	hashType, hashVal, err := s.hasher.Compute(password)
	if err != nil {
		return nil, err
	}

	cred := &Credential{
		OwnerID:     ownerID,
		Username:    username,
		HashType:    hashType,
		HashVal:     hashVal,
		Role:        RoleUser,
		LastUpdated: time.Now(),
		SchemaVer:   SchemaVersion,
	}

	cred, err = s.repo.Create(ctx, cred)
	if err != nil {
		return nil, err
	}

	profileCtx, cancel := context.WithTimeout(ctx, s.profileTimeout)
	defer cancel()

	if err := s.profiles.CreateProfile(profileCtx, username, ownerID); err != nil {
		s.logger.Error(ctx, "profile creation failed, credential orphaned",
			"username", username, "owner_id", ownerID, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorProfileCreation, err)
	}

	s.logger.Info(ctx, "credential created", "owner_id", ownerID)
	return cred, nil
}

// VerifyCredential checks a password against the stored credential. A wrong
// password is (false, nil); a missing username is ErrorNotFound.
func (s *Service) VerifyCredential(ctx context.Context, username string, password string) (bool, error) {
	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	// dispatch on the stored hash type, not the configured algorithm
	return s.hasher.Verify(password, cred.HashType, cred.HashVal)
}

// ChangePassword rehashes and stores a new password for the owner. The caller
// is responsible for having authenticated the request; the old password is
// not required here.
func (s *Service) ChangePassword(ctx context.Context, ownerID string, newPassword string) (*Credential, error) {
	if err := s.validatePassword(newPassword); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByOwnerID(ctx, ownerID); err != nil {
		return nil, err
	}

	hashType, hashVal, err := s.hasher.Compute(newPassword)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdatePassword(ctx, ownerID, hashType, hashVal)
}

// HasCredential is a pure existence probe; it never returns an error.
func (s *Service) HasCredential(ctx context.Context, ownerID string) bool {
	_, err := s.repo.GetByOwnerID(ctx, ownerID)
	return err == nil
}

// GetCredRole returns the stored role for the owner, ErrorNotFound when no
// credential exists.
func (s *Service) GetCredRole(ctx context.Context, ownerID string) (Role, error) {
	cred, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return RoleUser, err
	}
	return cred.Role, nil
}

// Login verifies the password and mints a session token. Unknown user and
// wrong password are both reported as ErrorUnauthorized so external callers
// cannot enumerate usernames.
func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {
	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	ok, err := s.hasher.Verify(password, cred.HashType, cred.HashVal)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	return s.tokens.Issue(cred.OwnerID)
}

// IssueToken mints a token for an existing credential, failing with
// ErrorNotFound when the subject does not exist at issuance time.
func (s *Service) IssueToken(ctx context.Context, username string) (string, error) {
	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(cred.OwnerID)
}
