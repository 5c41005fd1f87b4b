// Package services holds the account workflows served over gRPC: signup,
// password change, API key retrieval and rotation, and key-based login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/apitoken"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/password"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/repomanager"
)

// AccessToken is what a successful Authenticate hands back.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

type AccountService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      *password.Hasher
	sealer                      *apitoken.Sealer
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	encryptedTokens             bool
	hashTimeout                 time.Duration
	logger                      logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) (*AccountService, error) {
	hasher, err := password.NewHasher("", cfg.PasswordRounds)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	return &AccountService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		sealer:                      apitoken.Default(),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		encryptedTokens:             cfg.EncryptedTokens,
		hashTimeout:                 cfg.HashTimeout,
		logger:                      logger.With("module", "services/accounts"),
	}, nil
}

// Signup registers username and returns the account together with its raw
// API key. The raw key is never stored when encrypted tokens are enabled.
func (s *AccountService) Signup(ctx context.Context, username, pw string) (*models.Account, string, error) {
	normalized, err := common.NormalizeUserName(username)
	if err != nil {
		return nil, "", err
	}
	if pw == "" {
		return nil, "", common.ErrorInvalidPassword
	}

	hash, err := s.hashPassword(ctx, pw)
	if err != nil {
		return nil, "", err
	}

	raw, err := apitoken.NewRawToken()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	stored, err := s.storedKey(raw, pw)
	if err != nil {
		return nil, "", err
	}

	account, err := s.repomanager.Accounts(s.db).Create(ctx, &models.Account{
		UserName:       username,
		NormalizedName: normalized,
		PasswordHash:   hash,
		APIKey:         stored,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", err
		}
		s.logger.Error(ctx, "error creating account", "error", err)
		return nil, "", common.ErrorInternal
	}

	s.logger.Info(ctx, "account created", "account_id", account.ID)
	return account, raw, nil
}

// ChangePassword replaces the password and moves the API key over to it,
// so the key the user already holds keeps working.
func (s *AccountService) ChangePassword(ctx context.Context, username, pw, newPw string) (*models.Account, error) {
	if newPw == "" {
		return nil, common.ErrorInvalidPassword
	}

	var account *models.Account

	err := s.withLockedAccount(ctx, username, pw, func(ctx context.Context, repo accounts.Repository, a *models.Account) error {
		stored, err := s.movedKey(a, pw, newPw)
		if err != nil {
			return s.internal(ctx, "error moving api key to new password", err)
		}

		hash, err := s.hashPassword(ctx, newPw)
		if err != nil {
			return err
		}

		if err := repo.UpdateCredentials(ctx, a.ID, hash, stored); err != nil {
			return s.internal(ctx, "error updating credentials", err)
		}

		a.PasswordHash = hash
		a.APIKey = stored
		account = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "password changed", "account_id", account.ID)
	return account, nil
}

// GetKey returns the account's current raw API key.
func (s *AccountService) GetKey(ctx context.Context, username, pw string) (*models.Account, string, error) {
	repo := s.repomanager.Accounts(s.db)

	a, err := s.checkPassword(ctx, username, pw, repo.GetByNormalizedName)
	if err != nil {
		return nil, "", err
	}

	raw, err := s.rawKey(a, pw)
	if err != nil {
		return nil, "", err
	}

	s.maybeRehash(ctx, repo, a, pw)

	return a, raw, nil
}

// NewKey rotates the API key. The previous key stops authenticating.
func (s *AccountService) NewKey(ctx context.Context, username, pw string) (*models.Account, string, error) {
	var (
		account *models.Account
		raw     string
	)

	err := s.withLockedAccount(ctx, username, pw, func(ctx context.Context, repo accounts.Repository, a *models.Account) error {
		var err error
		raw, err = apitoken.NewRawToken()
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}

		stored, err := s.storedKey(raw, pw)
		if err != nil {
			return err
		}

		if err := repo.UpdateAPIKey(ctx, a.ID, stored); err != nil {
			return s.internal(ctx, "error updating api key", err)
		}
		a.APIKey = stored

		s.maybeRehash(ctx, repo, a, pw)

		account = a
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(ctx, "api key rotated", "account_id", account.ID)
	return account, raw, nil
}

// Authenticate exchanges username and raw API key for a signed access token.
// Sealed keys are checked through their hashed-token field, so the password
// is not needed.
func (s *AccountService) Authenticate(ctx context.Context, username, apiKey string) (*AccessToken, error) {
	normalized, err := common.NormalizeUserName(username)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	if apiKey == "" {
		return nil, common.ErrorUnauthorized
	}

	a, err := s.repomanager.Accounts(s.db).GetByNormalizedName(ctx, normalized)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "error loading account", err)
	}

	var ok bool
	if apitoken.IsEnvelope(a.APIKey) {
		ok, err = s.sealer.Verify(a.APIKey, apiKey)
		if err != nil {
			return nil, s.internal(ctx, "stored api key unusable", err)
		}
	} else {
		ok = cryptox.Equal([]byte(a.APIKey), []byte(apiKey))
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, expires, err := auth.GenerateToken(a.ID, a.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, s.internal(ctx, "error signing access token", err)
	}

	return &AccessToken{Token: token, ExpiresAt: expires}, nil
}

// WhoAmI loads the account an access token was issued for.
func (s *AccountService) WhoAmI(ctx context.Context, accountID string) (*models.Account, error) {
	a, err := s.repomanager.Accounts(s.db).GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "error loading account", err)
	}
	return a, nil
}

type accountLookup func(ctx context.Context, normalizedName string) (*models.Account, error)

// withLockedAccount checks pw against the account row locked FOR UPDATE and
// runs fn in the same transaction, so a concurrent password change cannot
// slip in between the check and fn's writes.
func (s *AccountService) withLockedAccount(ctx context.Context, username, pw string, fn func(ctx context.Context, repo accounts.Repository, a *models.Account) error) error {
	lock := func(ctx context.Context, tx dbx.DBTX) (*models.Account, error) {
		return s.checkPassword(ctx, username, pw, s.repomanager.Accounts(tx).GetByNormalizedNameForUpdate)
	}
	return dbx.WithLocked(ctx, s.db, lock, func(ctx context.Context, tx dbx.DBTX, a *models.Account) error {
		return fn(ctx, s.repomanager.Accounts(tx), a)
	})
}

func (s *AccountService) checkPassword(ctx context.Context, username, pw string, lookup accountLookup) (*models.Account, error) {
	normalized, err := common.NormalizeUserName(username)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	if pw == "" {
		return nil, common.ErrorUnauthorized
	}

	a, err := lookup(ctx, normalized)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "error loading account", err)
	}

	hctx, cancel := s.withHashTimeout(ctx)
	defer cancel()

	ok, err := s.hasher.VerifyContext(hctx, pw, a.PasswordHash)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, s.internal(ctx, "stored password record unusable", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return a, nil
}

// rawKey recovers the raw API key of an account whose password was just
// verified.
func (s *AccountService) rawKey(a *models.Account, pw string) (string, error) {
	if !apitoken.IsEnvelope(a.APIKey) {
		return a.APIKey, nil
	}

	raw, ok, err := s.sealer.Decrypt(a.APIKey, pw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, cryptox.ErrAuthenticationFailed)
	}
	return raw, nil
}

// movedKey is the stored key re-bound from pw to newPw. Envelopes are
// resealed; a plain key is sealed or kept depending on the encryption toggle.
func (s *AccountService) movedKey(a *models.Account, pw, newPw string) (string, error) {
	if s.encryptedTokens && apitoken.IsEnvelope(a.APIKey) {
		return s.sealer.Reseal(a.APIKey, pw, newPw)
	}

	raw, err := s.rawKey(a, pw)
	if err != nil {
		return "", err
	}
	return s.storedKey(raw, newPw)
}

// storedKey is the form of raw that goes into the database.
func (s *AccountService) storedKey(raw, pw string) (string, error) {
	if !s.encryptedTokens {
		return raw, nil
	}
	envelope, err := s.sealer.Encrypt(raw, pw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return envelope, nil
}

func (s *AccountService) hashPassword(ctx context.Context, pw string) (string, error) {
	hctx, cancel := s.withHashTimeout(ctx)
	defer cancel()

	hash, err := s.hasher.HashContext(hctx, pw)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return hash, nil
}

// maybeRehash upgrades a record written under older parameters. The write
// only lands if the stored hash is still the one just verified. Failures
// are logged and do not affect the caller.
func (s *AccountService) maybeRehash(ctx context.Context, repo accounts.Repository, a *models.Account, pw string) {
	stale, err := s.hasher.NeedsRehash(a.PasswordHash)
	if err != nil || !stale {
		return
	}

	hash, err := s.hashPassword(ctx, pw)
	if err != nil {
		s.logger.Warn(ctx, "password rehash failed", "account_id", a.ID, "error", err)
		return
	}
	if err := repo.ReplacePasswordHash(ctx, a.ID, a.PasswordHash, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "password changed during rehash, skipped", "account_id", a.ID)
			return
		}
		s.logger.Warn(ctx, "password rehash not stored", "account_id", a.ID, "error", err)
		return
	}
	a.PasswordHash = hash
	s.logger.Debug(ctx, "password record upgraded", "account_id", a.ID)
}

func (s *AccountService) withHashTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.hashTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.hashTimeout)
}

func (s *AccountService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}
