// Package ledger owns user accounts, credit balances and the append-only
// transaction log.
package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"literary_voice/internal/domain"
	"literary_voice/internal/utils"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLen = 6
	apiKeyLen      = 43 // ~256 bits from the nanoid alphabet
	cacheTTL       = 60 * time.Second
	// generation counters outlive every entry keyed on them, so a counter
	// that expires and restarts at 0 can never revive an old entry
	genTTL = 24 * time.Hour
)

const adminGenKey = "admin:gen"

// Options configures a Service.
type Options struct {
	AdminKey string        // secret required by AddCredits
	Redis    *redis.Client // optional read cache
	HashCost int           // bcrypt cost, bcrypt.DefaultCost when zero
}

// Service implements the ledger operations on top of GORM.
type Service struct {
	db       *gorm.DB
	rdb      *redis.Client
	adminKey string
	hashCost int
}

func NewService(db *gorm.DB, opts Options) *Service {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		db:       db,
		rdb:      opts.Redis,
		adminKey: opts.AdminKey,
		hashCost: cost,
	}
}

// Account is what signup and login hand back to the caller.
type Account struct {
	APIKey  string `json:"api_key"`
	Credits int    `json:"credits"`
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Signup(ctx context.Context, email, password string) (Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Account{}, errCredentialsRequired
	}
	if len(password) < minPasswordLen {
		return Account{}, errPasswordTooShort
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return Account{}, err
	}
	if count > 0 {
		return Account{}, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	apiKey, err := gonanoid.New(apiKeyLen)
	if err != nil {
		return Account{}, fmt.Errorf("generate api key: %w", err)
	}

	user := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		APIKey:       apiKey,
		Credits:      domain.DefaultCredits,
		Plan:         domain.DefaultPlan,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// a concurrent signup may have won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) || s.emailExists(ctx, email) {
			return Account{}, errEmailTaken
		}
		return Account{}, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"credits": user.Credits,
	}).Info("Account created")
	s.bump(ctx, adminGenKey)
	return Account{APIKey: user.APIKey, Credits: user.Credits}, nil
}

func (s *Service) emailExists(ctx context.Context, email string) bool {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	return err == nil && count > 0
}

func (s *Service) Login(ctx context.Context, email, password string) (Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Account{}, errCredentialsRequired
	}

	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Account{}, errInvalidLogin
		}
		return Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Account{}, errInvalidLogin
	}
	return Account{APIKey: user.APIKey, Credits: user.Credits}, nil
}

// Balance returns the current credits for apiKey.
func (s *Service) Balance(ctx context.Context, apiKey string) (int, error) {
	if apiKey == "" {
		return 0, errAPIKeyRequired
	}

	// the generation is read before the row, so a write that lands in
	// between bumps it and this entry is never read back
	gen, cacheable := utils.GetCounter(ctx, s.rdb, accountGenKey(apiKey))
	key := balanceCacheKey(apiKey, gen)
	var cached int
	if cacheable {
		if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	user, err := s.userByAPIKey(s.db.WithContext(ctx), apiKey)
	if err != nil {
		return 0, err
	}
	if cacheable {
		_ = utils.SetCache(ctx, s.rdb, key, user.Credits, cacheTTL)
	}
	return user.Credits, nil
}

func (s *Service) userByAPIKey(tx *gorm.DB, apiKey string) (domain.User, error) {
	var user domain.User
	if err := tx.Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, errInvalidAPIKey
		}
		return user, err
	}
	return user, nil
}

// keyDigest keeps raw api keys out of Redis key names.
func keyDigest(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:16])
}

func accountGenKey(apiKey string) string {
	return "credits:gen:" + keyDigest(apiKey)
}

func balanceCacheKey(apiKey string, gen int64) string {
	return fmt.Sprintf("credits:key:%s:gen:%d", keyDigest(apiKey), gen)
}

func historyCacheKey(apiKey string, gen int64, page, pageSize int) string {
	return fmt.Sprintf("txhistory:key:%s:gen:%d:page:%d:size:%d", keyDigest(apiKey), gen, page, pageSize)
}

// invalidate retires every cached balance and history page of apiKey, and
// every admin listing, by moving their generations forward.
func (s *Service) invalidate(ctx context.Context, apiKey string) {
	s.bump(ctx, accountGenKey(apiKey), adminGenKey)
}

func (s *Service) bump(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := utils.BumpCounter(ctx, s.rdb, key, genTTL); err != nil {
			logrus.WithError(err).Warn("Cache invalidation failed")
		}
	}
}
