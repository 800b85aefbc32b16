package ledger

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"literary_voice/internal/domain"
	"literary_voice/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxActionLen matches the size of the action column, counted in characters.
const maxActionLen = 32

func normalizeAction(action string) string {
	action = strings.TrimSpace(action)
	if action == "" {
		return domain.ActionUnknown
	}
	if utf8.RuneCountInString(action) > maxActionLen {
		action = string([]rune(action)[:maxActionLen])
	}
	return action
}

// Deduct spends amount credits for apiKey and records one transaction row.
// The balance check, the decrement and the log insert share one DB
// transaction; the row is locked where the dialect supports it and the
// decrement is guarded by credits >= amount, so concurrent calls can never
// drive the balance negative.
func (s *Service) Deduct(ctx context.Context, apiKey string, amount int, action string) (int, error) {
	if apiKey == "" {
		return 0, errAPIKeyRequired
	}
	if amount <= 0 {
		return 0, errInvalidAmount
	}
	action = normalizeAction(action)

	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.userByAPIKey(tx.Clauses(clause.Locking{Strength: "UPDATE"}), apiKey)
		if err != nil {
			return err
		}
		if user.Credits < amount {
			return errInsufficientCredits
		}
		res := tx.Model(&domain.User{}).
			Where("id = ? AND credits >= ?", user.ID, amount).
			Update("credits", gorm.Expr("credits - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientCredits
		}
		if err := tx.Create(&domain.Transaction{UserID: user.ID, Amount: -amount, Action: action}).Error; err != nil {
			return err
		}
		return tx.Select("credits").First(&user, user.ID).Error
	})
	if err != nil {
		var lerr *Error
		if !errors.As(err, &lerr) {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"amount":  amount,
				"action":  action,
				"error":   err.Error(),
			}).Error("Deduction failed")
		}
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"amount":  -amount,
		"action":  action,
		"credits": user.Credits,
	}).Info("Credits deducted")
	s.invalidate(ctx, apiKey)
	return user.Credits, nil
}

// AddCredits grants amount credits to the account registered under email.
func (s *Service) AddCredits(ctx context.Context, email string, amount int, adminKey string) (int, error) {
	if err := s.CheckAdminKey(adminKey); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, errInvalidAmount
	}
	email = NormalizeEmail(email)

	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if err := tx.Model(&domain.User{}).
			Where("id = ?", user.ID).
			Update("credits", gorm.Expr("credits + ?", amount)).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.Transaction{UserID: user.ID, Amount: amount, Action: domain.ActionAdminAdd}).Error; err != nil {
			return err
		}
		return tx.Select("credits").First(&user, user.ID).Error
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"amount":  amount,
		"action":  domain.ActionAdminAdd,
		"credits": user.Credits,
	}).Info("Credits added")
	s.invalidate(ctx, user.APIKey)
	return user.Credits, nil
}

// Page pagination defaults shared with the HTTP layer.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampPage normalises page numbers and sizes coming from query strings.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// TransactionPage is one page of transaction rows, newest first.
type TransactionPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"total_pages"`
}

func totalPages(total int64, pageSize int) int {
	return (int(total) + pageSize - 1) / pageSize
}

// History returns the caller's own transactions.
func (s *Service) History(ctx context.Context, apiKey string, page, pageSize int) (TransactionPage, error) {
	if apiKey == "" {
		return TransactionPage{}, errAPIKeyRequired
	}
	page, pageSize = ClampPage(page, pageSize)

	gen, cacheable := utils.GetCounter(ctx, s.rdb, accountGenKey(apiKey))
	cacheKey := historyCacheKey(apiKey, gen, page, pageSize)
	var cached TransactionPage
	if cacheable {
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	db := s.db.WithContext(ctx)
	user, err := s.userByAPIKey(db, apiKey)
	if err != nil {
		return TransactionPage{}, err
	}

	query := db.Model(&domain.Transaction{}).Where("user_id = ?", user.ID).Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return TransactionPage{}, err
	}
	txs := []domain.Transaction{}
	if err := query.Order("id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&txs).Error; err != nil {
		return TransactionPage{}, err
	}

	out := TransactionPage{
		Transactions: txs,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
		TotalPages:   totalPages(total, pageSize),
	}
	if cacheable {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, out, cacheTTL)
	}
	return out, nil
}
