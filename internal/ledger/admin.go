package ledger

import (
	"context"
	"crypto/subtle"
	"strconv"
	"strings"
	"time"

	"literary_voice/internal/domain"
	"literary_voice/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserSummary is the admin view of an account.
type UserSummary struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Plan      string `json:"plan"`
	Credits   int    `json:"credits"`
	CreatedAt string `json:"created_at"`
}

// UserPage is one page of accounts ordered by id.
type UserPage struct {
	Users      []UserSummary `json:"users"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

func (s *Service) ListUsers(ctx context.Context, page, pageSize int) (UserPage, error) {
	page, pageSize = ClampPage(page, pageSize)

	gen, cacheable := utils.GetCounter(ctx, s.rdb, adminGenKey)
	cacheKey := "admin:users:gen=" + strconv.FormatInt(gen, 10) + ":page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
	var cached UserPage
	if cacheable {
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return UserPage{}, err
	}
	var users []domain.User
	if err := db.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return UserPage{}, err
	}

	out := UserPage{
		Users:      make([]UserSummary, len(users)),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
	for i, u := range users {
		out.Users[i] = UserSummary{
			ID:        u.ID,
			Email:     u.Email,
			Plan:      u.Plan,
			Credits:   u.Credits,
			CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	if cacheable {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, out, cacheTTL)
	}
	return out, nil
}

// TransactionFilter narrows ListTransactions; empty fields are ignored.
type TransactionFilter struct {
	Email    string
	Action   string
	From     time.Time // inclusive lower bound on timestamp
	To       time.Time // inclusive upper bound on timestamp
	Page     int
	PageSize int
}

func boundKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (f TransactionFilter) cacheKey(gen int64) string {
	parts := []string{
		"gen=" + strconv.FormatInt(gen, 10),
		"email=" + NormalizeEmail(f.Email),
		"action=" + f.Action,
		"from=" + boundKey(f.From),
		"to=" + boundKey(f.To),
		"page=" + strconv.Itoa(f.Page),
		"page_size=" + strconv.Itoa(f.PageSize),
	}
	return "admin:txs:" + strings.Join(parts, ":")
}

// ListTransactions returns the global log, newest first.
func (s *Service) ListTransactions(ctx context.Context, f TransactionFilter) (TransactionPage, error) {
	f.Page, f.PageSize = ClampPage(f.Page, f.PageSize)

	gen, cacheable := utils.GetCounter(ctx, s.rdb, adminGenKey)
	cacheKey := f.cacheKey(gen)
	var cached TransactionPage
	if cacheable {
		if found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	query := s.db.WithContext(ctx).Model(&domain.Transaction{})
	if f.Email != "" {
		query = query.Where("user_id IN (?)",
			s.db.WithContext(ctx).Model(&domain.User{}).Select("id").Where("email = ?", NormalizeEmail(f.Email)))
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	// timestamps are stored in UTC, bounds must be too
	if !f.From.IsZero() {
		query = query.Where(clause.Gte{Column: clause.Column{Name: "timestamp"}, Value: f.From.UTC()})
	}
	if !f.To.IsZero() {
		query = query.Where(clause.Lte{Column: clause.Column{Name: "timestamp"}, Value: f.To.UTC()})
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return TransactionPage{}, err
	}
	txs := []domain.Transaction{}
	if err := query.Order("id desc").Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).Find(&txs).Error; err != nil {
		return TransactionPage{}, err
	}

	out := TransactionPage{
		Transactions: txs,
		Page:         f.Page,
		PageSize:     f.PageSize,
		Total:        total,
		TotalPages:   totalPages(total, f.PageSize),
	}
	if cacheable {
		_ = utils.SetCache(ctx, s.rdb, cacheKey, out, cacheTTL)
	}
	return out, nil
}

// CheckAdminKey verifies the shared admin secret.
func (s *Service) CheckAdminKey(key string) error {
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return errUnauthorized
	}
	return nil
}
