package ledger

import (
	"context"
	"errors"
	"testing"

	"literary_voice/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newCachedService(t *testing.T) (*Service, Account, redismock.ClientMock) {
	t.Helper()
	base, gdb := newTestService(t)
	acct, err := base.Signup(context.Background(), "reader@example.com", "hunter22")
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	return NewService(gdb, Options{AdminKey: testAdminKey, Redis: rdb, HashCost: bcrypt.MinCost}), acct, mock
}

func TestBalanceUsesCache(t *testing.T) {
	svc, acct, mock := newCachedService(t)
	ctx := context.Background()
	gen := accountGenKey(acct.APIKey)
	key := balanceCacheKey(acct.APIKey, 0)

	mock.ExpectGet(gen).RedisNil()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, []byte("15"), cacheTTL).SetVal("OK")
	credits, err := svc.Balance(ctx, acct.APIKey)
	require.NoError(t, err)
	assert.Equal(t, 15, credits)

	mock.ExpectGet(gen).RedisNil()
	mock.ExpectGet(key).SetVal("15")
	credits, err = svc.Balance(ctx, acct.APIKey)
	require.NoError(t, err)
	assert.Equal(t, 15, credits)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeductRetiresCachedBalance(t *testing.T) {
	svc, acct, mock := newCachedService(t)
	ctx := context.Background()
	gen := accountGenKey(acct.APIKey)

	mock.ExpectIncr(gen).SetVal(1)
	mock.ExpectExpire(gen, genTTL).SetVal(true)
	mock.ExpectIncr(adminGenKey).SetVal(1)
	mock.ExpectExpire(adminGenKey, genTTL).SetVal(true)
	credits, err := svc.Deduct(ctx, acct.APIKey, 1, domain.ActionInfo)
	require.NoError(t, err)
	assert.Equal(t, 14, credits)

	// a balance cached before the deduction lives under generation 0 and is
	// never consulted again
	mock.ExpectGet(gen).SetVal("1")
	mock.ExpectGet(balanceCacheKey(acct.APIKey, 1)).RedisNil()
	mock.ExpectSet(balanceCacheKey(acct.APIKey, 1), []byte("14"), cacheTTL).SetVal("OK")
	credits, err = svc.Balance(ctx, acct.APIKey)
	require.NoError(t, err)
	assert.Equal(t, 14, credits)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceSkipsCacheWhenGenerationUnknown(t *testing.T) {
	svc, acct, mock := newCachedService(t)

	// with the generation unreadable nothing is read from or written to the cache
	mock.ExpectGet(accountGenKey(acct.APIKey)).SetErr(errors.New("connection refused"))
	credits, err := svc.Balance(context.Background(), acct.APIKey)
	require.NoError(t, err)
	assert.Equal(t, 15, credits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRetiresAdminListings(t *testing.T) {
	svc, _, mock := newCachedService(t)
	ctx := context.Background()

	mock.ExpectIncr(adminGenKey).SetVal(4)
	mock.ExpectExpire(adminGenKey, genTTL).SetVal(true)
	_, err := svc.Signup(ctx, "second@example.com", "hunter22")
	require.NoError(t, err)

	mock.ExpectGet(adminGenKey).SetVal("4")
	mock.ExpectGet("admin:users:gen=4:page=1:size=20").RedisNil()
	mock.Regexp().ExpectSet("admin:users:gen=4:page=1:size=20", `.*`, cacheTTL).SetVal("OK")
	users, err := svc.ListUsers(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, users.Users, 2)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKeysHideAPIKey(t *testing.T) {
	key := balanceCacheKey("super-secret-key", 0)
	assert.NotContains(t, key, "super-secret-key")
	assert.NotContains(t, accountGenKey("super-secret-key"), "super-secret-key")
	assert.Equal(t, key, balanceCacheKey("super-secret-key", 0))
	assert.NotEqual(t, key, balanceCacheKey("other-key", 0))
	assert.NotEqual(t, key, balanceCacheKey("super-secret-key", 1))
}
