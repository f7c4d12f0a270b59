package redis_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraredis "github.com/carteira-app/carteira/internal/infra/redis"
	"github.com/carteira-app/carteira/internal/platform/prefs"
	"github.com/carteira-app/carteira/internal/platform/session"
	"github.com/carteira-app/carteira/internal/screen"
	"github.com/carteira-app/carteira/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionStore_RoundTrip(t *testing.T) {
	_, client := newClient(t)
	store := infraredis.NewSessionStore(client, testLogger())
	ctx := context.Background()

	sess := session.Session{
		ID:        uuid.New(),
		AccountID: "acc-1",
		Token:     "jwt-token",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().UTC().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, store.Set(ctx, sess, time.Hour))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.AccountID, got.AccountID)
	assert.Equal(t, sess.Token, got.Token)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))
}

func TestSessionStore_MissReturnsNotFound(t *testing.T) {
	_, client := newClient(t)
	store := infraredis.NewSessionStore(client, testLogger())

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionStore_TTLEviction(t *testing.T) {
	mr, client := newClient(t)
	store := infraredis.NewSessionStore(client, testLogger())
	ctx := context.Background()

	sess := session.Session{ID: uuid.New(), AccountID: "acc-1", Token: "tok"}
	require.NoError(t, store.Set(ctx, sess, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	_, client := newClient(t)
	store := infraredis.NewSessionStore(client, testLogger())
	ctx := context.Background()

	sess := session.Session{ID: uuid.New(), AccountID: "acc-1", Token: "tok"}
	require.NoError(t, store.Set(ctx, sess, time.Hour))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Deleting again is not an error
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestPrefsStore_IconRoundTrip(t *testing.T) {
	_, client := newClient(t)
	store := infraredis.NewPrefsStore(client, testLogger())
	ctx := context.Background()

	_, err := store.GetIcon(ctx, "acc-1", "w-1")
	assert.ErrorIs(t, err, prefs.ErrNotFound)

	require.NoError(t, store.SetIcon(ctx, "acc-1", "w-1", "travel"))

	icon, err := store.GetIcon(ctx, "acc-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, "travel", icon)

	// Scoped per account
	_, err = store.GetIcon(ctx, "acc-2", "w-1")
	assert.ErrorIs(t, err, prefs.ErrNotFound)
}

func TestPrefsStore_WalletStateRoundTrip(t *testing.T) {
	_, client := newClient(t)
	store := infraredis.NewPrefsStore(client, testLogger())
	ctx := context.Background()

	state := screen.WalletState{
		WalletID:    "w-1",
		ActivePopup: screen.PopupGoal,
		ShowBalance: false,
	}
	require.NoError(t, store.SetWalletState(ctx, "acc-1", state))

	got, err := store.GetWalletState(ctx, "acc-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestPrefsStore_ExtractStateRoundTrip(t *testing.T) {
	_, client := newClient(t)
	store := infraredis.NewPrefsStore(client, testLogger())
	ctx := context.Background()

	_, err := store.GetExtractState(ctx, "acc-1")
	assert.ErrorIs(t, err, prefs.ErrNotFound)

	state := screen.ExtractState{ShowBalance: true, FilterCode: "PIX_RECEBIDO"}
	require.NoError(t, store.SetExtractState(ctx, "acc-1", state))

	got, err := store.GetExtractState(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}
