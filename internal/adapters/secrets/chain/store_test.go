package chain

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	passstore "github.com/bnema/askai-cli/internal/adapters/secrets/pass"
	"github.com/bnema/askai-cli/internal/domain"
	portmocks "github.com/bnema/askai-cli/internal/ports/mocks"
)

func newTestStore(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	return store, primary, fallback
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), domain.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPassIsUnavailable(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), domain.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundFromBothBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), domain.AccessTokenKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), domain.AccessTokenKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, domain.AccessTokenKey, "v").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, domain.AccessTokenKey, "v").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), domain.AccessTokenKey, "v"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, domain.AccessTokenKey, "v").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), domain.AccessTokenKey, "v"))
	fallback.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, domain.TokenTypeKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, domain.TokenTypeKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), domain.TokenTypeKey))
}

func TestStoreDeleteReportsEachFailure(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, domain.RefreshTokenKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, domain.RefreshTokenKey).Return(nil).Once()

	err := store.Delete(context.Background(), domain.RefreshTokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend delete failed")
}

func TestStoreDeleteStopsOnCancellation(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, domain.RefreshTokenKey).Return(context.DeadlineExceeded).Once()

	require.ErrorIs(t, store.Delete(context.Background(), domain.RefreshTokenKey), context.DeadlineExceeded)
}

func TestStoreDeleteTreatsUnavailablePrimaryAsEmpty(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, domain.AccessTokenKey).Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Delete(mock.Anything, domain.AccessTokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), domain.AccessTokenKey))
}

func TestStoreLogsFallback(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback, WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, domain.AccessTokenKey).Return("from-file", nil).Once()

	_, err = store.Get(context.Background(), domain.AccessTokenKey)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "secret store falling back")
	assert.Contains(t, logs.String(), `"op":"get"`)
}
