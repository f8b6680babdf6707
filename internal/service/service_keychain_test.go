package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/mock"
	"github.com/MKhiriev/go-note-vault/internal/session"
	"github.com/MKhiriev/go-note-vault/models"
)

// Failure paths of the keychain that the real implementation only reaches
// on a broken platform.

type mockedKeyChainFixture struct {
	keychain *mock.MockKeyChainService
	profiles *mock.MockProfileRepository
	notes    *mock.MockNoteRepository
	cache    *session.Cache
	accounts AccountService
	noteSvc  NoteService
}

func newMockedKeyChainFixture(t *testing.T) mockedKeyChainFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := mockedKeyChainFixture{
		keychain: mock.NewMockKeyChainService(ctrl),
		profiles: mock.NewMockProfileRepository(ctrl),
		notes:    mock.NewMockNoteRepository(ctrl),
		cache:    newCache(),
	}
	f.accounts = NewAccountService(f.profiles, f.keychain, f.cache, logger.Nop(),
		WithBcryptCost(bcrypt.MinCost),
		WithIDGenerator(&sequentialIDs{prefix: "profile"}),
	)
	f.noteSvc = NewNoteService(f.profiles, f.notes, f.keychain, f.cache, &sequentialIDs{prefix: "note"}, logger.Nop())
	return f
}

func wrappedProfile(t *testing.T) models.Profile {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return models.Profile{
		ID:           "profile-1",
		Login:        testLogin,
		PasswordHash: string(hash),
		EncSalt:      "d3JhcC1zYWx0LTEyMzQ1Ng==",
		MasterKeyEnc: "enc:v1:bm9uY2U=:Y3Q=",
		VaultSalt:    "dmF1bHQtc2FsdC0xMjM0NQ==",
	}
}

func TestAccountService_SignUp_PassphraseGenerationFails(t *testing.T) {
	f := newMockedKeyChainFixture(t)
	f.keychain.EXPECT().GeneratePassphrase(gomock.Any()).Return("", crypto.ErrUnavailable)

	_, err := f.accounts.SignUp(context.Background(), testLogin, testPassword)

	require.ErrorIs(t, err, crypto.ErrUnavailable)
}

func TestAccountService_SignUp_DeriveFailsStillCreatesProfile(t *testing.T) {
	f := newMockedKeyChainFixture(t)
	f.keychain.EXPECT().GeneratePassphrase(gomock.Any()).Return("vault-passphrase", nil)
	f.keychain.EXPECT().Wrap("vault-passphrase", testPassword).
		Return(crypto.WrappedSecret{Salt: "c2FsdA==", Enc: "enc:v1:a:b"})
	f.keychain.EXPECT().GenerateSalt().Return("dmF1bHQ=", nil)
	f.profiles.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(nil)
	f.keychain.EXPECT().DeriveKey("vault-passphrase", "dmF1bHQ=").Return(nil, crypto.ErrUnavailable)

	res, err := f.accounts.SignUp(context.Background(), testLogin, testPassword)

	require.NoError(t, err)
	assert.False(t, res.Encrypted)
	_, ok := f.cache.LoadKey()
	assert.False(t, ok)
}

func TestAccountService_SignIn_UnwrapRejected(t *testing.T) {
	f := newMockedKeyChainFixture(t)
	profile := wrappedProfile(t)
	f.profiles.EXPECT().GetProfileByLogin(gomock.Any(), testLogin).Return(profile, nil)
	f.keychain.EXPECT().Available().Return(true)
	f.keychain.EXPECT().Unwrap(profile.WrappedSecret(), testPassword).Return("", false)

	_, err := f.accounts.SignIn(context.Background(), testLogin, testPassword)

	require.ErrorIs(t, err, ErrVaultLocked)
	_, ok := f.cache.LoadKey()
	assert.False(t, ok)
}

func TestAccountService_SetPassphrase_NoSalt(t *testing.T) {
	f := newMockedKeyChainFixture(t)
	f.keychain.EXPECT().GenerateSalt().Return("", crypto.ErrUnavailable)

	_, err := f.accounts.SetPassphrase(context.Background(), "my passphrase", "")

	require.ErrorIs(t, err, ErrCryptoUnavailable)
	require.ErrorIs(t, err, crypto.ErrUnavailable)
}

func TestAccountService_ChangePassword_BackendLostWhileRewrapping(t *testing.T) {
	f := newMockedKeyChainFixture(t)
	profile := wrappedProfile(t)
	f.profiles.EXPECT().GetProfileByLogin(gomock.Any(), testLogin).Return(profile, nil)
	f.keychain.EXPECT().Available().Return(true)
	f.keychain.EXPECT().Unwrap(profile.WrappedSecret(), testPassword).Return("vault-passphrase", true)
	// a sentinel record means the passphrase would be written in clear
	f.keychain.EXPECT().Wrap("vault-passphrase", "new-password").
		Return(crypto.WrappedSecret{Enc: "vault-passphrase"})

	err := f.accounts.ChangePassword(context.Background(), testLogin, testPassword, "new-password")

	require.ErrorIs(t, err, ErrCryptoUnavailable)
}

func TestNoteService_Create_ImportKeyRejected(t *testing.T) {
	f := newMockedKeyChainFixture(t)
	f.cache.Save("Y29ycnVwdA==", "c2FsdA==")
	f.profiles.EXPECT().GetProfileByLogin(gomock.Any(), testLogin).Return(wrappedProfile(t), nil)
	f.keychain.EXPECT().Available().Return(true)
	f.keychain.EXPECT().ImportKey("Y29ycnVwdA==").Return(nil, errors.New("bad key"))

	_, err := f.noteSvc.Create(context.Background(), testLogin, "t", "c")

	require.ErrorIs(t, err, ErrVaultLocked)
}
