// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/mock"
	"github.com/MKhiriev/go-track-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeFactory builds RemoteStores over one shared fakeRemote and remembers
// the arguments of the last call.
type fakeFactory struct {
	remote *fakeRemote
	crypto crypto.CryptoService

	owner, repo, token string
	creds              models.Credentials
}

func (f *fakeFactory) build(owner, repo, token string, creds models.Credentials) (RemoteStore, error) {
	f.owner, f.repo, f.token, f.creds = owner, repo, token, creds
	return NewRemoteStore(f.remote, f.crypto, creds, logger.Nop()), nil
}

func newProfileFixture() (ProfileService, RecoveryService, *fakeFactory) {
	cryptoService := newTestCrypto()
	factory := &fakeFactory{remote: newFakeRemote(), crypto: cryptoService}
	profiles := NewProfileService(cryptoService, factory.build, logger.Nop())
	recovery := NewRecoveryService(factory.remote, cryptoService, logger.Nop())
	return profiles, recovery, factory
}

func TestProfileService_Create(t *testing.T) {
	profiles, _, factory := newProfileFixture()
	ctx := context.Background()

	session, creds, err := profiles.Create(ctx, "pa55", "octo", "tracker", "ghp_secret", models.Document(`{"name":"Octo"}`))
	require.NoError(t, err)

	assert.Equal(t, "octo", session.Owner)
	assert.Equal(t, "tracker", session.Repo)
	assert.Equal(t, creds.Salt, session.Salt)
	assert.Equal(t, "pa55", creds.Password)
	assert.NotEqual(t, session.Salt, session.PasswordSalt, "verifier salt is independent from the data salt")

	assert.Equal(t, "ghp_secret", factory.token)
	assert.Equal(t, creds, factory.creds)

	rawAuth, ok := factory.remote.raw("data/auth.enc.json")
	require.True(t, ok)
	assert.NotContains(t, rawAuth, "ghp_secret")

	var auth models.AuthEnvelope
	require.NoError(t, json.Unmarshal([]byte(rawAuth), &auth))
	assert.Equal(t, session.Salt, auth.Salt)

	profile, err := NewRemoteStore(factory.remote, factory.crypto, creds, logger.Nop()).ReadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, session.PasswordHash, profile.PasswordHash)
	assert.JSONEq(t, `{"name":"Octo"}`, string(profile.Data))
}

func TestProfileService_Create_InvalidInput(t *testing.T) {
	profiles, _, _ := newProfileFixture()
	ctx := context.Background()

	for _, args := range [][4]string{
		{"", "octo", "tracker", "tok"},
		{"pw", "", "tracker", "tok"},
		{"pw", "octo", "", "tok"},
		{"pw", "octo", "tracker", ""},
	} {
		_, _, err := profiles.Create(ctx, args[0], args[1], args[2], args[3], nil)
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "args %v", args)
	}
}

func TestProfileService_Create_ExistingProfileConflicts(t *testing.T) {
	profiles, _, _ := newProfileFixture()
	ctx := context.Background()

	_, _, err := profiles.Create(ctx, "pw", "octo", "tracker", "tok", nil)
	require.NoError(t, err)

	_, _, err = profiles.Create(ctx, "other", "octo", "tracker", "tok", nil)
	assert.ErrorIs(t, err, adapter.ErrConflict)
}

func TestProfileService_Create_CryptoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	cryptoService := mock.NewMockCryptoService(ctrl)
	profiles := NewProfileService(cryptoService, func(string, string, string, models.Credentials) (RemoteStore, error) {
		t.Fatal("remote must not be contacted")
		return nil, nil
	}, logger.Nop())

	cryptoService.EXPECT().GenerateSalt().Return("", errors.New("entropy exhausted"))

	_, _, err := profiles.Create(context.Background(), "pw", "octo", "tracker", "tok", nil)
	require.Error(t, err)
}

func TestProfileService_VerifyAndUnlock(t *testing.T) {
	profiles, _, _ := newProfileFixture()

	session, creds, err := profiles.Create(context.Background(), "pw", "octo", "tracker", "tok", nil)
	require.NoError(t, err)

	assert.True(t, profiles.Verify(session, "pw"))
	assert.False(t, profiles.Verify(session, "pW"))

	unlocked, err := profiles.Unlock(session, "pw")
	require.NoError(t, err)
	assert.Equal(t, creds, unlocked)

	_, err = profiles.Unlock(session, "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

// ── Recovery ────────────────────────────────────────────────────────────────

func TestRecoveryService_Recover(t *testing.T) {
	profiles, recovery, factory := newProfileFixture()
	ctx := context.Background()

	session, creds, err := profiles.Create(ctx, "pw", "octo", "tracker", "ghp_secret", models.Document(`{"n":1}`))
	require.NoError(t, err)

	got, err := recovery.Recover(ctx, "octo", "tracker", "pw")
	require.NoError(t, err)
	assert.Equal(t, session, got.Session)
	assert.Equal(t, creds, got.Credentials)
	assert.Equal(t, "ghp_secret", got.Token)

	// The recovered credentials decrypt documents written before recovery.
	rs := NewRemoteStore(factory.remote, factory.crypto, creds, logger.Nop())
	require.NoError(t, rs.Write(ctx, "streaks", models.Document(`{"current":1}`)))
	doc, err := NewRemoteStore(factory.remote, factory.crypto, got.Credentials, logger.Nop()).Read(ctx, "streaks")
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":1}`, string(doc))
}

func TestRecoveryService_Recover_WrongPassword(t *testing.T) {
	profiles, recovery, _ := newProfileFixture()
	ctx := context.Background()

	_, _, err := profiles.Create(ctx, "pw", "octo", "tracker", "tok", nil)
	require.NoError(t, err)

	_, err = recovery.Recover(ctx, "octo", "tracker", "not-pw")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestRecoveryService_Recover_MissingFiles(t *testing.T) {
	_, recovery, factory := newProfileFixture()
	ctx := context.Background()

	_, err := recovery.Recover(ctx, "octo", "tracker", "pw")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	factory.remote.setRaw("data/profile.json", `{"password_hash":"aA==","password_salt":"aA=="}`)
	_, err = recovery.Recover(ctx, "octo", "tracker", "pw")
	assert.ErrorIs(t, err, ErrProfileNotFound, "auth envelope is missing")
}

func TestRecoveryService_Recover_Failures(t *testing.T) {
	tests := []struct {
		name    string
		profile []byte
		auth    []byte
		err     error
		wantErr error
	}{
		{name: "transport", err: adapter.ErrForbidden, wantErr: adapter.ErrForbidden},
		{name: "profile not json", profile: []byte("<html>"), auth: []byte(`{}`), wantErr: ErrCorruptedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mock.NewMockPublicFileReader(ctrl)
			recovery := NewRecoveryService(reader, newTestCrypto(), logger.Nop())

			reader.EXPECT().FetchPublic(gomock.Any(), "octo", "tracker", "data/profile.json").Return(tt.profile, tt.err)
			if tt.err == nil && json.Valid(tt.profile) {
				reader.EXPECT().FetchPublic(gomock.Any(), "octo", "tracker", "data/auth.enc.json").Return(tt.auth, nil)
			}

			_, err := recovery.Recover(context.Background(), "octo", "tracker", "pw")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecoveryService_Recover_CorruptedToken(t *testing.T) {
	profiles, recovery, factory := newProfileFixture()
	ctx := context.Background()

	_, _, err := profiles.Create(ctx, "pw", "octo", "tracker", "tok", nil)
	require.NoError(t, err)

	raw, _ := factory.remote.raw("data/auth.enc.json")
	var auth models.AuthEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &auth))
	auth.EncryptedToken = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	body, err := json.Marshal(auth)
	require.NoError(t, err)
	factory.remote.setRaw("data/auth.enc.json", string(body))

	_, err = recovery.Recover(ctx, "octo", "tracker", "pw")
	assert.ErrorIs(t, err, ErrCorruptedDocument)
}

func TestRecoveryService_Recover_InvalidInput(t *testing.T) {
	_, recovery, _ := newProfileFixture()

	_, err := recovery.Recover(context.Background(), "octo", "", "pw")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestNewRemoteStoreFactory(t *testing.T) {
	cfg := config.ClientAdapter{APIURL: "http://127.0.0.1:1", Branch: "main"}
	factory := NewRemoteStoreFactory(cfg, newTestCrypto(), nil, logger.Nop())

	rs, err := factory("octo", "tracker", "tok", testCreds)
	require.NoError(t, err)
	assert.NotNil(t, rs)

	bad := NewRemoteStoreFactory(config.ClientAdapter{APIURL: "://nope"}, newTestCrypto(), nil, logger.Nop())
	_, err = bad("octo", "tracker", "tok", testCreds)
	assert.Error(t, err)
}
