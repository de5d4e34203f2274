// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/mock"
	"github.com/MKhiriev/go-track-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── round trip ──────────────────────────────────────────────────────────────

func TestRemoteStore_WriteThenRead_ByteIdentical(t *testing.T) {
	remote := newFakeRemote()
	rs := newTestRemoteStore(t, remote)
	ctx := context.Background()

	doc := models.Document(`{"current": 3, "best":[1,2,3]}`)
	require.NoError(t, rs.Write(ctx, "streaks", doc))

	raw, ok := remote.raw("data/streaks.json")
	require.True(t, ok, "document must be stored under data/{key}.json")
	assert.NotContains(t, raw, "current", "remote copy must be encrypted")

	got, err := rs.Read(ctx, "streaks")
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(got))
}

func TestRemoteStore_TwoStoresShareOneRemote(t *testing.T) {
	remote := newFakeRemote()
	ctx := context.Background()

	a := newTestRemoteStore(t, remote)
	require.NoError(t, a.Write(ctx, "goals", models.Document(`{"id":"g1"}`)))

	b := newTestRemoteStore(t, remote)
	got, err := b.Read(ctx, "goals")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g1"}`, string(got))
}

func TestRemoteStore_Read_Missing(t *testing.T) {
	rs := newTestRemoteStore(t, newFakeRemote())

	got, err := rs.Read(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ── conflicts ───────────────────────────────────────────────────────────────

func TestRemoteStore_Write_StaleTokenSurfacesConflict(t *testing.T) {
	remote := newFakeRemote()
	ctx := context.Background()

	a := newTestRemoteStore(t, remote)
	b := newTestRemoteStore(t, remote)

	require.NoError(t, a.Write(ctx, "x", models.Document(`{"v":1}`)))
	_, err := b.Read(ctx, "x")
	require.NoError(t, err)
	require.NoError(t, a.Write(ctx, "x", models.Document(`{"v":2}`)))

	err = b.Write(ctx, "x", models.Document(`{"v":3}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrConflict)

	got, err := a.Read(ctx, "x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got), "stale write must not overwrite")
}

func TestRemoteStore_Write_CreateOverExistingConflicts(t *testing.T) {
	remote := newFakeRemote()
	ctx := context.Background()

	require.NoError(t, newTestRemoteStore(t, remote).Write(ctx, "x", models.Document(`{}`)))

	err := newTestRemoteStore(t, remote).Write(ctx, "x", models.Document(`{"other":true}`))
	assert.ErrorIs(t, err, adapter.ErrConflict)
}

// ── corruption ──────────────────────────────────────────────────────────────

func TestRemoteStore_Read_Corrupted(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, remote *fakeRemote)
	}{
		{
			name: "not a blob",
			prepare: func(_ *testing.T, remote *fakeRemote) {
				remote.setRaw("data/bad.json", "%%% not base64 %%%")
			},
		},
		{
			name: "written with another password",
			prepare: func(t *testing.T, remote *fakeRemote) {
				other := NewRemoteStore(remote, newTestCrypto(),
					models.Credentials{Password: "other", Salt: testCreds.Salt}, logger.Nop())
				require.NoError(t, other.Write(context.Background(), "bad", models.Document(`{}`)))
			},
		},
		{
			name: "decrypts to non JSON",
			prepare: func(t *testing.T, remote *fakeRemote) {
				blob, err := newTestCrypto().Encrypt("plain text", testCreds.Password, testCreds.Salt)
				require.NoError(t, err)
				remote.setRaw("data/bad.json", blob)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeRemote()
			tt.prepare(t, remote)

			var reported []error
			rs := newTestRemoteStore(t, remote, WithCorruptionHandler(func(key string, err error) {
				assert.Equal(t, "bad", key)
				reported = append(reported, err)
			}))

			got, err := rs.Read(context.Background(), "bad")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.Len(t, reported, 1)
			assert.ErrorIs(t, reported[0], ErrCorruptedDocument)
		})
	}
}

func TestRemoteStore_Read_InvalidSaltIsNotCorruption(t *testing.T) {
	remote := newFakeRemote()
	writer := newTestRemoteStore(t, remote)
	require.NoError(t, writer.Write(context.Background(), "goals", models.Document(`{"id":"g1"}`)))

	var reported []string
	rs := NewRemoteStore(remote, newTestCrypto(),
		models.Credentials{Password: testCreds.Password, Salt: "not base64!"}, logger.Nop(),
		WithCorruptionHandler(func(key string, _ error) { reported = append(reported, key) }))

	got, err := rs.Read(context.Background(), "goals")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, crypto.ErrInvalidSalt)
	assert.NotErrorIs(t, err, ErrCorruptedDocument)
	assert.Empty(t, reported)
}

// ── transport behaviour ─────────────────────────────────────────────────────

func TestRemoteStore_Read_TransportErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRemoteFileClient(ctrl)
	rs := newTestRemoteStore(t, client)

	client.EXPECT().GetFile(gomock.Any(), "data/x.json").Return(nil, adapter.ErrUnauthorized)

	got, err := rs.Read(context.Background(), "x")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestRemoteStore_Write_UsesLastSeenToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRemoteFileClient(ctrl)
	rs := newTestRemoteStore(t, client)
	ctx := context.Background()

	blob, err := newTestCrypto().Encrypt(`{"a":1}`, testCreds.Password, testCreds.Salt)
	require.NoError(t, err)

	gomock.InOrder(
		client.EXPECT().GetFile(gomock.Any(), "data/x.json").
			Return(&models.RemoteFile{Path: "data/x.json", Content: blob, RevisionToken: "t1"}, nil),
		client.EXPECT().PutFile(gomock.Any(), "data/x.json", gomock.Any(), "t1", "update x").Return("t2", nil),
		client.EXPECT().PutFile(gomock.Any(), "data/x.json", gomock.Any(), "t2", "update x").Return("t3", nil),
	)

	_, err = rs.Read(ctx, "x")
	require.NoError(t, err)
	require.NoError(t, rs.Write(ctx, "x", models.Document(`{"a":2}`)))
	require.NoError(t, rs.Write(ctx, "x", models.Document(`{"a":3}`)))
}

func TestRemoteStore_Write_NeverSeenKeyCreates(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRemoteFileClient(ctrl)
	rs := newTestRemoteStore(t, client)

	client.EXPECT().PutFile(gomock.Any(), "data/new.json", gomock.Any(), "", "update new").Return("t1", nil)

	require.NoError(t, rs.Write(context.Background(), "new", models.Document(`[]`)))
}

func TestRemoteStore_RevisionTokens_SurviveAcrossStores(t *testing.T) {
	remote := newFakeRemote()
	ctx := context.Background()

	first := newTestRemoteStore(t, remote)
	require.NoError(t, first.Write(ctx, "x", models.Document(`{"v":1}`)))
	saved := first.RevisionTokens()
	require.Contains(t, saved, "data/x.json")

	second := newTestRemoteStore(t, remote)
	second.RestoreRevisionTokens(saved)
	require.NoError(t, second.Write(ctx, "x", models.Document(`{"v":2}`)), "restored token must allow an update")

	// the first store's snapshot is stale now
	third := newTestRemoteStore(t, remote)
	third.RestoreRevisionTokens(saved)
	assert.ErrorIs(t, third.Write(ctx, "x", models.Document(`{"v":3}`)), adapter.ErrConflict)
}

func TestRemoteStore_RestoreRevisionTokens_KeepsCachedTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRemoteFileClient(ctrl)
	rs := newTestRemoteStore(t, client)
	ctx := context.Background()

	client.EXPECT().PutFile(gomock.Any(), "data/x.json", gomock.Any(), "", "update x").Return("t1", nil)
	client.EXPECT().PutFile(gomock.Any(), "data/x.json", gomock.Any(), "t1", "update x").Return("t2", nil)

	require.NoError(t, rs.Write(ctx, "x", models.Document(`{}`)))
	rs.RestoreRevisionTokens(map[string]string{"data/x.json": "old", "data/y.json": ""})
	require.NoError(t, rs.Write(ctx, "x", models.Document(`{}`)))

	assert.Equal(t, map[string]string{"data/x.json": "t2"}, rs.RevisionTokens())
}

func TestRemoteStore_Write_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	rs := newTestRemoteStore(t, mock.NewMockRemoteFileClient(ctrl))
	ctx := context.Background()

	assert.ErrorIs(t, rs.Write(ctx, "x", models.Document(`{broken`)), ErrInvalidDocument)

	for _, key := range []string{"", "a/b", `a\b`, "..", " padded", "profile", "auth.enc"} {
		assert.ErrorIs(t, rs.Write(ctx, key, models.Document(`{}`)), ErrInvalidKey, "key %q", key)
	}
}

func TestRemoteStore_Delete(t *testing.T) {
	t.Run("fetches the token when unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockRemoteFileClient(ctrl)
		rs := newTestRemoteStore(t, client)

		client.EXPECT().GetFile(gomock.Any(), "data/x.json").
			Return(&models.RemoteFile{Path: "data/x.json", RevisionToken: "t9"}, nil)
		client.EXPECT().DeleteFile(gomock.Any(), "data/x.json", "t9", "delete x").Return(nil)

		require.NoError(t, rs.Delete(context.Background(), "x"))
	})

	t.Run("missing file is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockRemoteFileClient(ctrl)
		rs := newTestRemoteStore(t, client)

		client.EXPECT().GetFile(gomock.Any(), "data/x.json").Return(nil, nil)

		require.NoError(t, rs.Delete(context.Background(), "x"))
	})

	t.Run("file vanished concurrently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockRemoteFileClient(ctrl)
		rs := newTestRemoteStore(t, client)

		client.EXPECT().PutFile(gomock.Any(), "data/x.json", gomock.Any(), "", gomock.Any()).Return("t1", nil)
		client.EXPECT().DeleteFile(gomock.Any(), "data/x.json", "t1", "delete x").Return(adapter.ErrNotFound)

		require.NoError(t, rs.Write(context.Background(), "x", models.Document(`{}`)))
		require.NoError(t, rs.Delete(context.Background(), "x"))
	})

	t.Run("conflict propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockRemoteFileClient(ctrl)
		rs := newTestRemoteStore(t, client)

		client.EXPECT().GetFile(gomock.Any(), "data/x.json").
			Return(&models.RemoteFile{RevisionToken: "t1"}, nil)
		client.EXPECT().DeleteFile(gomock.Any(), "data/x.json", "t1", gomock.Any()).Return(adapter.ErrConflict)

		assert.ErrorIs(t, rs.Delete(context.Background(), "x"), adapter.ErrConflict)
	})
}

func TestRemoteStore_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRemoteFileClient(ctrl)
	rs := newTestRemoteStore(t, client)
	ctx := context.Background()

	client.EXPECT().ListFiles(gomock.Any(), "data").Return([]models.RemoteFileEntry{
		{Name: "streaks.json", Path: "data/streaks.json", RevisionToken: "s1", Type: "file"},
		{Name: "profile.json", Path: "data/profile.json", RevisionToken: "p1", Type: "file"},
		{Name: "auth.enc.json", Path: "data/auth.enc.json", RevisionToken: "a1", Type: "file"},
		{Name: "archive", Path: "data/archive", Type: "dir"},
		{Name: "notes.txt", Path: "data/notes.txt", RevisionToken: "n1", Type: "file"},
		{Name: "goals.json", Path: "data/goals.json", RevisionToken: "g1", Type: "file"},
	}, nil)

	keys, err := rs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"goals", "streaks"}, keys)

	// Listing primes the revision token cache.
	client.EXPECT().PutFile(gomock.Any(), "data/goals.json", gomock.Any(), "g1", gomock.Any()).Return("g2", nil)
	require.NoError(t, rs.Write(ctx, "goals", models.Document(`{}`)))
}

func TestRemoteStore_List_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRemoteFileClient(ctrl)
	rs := newTestRemoteStore(t, client)

	client.EXPECT().ListFiles(gomock.Any(), "data").Return(nil, adapter.ErrForbidden)

	_, err := rs.List(context.Background())
	assert.ErrorIs(t, err, adapter.ErrForbidden)
}

func TestRemoteStore_Exists(t *testing.T) {
	remote := newFakeRemote()
	rs := newTestRemoteStore(t, remote)
	ctx := context.Background()

	ok, err := rs.Exists(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rs.Write(ctx, "x", models.Document(`1`)))

	ok, err = rs.Exists(ctx, "x")
	require.NoError(t, err)
	assert.True(t, ok)
}

// ── profile & auth ──────────────────────────────────────────────────────────

func TestRemoteStore_Profile_RoundTrip(t *testing.T) {
	remote := newFakeRemote()
	rs := newTestRemoteStore(t, remote)
	ctx := context.Background()

	profile := models.Profile{
		PasswordHash: "aGFzaA==",
		PasswordSalt: "c2FsdA==",
		Owner:        "octo",
		Repo:         "tracker",
		Data:         models.Document(`{"display_name":"Octo"}`),
	}
	require.NoError(t, rs.WriteProfile(ctx, profile))

	raw, ok := remote.raw("data/profile.json")
	require.True(t, ok)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope))
	assert.Equal(t, "aGFzaA==", envelope["password_hash"])
	assert.Equal(t, "c2FsdA==", envelope["password_salt"])
	assert.Equal(t, "octo", envelope["github_owner"])
	assert.Equal(t, "tracker", envelope["github_repo"])
	assert.NotContains(t, envelope["encrypted_data"], "Octo")

	got, err := newTestRemoteStore(t, remote).ReadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile, *got)

	// A second write of the same store updates instead of creating.
	profile.Data = models.Document(`{"display_name":"Octocat"}`)
	require.NoError(t, rs.WriteProfile(ctx, profile))
}

func TestRemoteStore_Profile_Missing(t *testing.T) {
	got, err := newTestRemoteStore(t, newFakeRemote()).ReadProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRemoteStore_Profile_WrongPasswordIsAnError(t *testing.T) {
	remote := newFakeRemote()
	ctx := context.Background()
	require.NoError(t, newTestRemoteStore(t, remote).WriteProfile(ctx, models.Profile{Owner: "octo"}))

	other := NewRemoteStore(remote, newTestCrypto(), models.Credentials{Password: "nope", Salt: testCreds.Salt}, logger.Nop())
	_, err := other.ReadProfile(ctx)
	require.Error(t, err)
}

func TestRemoteStore_Profile_NotJSON(t *testing.T) {
	remote := newFakeRemote()
	remote.setRaw("data/profile.json", "<html>")

	_, err := newTestRemoteStore(t, remote).ReadProfile(context.Background())
	assert.True(t, errors.Is(err, ErrCorruptedDocument))
}

func TestRemoteStore_Auth_RoundTrip(t *testing.T) {
	remote := newFakeRemote()
	rs := newTestRemoteStore(t, remote)
	ctx := context.Background()

	got, err := rs.ReadAuth(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	envelope := models.AuthEnvelope{Salt: testCreds.Salt, EncryptedToken: "blob"}
	require.NoError(t, rs.WriteAuth(ctx, envelope))

	raw, _ := remote.raw("data/auth.enc.json")
	assert.JSONEq(t, `{"salt":"c2FsdHNhbHRzYWx0c2FsdA==","encrypted_token":"blob"}`, raw)

	got, err = rs.ReadAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, &envelope, got)
}
