package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/repository"
	"github.com/kampus/tugasin/internal/testutil"
	"github.com/kampus/tugasin/internal/todoapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	todoapi.Client // unused todo methods panic if reached

	loginErr  error
	logoutErr error
	logouts   []string
	registers int
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (*todoapi.AuthData, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &todoapi.AuthData{ID: "u1", Email: email, FullName: "Ani", Token: "tok-" + password}, nil
}

func (f *fakeAuthAPI) Register(_ context.Context, email, fullName, _ string) (*todoapi.AuthData, error) {
	f.registers++
	return &todoapi.AuthData{ID: "u2", Email: email, FullName: fullName, Token: "fresh"}, nil
}

func (f *fakeAuthAPI) Logout(_ context.Context, token, userID string) error {
	f.logouts = append(f.logouts, token+"@"+userID)
	return f.logoutErr
}

func newService(t *testing.T, api todoapi.Client) (*Service, *repository.SQLiteRecordRepo) {
	t.Helper()
	records := repository.NewSQLiteRecordRepo(testutil.NewTestDB(t))
	return NewService(api, repository.NewSessionRepo(records)), records
}

func TestLogin_PersistsSession(t *testing.T) {
	svc, records := newService(t, &fakeAuthAPI{})
	ctx := context.Background()

	session, err := svc.Login(ctx, Credentials{Email: " ani@kampus.ac.id ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Session{ID: "u1", Email: "ani@kampus.ac.id", FullName: "Ani", Token: "tok-pw", Status: true}, session)

	raw, err := records.Get(ctx, repository.SessionRecord)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"u1","email":"ani@kampus.ac.id","fullName":"Ani","token":"tok-pw","status":true}`, string(raw))

	token, err := svc.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-pw", token)
}

func TestLogin_BadCredentialsLeaveNoSession(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &todoapi.APIError{StatusCode: 401, Message: "wrong password"}}
	svc, records := newService(t, api)
	ctx := context.Background()

	_, err := svc.Login(ctx, Credentials{Email: "ani@kampus.ac.id", Password: "bad"})
	require.ErrorIs(t, err, todoapi.ErrUnauthorized)

	assert.Nil(t, svc.Current())
	_, err = records.Get(ctx, repository.SessionRecord)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogin_ValidatesBeforeCallingAPI(t *testing.T) {
	api := &fakeAuthAPI{}
	svc, _ := newService(t, api)

	_, err := svc.Login(context.Background(), Credentials{Email: "nope", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fullName", verr.Field)
	assert.Equal(t, 0, api.registers)
}

func TestRegister_LogsIn(t *testing.T) {
	svc, _ := newService(t, &fakeAuthAPI{})

	session, err := svc.Register(context.Background(), Credentials{Email: "b@kampus.ac.id", FullName: " Budi ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Budi", session.FullName)
	assert.True(t, svc.Current().Active())
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("no record", func(t *testing.T) {
		svc, _ := newService(t, &fakeAuthAPI{})
		session, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("stored session", func(t *testing.T) {
		svc, records := newService(t, &fakeAuthAPI{})
		require.NoError(t, records.Put(ctx, repository.SessionRecord,
			[]byte(`{"_id":"u1","email":"a@b.co","fullName":"A","token":"t","status":true}`)))

		session, err := svc.Restore(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "t", session.Token)
		assert.Equal(t, session, svc.Current())
	})

	t.Run("inactive session", func(t *testing.T) {
		svc, records := newService(t, &fakeAuthAPI{})
		require.NoError(t, records.Put(ctx, repository.SessionRecord,
			[]byte(`{"_id":"u1","token":"t","status":false}`)))

		session, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("corrupt record is removed", func(t *testing.T) {
		svc, records := newService(t, &fakeAuthAPI{})
		require.NoError(t, records.Put(ctx, repository.SessionRecord, []byte(`{broken`)))

		session, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)

		_, err = records.Get(ctx, repository.SessionRecord)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestLogout_ClearsSessionEvenWhenAPIFails(t *testing.T) {
	api := &fakeAuthAPI{}
	svc, records := newService(t, api)
	ctx := context.Background()

	_, err := svc.Login(ctx, Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	api.logoutErr = errors.New("connection reset")
	err = svc.Logout(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	assert.Equal(t, []string{"tok-pw@u1"}, api.logouts)
	assert.Nil(t, svc.Current())
	_, err = records.Get(ctx, repository.SessionRecord)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Logout(ctx), ErrNotLoggedIn)
	_, err = svc.Token()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
