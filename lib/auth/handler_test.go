package auth

import (
	"testing"

	"access-request-backend/lib/directory"
	authhelpers "access-request-backend/lib/utils/auth-helpers"
	"access-request-backend/models"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs []dbmodels.User
}

func (f *fakeStore) Create(rec dbmodels.User) (string, error)  { return "", nil }
func (f *fakeStore) GetByID(id string) (*dbmodels.User, error) { return nil, nil }

func (f *fakeStore) FindByEmail(email string) (*dbmodels.User, error) {
	for idx := range f.recs {
		if f.recs[idx].Email == email {
			return &f.recs[idx], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByUserName(userName string) (*dbmodels.User, error) {
	for idx := range f.recs {
		if f.recs[idx].UserName == userName {
			return &f.recs[idx], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeStore) ListByRole(role models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}
func (f *fakeStore) Search(term string, limit int) ([]dbmodels.User, error) {
	return nil, nil
}

type fakeDirectory struct {
	enabled   bool
	accepted  map[string]string
	verifyErr error
}

func (f *fakeDirectory) IsEnabled() bool { return f.enabled }

func (f *fakeDirectory) VerifyCredentials(userName, password string) (bool, error) {
	if f.verifyErr != nil {
		return false, f.verifyErr
	}
	return f.accepted[userName] == password, nil
}

func (f *fakeDirectory) GetUserDetails(userName string) (*directory.Account, error) {
	return nil, nil
}
func (f *fakeDirectory) GetUserGroups(userName string) ([]string, error) { return nil, nil }
func (f *fakeDirectory) IsUserInManagementGroup(userName string) (bool, error) {
	return false, nil
}
func (f *fakeDirectory) SearchUsers(term string, limit int) ([]directory.Account, error) {
	return nil, nil
}
func (f *fakeDirectory) ListUsers() ([]directory.Account, error) { return nil, nil }

func TestVerifyCredentialsLocal(t *testing.T) {
	store := &fakeStore{recs: []dbmodels.User{
		{
			BaseModel: dbmodels.BaseModel{ID: "m1"},
			UserName:  "petrov",
			Password:  authhelpers.GetMD5Hash("secret"),
			IsActive:  true,
		},
	}}
	handler := impl{store: store, directory: &fakeDirectory{}}

	ok, err := handler.VerifyCredentials("petrov", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = handler.VerifyCredentials("petrov", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCredentialsEmptyInput(t *testing.T) {
	handler := impl{store: &fakeStore{}, directory: &fakeDirectory{}}

	ok, err := handler.VerifyCredentials("", "secret")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = handler.VerifyCredentials("petrov", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCredentialsUnknownOrBlocked(t *testing.T) {
	store := &fakeStore{recs: []dbmodels.User{
		{
			UserName: "blocked",
			Password: authhelpers.GetMD5Hash("secret"),
			IsActive: false,
		},
	}}
	handler := impl{store: store, directory: &fakeDirectory{}}

	ok, err := handler.VerifyCredentials("missing", "secret")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = handler.VerifyCredentials("blocked", "secret")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCredentialsViaDirectory(t *testing.T) {
	store := &fakeStore{recs: []dbmodels.User{
		{
			UserName: "petrov",
			// локальный пароль не задан - учетная запись из каталога
			IsActive: true,
		},
	}}
	dir := &fakeDirectory{enabled: true, accepted: map[string]string{"petrov": "ldap-pass"}}
	handler := impl{store: store, directory: dir}

	ok, err := handler.VerifyCredentials("petrov", "ldap-pass")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = handler.VerifyCredentials("petrov", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCredentialsDirectoryRejectFallsBackToLocal(t *testing.T) {
	store := &fakeStore{recs: []dbmodels.User{
		{
			BaseModel: dbmodels.BaseModel{ID: "m1"},
			UserName:  "petrov",
			Password:  authhelpers.GetMD5Hash("secret"),
			IsActive:  true,
		},
	}}
	// каталог включен, но учетная запись локальная - каталог её не знает
	dir := &fakeDirectory{enabled: true, accepted: map[string]string{}}
	handler := impl{store: store, directory: dir}

	ok, err := handler.VerifyCredentials("petrov", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = handler.VerifyCredentials("petrov", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCredentialsDirectoryErrorFallsBackToLocal(t *testing.T) {
	store := &fakeStore{recs: []dbmodels.User{
		{
			UserName: "petrov",
			Password: authhelpers.GetMD5Hash("secret"),
			IsActive: true,
		},
	}}
	dir := &fakeDirectory{enabled: true, verifyErr: errors.New("каталог недоступен")}
	handler := impl{store: store, directory: dir}

	ok, err := handler.VerifyCredentials("petrov", "secret")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyCredentialsNoLocalHash(t *testing.T) {
	store := &fakeStore{recs: []dbmodels.User{
		{UserName: "petrov", IsActive: true},
	}}
	handler := impl{store: store, directory: &fakeDirectory{}}

	// без каталога и без локального хеша пароль не подтверждается
	ok, err := handler.VerifyCredentials("petrov", "anything")
	require.NoError(t, err)
	require.False(t, ok)
}
