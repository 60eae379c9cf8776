package users

import (
	"strings"
	"testing"

	"access-request-backend/lib/directory"
	"access-request-backend/models"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs map[string]*dbmodels.User
	seq  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]*dbmodels.User{}}
}

func (f *fakeStore) Create(rec dbmodels.User) (string, error) {
	f.seq++
	rec.ID = "user-" + rec.UserName
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.User, error) {
	return f.recs[id], nil
}

func (f *fakeStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.recs {
		if rec.Email == email {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByUserName(userName string) (*dbmodels.User, error) {
	for _, rec := range f.recs {
		if rec.UserName == userName {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	if role, exist := updMap["role"]; exist {
		rec.Role = role.(models.UserRole)
	}
	if fullName, exist := updMap["full_name"]; exist {
		rec.FullName = fullName.(string)
	}
	if isActive, exist := updMap["is_active"]; exist {
		rec.IsActive = isActive.(bool)
	}
	return nil
}

func (f *fakeStore) ListByRole(role models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.recs {
		if rec.Role == role {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeStore) Search(term string, limit int) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.recs {
		if strings.Contains(strings.ToLower(rec.FullName), strings.ToLower(term)) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

type fakeDirectory struct {
	enabled   bool
	accounts  []directory.Account
	managers  map[string]bool
	searchErr error
}

func (f *fakeDirectory) IsEnabled() bool { return f.enabled }

func (f *fakeDirectory) VerifyCredentials(userName, password string) (bool, error) {
	return false, nil
}

func (f *fakeDirectory) GetUserDetails(userName string) (*directory.Account, error) {
	return nil, nil
}

func (f *fakeDirectory) GetUserGroups(userName string) ([]string, error) {
	return nil, nil
}

func (f *fakeDirectory) IsUserInManagementGroup(userName string) (bool, error) {
	return f.managers[userName], nil
}

func (f *fakeDirectory) SearchUsers(term string, limit int) ([]directory.Account, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.accounts, nil
}

func (f *fakeDirectory) ListUsers() ([]directory.Account, error) {
	return f.accounts, nil
}

func TestEnsureUserCreatesAccount(t *testing.T) {
	store := newFakeStore()
	handler := impl{store: store, directory: &fakeDirectory{}}

	rec, err := handler.EnsureUser("  Ivanov@Corp.RU ", "Иванов Иван", "m1")
	require.NoError(t, err)
	require.Equal(t, "ivanov@corp.ru", rec.Email)
	require.Equal(t, "ivanov", rec.UserName)
	require.Equal(t, models.UserRoleUser, rec.Role)
	require.True(t, rec.IsActive)
	require.NotNil(t, rec.ManagerID)
	require.Equal(t, "m1", *rec.ManagerID)
}

func TestEnsureUserReturnsExisting(t *testing.T) {
	store := newFakeStore()
	id, _ := store.Create(dbmodels.User{UserName: "ivanov", Email: "ivanov@corp.ru"})
	handler := impl{store: store, directory: &fakeDirectory{}}

	rec, err := handler.EnsureUser("ivanov@corp.ru", "другое имя", "")
	require.NoError(t, err)
	require.Equal(t, id, rec.ID)
	require.Len(t, store.recs, 1)
}

func TestEnsureUserRequiresEmail(t *testing.T) {
	handler := impl{store: newFakeStore(), directory: &fakeDirectory{}}
	_, err := handler.EnsureUser("   ", "Иванов", "")
	require.Error(t, err)
}

func TestSearchMergesDirectory(t *testing.T) {
	store := newFakeStore()
	store.Create(dbmodels.User{UserName: "ivanov", FullName: "Иванов Иван", Email: "ivanov@corp.ru"})
	dir := &fakeDirectory{
		enabled: true,
		accounts: []directory.Account{
			// дубль локальной записи отбрасывается без учёта регистра
			{UserName: "IVANOV", FullName: "Иванов Иван"},
			{UserName: "ivanova", FullName: "Иванова Анна", Email: "ivanova@corp.ru"},
		},
	}
	handler := impl{store: store, directory: dir}

	list, err := handler.Search("иванов", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.True(t, list[0].IsLocal)
	require.Equal(t, "ivanov", list[0].UserName)
	require.False(t, list[1].IsLocal)
	require.Equal(t, "ivanova", list[1].UserName)
}

func TestSearchDirectoryErrorReturnsLocal(t *testing.T) {
	store := newFakeStore()
	store.Create(dbmodels.User{UserName: "ivanov", FullName: "Иванов Иван", Email: "ivanov@corp.ru"})
	dir := &fakeDirectory{enabled: true, searchErr: errors.New("каталог недоступен")}
	handler := impl{store: store, directory: dir}

	list, err := handler.Search("иванов", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsLocal)
}

func TestImportFromDirectory(t *testing.T) {
	store := newFakeStore()
	// локальный администратор, присутствующий и в каталоге
	store.Create(dbmodels.User{UserName: "admin", FullName: "Старое имя", Email: "admin@corp.ru", Role: models.UserRoleAdmin})
	dir := &fakeDirectory{
		enabled: true,
		accounts: []directory.Account{
			{UserName: "admin", FullName: "Новое имя", Email: "admin@corp.ru"},
			{UserName: "petrov", FullName: "Петров Петр", Email: "petrov@corp.ru"},
			{UserName: "noemail", FullName: "Без почты"},
		},
		managers: map[string]bool{"petrov": true},
	}
	handler := impl{store: store, directory: dir}

	imported, err := handler.ImportFromDirectory()
	require.NoError(t, err)
	require.Equal(t, 1, imported)

	admin, _ := store.FindByUserName("admin")
	require.Equal(t, "Новое имя", admin.FullName)
	// роль администратора при синхронизации не понижается
	require.Equal(t, models.UserRoleAdmin, admin.Role)

	petrov, _ := store.FindByUserName("petrov")
	require.NotNil(t, petrov)
	require.Equal(t, models.UserRoleManager, petrov.Role)

	missing, _ := store.FindByUserName("noemail")
	require.Nil(t, missing)
}

func TestImportDisabledDirectory(t *testing.T) {
	handler := impl{store: newFakeStore(), directory: &fakeDirectory{enabled: false}}
	_, err := handler.ImportFromDirectory()
	require.Error(t, err)
}
