package users

import (
	"strings"

	"access-request-backend/db"
	"access-request-backend/lib/directory"
	usersstore "access-request-backend/lib/users/store"
	authhelpers "access-request-backend/lib/utils/auth-helpers"
	"access-request-backend/models"
	authapimodels "access-request-backend/models/api/auth"
	searchapimodels "access-request-backend/models/api/search"
	dbmodels "access-request-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	GetByID(id string) (view *authapimodels.UserView, err error)
	Create(data authapimodels.UserCreateData) (id string, err error)
	SetRole(id string, role models.UserRole) error
	SetActive(id string, isActive bool) error
	ListManagers() (list []authapimodels.UserView, err error)
	// EnsureUser - находит пользователя по почте либо заводит новую
	// учетную запись для анонимной подачи заявки
	EnsureUser(email, fullName string, managerID string) (rec *dbmodels.User, err error)
	// Search - объединённый поиск согласующих: локальная база плюс каталог
	Search(term string, limit int) (list []searchapimodels.UserSearchResult, err error)
	// ImportFromDirectory - синхронизация учетных записей из службы каталогов
	ImportFromDirectory() (imported int, err error)
}

func NewHandler() Provider {
	return &impl{
		store:     usersstore.NewInstance(db.DB),
		directory: directory.Instance,
	}
}

type impl struct {
	store     usersstore.Provider
	directory directory.Provider
}

func (i impl) GetByID(id string) (*authapimodels.UserView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return nil, nil
	}
	view := rec.ToModel()
	return &view, nil
}

func (i impl) Create(data authapimodels.UserCreateData) (id string, err error) {
	exist, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки существования пользователя")
	}
	if exist != nil {
		return "", errors.New("пользователь с такой почтой уже существует")
	}
	role := data.Role
	if role == "" {
		role = models.UserRoleUser
	}
	rec := dbmodels.User{
		UserName:   data.UserName,
		FullName:   data.FullName,
		Email:      data.Email,
		Department: data.Department,
		Password:   authhelpers.GetMD5Hash(data.Password),
		Role:       role,
		IsActive:   true,
		ManagerID:  data.ManagerID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания пользователя")
	}
	return id, nil
}

func (i impl) SetRole(id string, role models.UserRole) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return errors.New("пользователь не найден")
	}
	updMap := map[string]interface{}{
		"role": role,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка смены роли")
	}
	log.
		WithField("user_id", id).
		WithField("role", role).
		Info("Роль пользователя изменена")
	return nil
}

func (i impl) SetActive(id string, isActive bool) error {
	err := i.store.Update(id, map[string]interface{}{
		"is_active": isActive,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка смены статуса пользователя")
	}
	return nil
}

func (i impl) ListManagers() (list []authapimodels.UserView, err error) {
	recs, err := i.store.ListByRole(models.UserRoleManager)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка руководителей")
	}
	list = make([]authapimodels.UserView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) EnsureUser(email, fullName string, managerID string) (*dbmodels.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("не указана почта пользователя")
	}
	rec, err := i.store.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска пользователя")
	}
	if rec != nil {
		return rec, nil
	}
	userName := email
	if at := strings.Index(email, "@"); at > 0 {
		userName = email[:at]
	}
	newRec := dbmodels.User{
		UserName: userName,
		FullName: fullName,
		Email:    email,
		Role:     models.UserRoleUser,
		IsActive: true,
	}
	if managerID != "" {
		newRec.ManagerID = &managerID
	}
	id, err := i.store.Create(newRec)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания пользователя")
	}
	log.
		WithField("user_id", id).
		WithField("email", email).
		Info("Заведена учетная запись для заявителя")
	return i.store.GetByID(id)
}

func (i impl) Search(term string, limit int) (list []searchapimodels.UserSearchResult, err error) {
	list = []searchapimodels.UserSearchResult{}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	local, err := i.store.Search(term, limit)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка локального поиска")
	}
	seen := map[string]bool{}
	for _, rec := range local {
		seen[strings.ToLower(rec.UserName)] = true
		list = append(list, searchapimodels.UserSearchResult{
			UserName:   rec.UserName,
			FullName:   rec.FullName,
			Email:      rec.Email,
			Department: rec.Department,
			IsLocal:    true,
			UserID:     rec.ID,
		})
	}
	if i.directory != nil && i.directory.IsEnabled() && len(list) < limit {
		accounts, err := i.directory.SearchUsers(term, limit)
		if err != nil {
			// каталог недоступен - отдаём только локальные результаты
			log.WithError(err).Warn("Ошибка поиска в каталоге")
			return list, nil
		}
		for _, acc := range accounts {
			if seen[strings.ToLower(acc.UserName)] {
				continue
			}
			list = append(list, searchapimodels.UserSearchResult{
				UserName:   acc.UserName,
				FullName:   acc.FullName,
				Email:      acc.Email,
				Department: acc.Department,
				Title:      acc.Title,
				IsLocal:    false,
			})
			if len(list) >= limit {
				break
			}
		}
	}
	return list, nil
}

func (i impl) ImportFromDirectory() (imported int, err error) {
	if i.directory == nil || !i.directory.IsEnabled() {
		return 0, errors.New("интеграция с каталогом отключена")
	}
	accounts, err := i.directory.ListUsers()
	if err != nil {
		return 0, errors.Wrap(err, "ошибка выгрузки пользователей из каталога")
	}
	for _, acc := range accounts {
		if acc.Email == "" {
			continue
		}
		exist, err := i.store.FindByUserName(acc.UserName)
		if err != nil {
			return imported, errors.Wrap(err, "ошибка проверки существования пользователя")
		}
		role := models.UserRoleUser
		isManager, err := i.directory.IsUserInManagementGroup(acc.UserName)
		if err != nil {
			log.WithError(err).WithField("user_name", acc.UserName).Warn("Не удалось определить членство в группе руководителей")
		}
		if isManager {
			role = models.UserRoleManager
		}
		if exist != nil {
			updMap := map[string]interface{}{
				"full_name":         acc.FullName,
				"email":             strings.ToLower(acc.Email),
				"department":        acc.Department,
				"is_from_directory": true,
			}
			// роль администратора при синхронизации не понижаем
			if exist.Role != models.UserRoleAdmin {
				updMap["role"] = role
			}
			if err := i.store.Update(exist.ID, updMap); err != nil {
				return imported, errors.Wrap(err, "ошибка обновления пользователя")
			}
			continue
		}
		rec := dbmodels.User{
			UserName:        acc.UserName,
			FullName:        acc.FullName,
			Email:           strings.ToLower(acc.Email),
			Department:      acc.Department,
			Role:            role,
			IsActive:        true,
			IsFromDirectory: true,
		}
		if _, err := i.store.Create(rec); err != nil {
			return imported, errors.Wrap(err, "ошибка создания пользователя")
		}
		imported++
	}
	log.WithField("imported", imported).Info("Синхронизация пользователей из каталога завершена")
	return imported, nil
}
