package auth

import (
	"access-request-backend/db"
	"access-request-backend/lib/directory"
	usersstore "access-request-backend/lib/users/store"
	authhelpers "access-request-backend/lib/utils/auth-helpers"
	authutils "access-request-backend/lib/utils/auth-utils"
	authapimodels "access-request-backend/models/api/auth"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	Login(data authapimodels.LoginRequest) (resp *authapimodels.JWTResponse, err error)
	// VerifyCredentials - повторное подтверждение учетных данных при
	// принятии решения по заявке. Сначала проверка по каталогу,
	// при отключенном каталоге - по локальной базе
	VerifyCredentials(userName, password string) (ok bool, err error)
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

func (i impl) Login(data authapimodels.LoginRequest) (*authapimodels.JWTResponse, error) {
	logger := log.WithField("email", data.Email)
	rec, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска пользователя")
	}
	if rec == nil || !rec.IsActive {
		logger.Warn("Попытка входа: пользователь не найден или заблокирован")
		return nil, errors.New("неверная почта или пароль")
	}
	ok, err := i.checkPassword(rec.UserName, rec.Password, data.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("Попытка входа: неверный пароль")
		return nil, errors.New("неверная почта или пароль")
	}
	token, err := authutils.GetToken(rec.ID, rec.GetDisplayName(), rec.Role)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка выпуска токена")
	}
	logger.Info("Пользователь авторизован")
	return &authapimodels.JWTResponse{Token: token}, nil
}

func (i impl) VerifyCredentials(userName, password string) (bool, error) {
	if userName == "" || password == "" {
		return false, nil
	}
	rec, err := i.store.FindByUserName(userName)
	if err != nil {
		return false, errors.Wrap(err, "ошибка поиска пользователя")
	}
	if rec == nil || !rec.IsActive {
		return false, nil
	}
	return i.checkPassword(rec.UserName, rec.Password, password)
}

func (i impl) checkPassword(userName, storedHash, password string) (bool, error) {
	if i.directory != nil && i.directory.IsEnabled() {
		ok, err := i.directory.VerifyCredentials(userName, password)
		if err != nil {
			log.WithError(err).WithField("user_name", userName).Warn("Ошибка проверки учетных данных по каталогу")
		}
		if ok {
			return true, nil
		}
		// каталог не подтвердил - пробуем локальный пароль, иначе
		// локальные учетные записи не смогут принимать решения
	}
	if storedHash == "" {
		return false, nil
	}
	return storedHash == authhelpers.GetMD5Hash(password), nil
}
