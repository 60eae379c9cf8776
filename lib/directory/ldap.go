package directory

import (
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

func NewInstance(settings Settings) Provider {
	// адрес-заготовка из примера конфигурации равносилен отключенной интеграции
	if !settings.Enabled || settings.Addr == "" || strings.Contains(settings.Addr, "yourdomain.com") {
		return &disabledImpl{}
	}
	return &ldapImpl{
		settings: settings,
	}
}

// disabledImpl - заглушка при отключенной интеграции с каталогом.
// Все операции безопасно возвращают пустой результат
type disabledImpl struct{}

func (i disabledImpl) IsEnabled() bool { return false }

func (i disabledImpl) VerifyCredentials(userName, password string) (bool, error) {
	return false, nil
}

func (i disabledImpl) GetUserDetails(userName string) (*Account, error) {
	return nil, nil
}

func (i disabledImpl) GetUserGroups(userName string) ([]string, error) {
	return []string{}, nil
}

func (i disabledImpl) IsUserInManagementGroup(userName string) (bool, error) {
	return false, nil
}

func (i disabledImpl) SearchUsers(term string, limit int) ([]Account, error) {
	return []Account{}, nil
}

func (i disabledImpl) ListUsers() ([]Account, error) {
	return []Account{}, nil
}

type ldapImpl struct {
	settings Settings
}

func (i ldapImpl) IsEnabled() bool { return true }

func (i ldapImpl) connect() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(i.settings.Addr)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подключения к службе каталогов")
	}
	err = conn.Bind(i.settings.BindUser, i.settings.BindPassword)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ошибка служебной авторизации в каталоге")
	}
	return conn, nil
}

var userAttributes = []string{"sAMAccountName", "cn", "mail", "department", "title", "memberOf", "dn"}

func userFilter(userName string) string {
	return fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldap.EscapeFilter(userName))
}

func entryToAccount(entry *ldap.Entry) Account {
	return Account{
		UserName:   entry.GetAttributeValue("sAMAccountName"),
		FullName:   entry.GetAttributeValue("cn"),
		Email:      entry.GetAttributeValue("mail"),
		Department: entry.GetAttributeValue("department"),
		Title:      entry.GetAttributeValue("title"),
	}
}

func (i ldapImpl) searchOne(conn *ldap.Conn, userName string) (*ldap.Entry, error) {
	req := ldap.NewSearchRequest(
		i.settings.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		userFilter(userName),
		userAttributes,
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска пользователя в каталоге")
	}
	if len(res.Entries) == 0 {
		return nil, nil
	}
	return res.Entries[0], nil
}

func (i ldapImpl) VerifyCredentials(userName, password string) (bool, error) {
	// пустой пароль ldap трактует как анонимный bind, отсекаем сразу
	if password == "" {
		return false, nil
	}
	conn, err := i.connect()
	if err != nil {
		return false, err
	}
	defer conn.Close()
	entry, err := i.searchOne(conn, userName)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, nil
	}
	err = conn.Bind(entry.DN, password)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return false, nil
		}
		return false, errors.Wrap(err, "ошибка проверки учетных данных")
	}
	return true, nil
}

func (i ldapImpl) GetUserDetails(userName string) (*Account, error) {
	conn, err := i.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	entry, err := i.searchOne(conn, userName)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	acc := entryToAccount(entry)
	return &acc, nil
}

func (i ldapImpl) GetUserGroups(userName string) ([]string, error) {
	conn, err := i.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	entry, err := i.searchOne(conn, userName)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []string{}, nil
	}
	groups := []string{}
	for _, dn := range entry.GetAttributeValues("memberOf") {
		// из DN группы берём только CN
		parsed, err := ldap.ParseDN(dn)
		if err != nil {
			log.WithError(err).WithField("group_dn", dn).Warn("Не удалось разобрать DN группы")
			continue
		}
		for _, rdn := range parsed.RDNs {
			for _, attr := range rdn.Attributes {
				if strings.EqualFold(attr.Type, "CN") {
					groups = append(groups, attr.Value)
				}
			}
		}
	}
	return groups, nil
}

func (i ldapImpl) IsUserInManagementGroup(userName string) (bool, error) {
	if i.settings.ManagementGroup == "" {
		return false, nil
	}
	groups, err := i.GetUserGroups(userName)
	if err != nil {
		return false, err
	}
	for _, group := range groups {
		if strings.EqualFold(group, i.settings.ManagementGroup) {
			return true, nil
		}
	}
	return false, nil
}

func (i ldapImpl) SearchUsers(term string, limit int) ([]Account, error) {
	conn, err := i.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	escaped := ldap.EscapeFilter(term)
	filter := fmt.Sprintf("(&(objectClass=user)(|(sAMAccountName=*%s*)(cn=*%s*)(mail=*%s*)))", escaped, escaped, escaped)
	req := ldap.NewSearchRequest(
		i.settings.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, limit, 0, false,
		filter,
		userAttributes,
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска пользователей в каталоге")
	}
	list := make([]Account, 0, len(res.Entries))
	for _, entry := range res.Entries {
		list = append(list, entryToAccount(entry))
	}
	return list, nil
}

func (i ldapImpl) ListUsers() ([]Account, error) {
	conn, err := i.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	req := ldap.NewSearchRequest(
		i.settings.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		"(&(objectClass=user)(!(objectClass=computer)))",
		userAttributes,
		nil,
	)
	res, err := conn.SearchWithPaging(req, 500)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка выгрузки пользователей из каталога")
	}
	list := make([]Account, 0, len(res.Entries))
	for _, entry := range res.Entries {
		list = append(list, entryToAccount(entry))
	}
	return list, nil
}
