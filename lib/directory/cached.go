package directory

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cacheTTL = 15 * time.Minute

// NewCachedInstance - кеширующая обёртка над провайдером каталога.
// Кешируются карточки пользователей, группы и полная выгрузка.
// Проверка учетных данных и поиск всегда идут напрямую
func NewCachedInstance(next Provider) Provider {
	return &cachedImpl{
		next:  next,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

type cachedImpl struct {
	next  Provider
	cache *gocache.Cache
}

func (i cachedImpl) IsEnabled() bool {
	return i.next.IsEnabled()
}

func (i cachedImpl) VerifyCredentials(userName, password string) (bool, error) {
	return i.next.VerifyCredentials(userName, password)
}

func (i cachedImpl) SearchUsers(term string, limit int) ([]Account, error) {
	return i.next.SearchUsers(term, limit)
}

func (i cachedImpl) GetUserDetails(userName string) (*Account, error) {
	key := fmt.Sprintf("details:%v", strings.ToLower(userName))
	if cached, ok := i.cache.Get(key); ok {
		return cached.(*Account), nil
	}
	acc, err := i.next.GetUserDetails(userName)
	if err != nil {
		return nil, err
	}
	i.cache.SetDefault(key, acc)
	return acc, nil
}

func (i cachedImpl) GetUserGroups(userName string) ([]string, error) {
	key := fmt.Sprintf("groups:%v", strings.ToLower(userName))
	if cached, ok := i.cache.Get(key); ok {
		return cached.([]string), nil
	}
	groups, err := i.next.GetUserGroups(userName)
	if err != nil {
		return nil, err
	}
	i.cache.SetDefault(key, groups)
	return groups, nil
}

func (i cachedImpl) IsUserInManagementGroup(userName string) (bool, error) {
	key := fmt.Sprintf("mgmt:%v", strings.ToLower(userName))
	if cached, ok := i.cache.Get(key); ok {
		return cached.(bool), nil
	}
	ok, err := i.next.IsUserInManagementGroup(userName)
	if err != nil {
		return false, err
	}
	i.cache.SetDefault(key, ok)
	return ok, nil
}

func (i cachedImpl) ListUsers() ([]Account, error) {
	key := "all_users"
	if cached, ok := i.cache.Get(key); ok {
		return cached.([]Account), nil
	}
	list, err := i.next.ListUsers()
	if err != nil {
		return nil, err
	}
	i.cache.SetDefault(key, list)
	return list, nil
}
