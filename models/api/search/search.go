package searchapimodels

// UserSearchResult - результат комбинированного поиска по локальной БД и каталогу
type UserSearchResult struct {
	UserName   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
	IsLocal    bool   `json:"is_local"`
	UserID     string `json:"user_id,omitempty"`
}
