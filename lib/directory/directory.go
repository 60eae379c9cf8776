package directory

// Settings - параметры подключения к службе каталогов
type Settings struct {
	Enabled      bool
	Addr         string
	BaseDN       string
	BindUser     string
	BindPassword string
	// ManagementGroup - группа, членство в которой даёт роль руководителя
	ManagementGroup string
}

type Account struct {
	UserName   string
	FullName   string
	Email      string
	Department string
	Title      string
}

type Provider interface {
	IsEnabled() bool
	// VerifyCredentials - проверка учетных данных по каталогу.
	// Всегда идёт напрямую, результат не кешируется
	VerifyCredentials(userName, password string) (ok bool, err error)
	GetUserDetails(userName string) (acc *Account, err error)
	GetUserGroups(userName string) (groups []string, err error)
	IsUserInManagementGroup(userName string) (ok bool, err error)
	SearchUsers(term string, limit int) (list []Account, err error)
	ListUsers() (list []Account, err error)
}
