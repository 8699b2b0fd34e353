package models

// AdminSession — выданный при входе токен администратора.
// Токен подписан и дополнительно хранится на сервере: cookie сама по
// себе ничего не доказывает.
type AdminSession struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
