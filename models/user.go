package models

// User はCredential Storeの1行。パスワードはPASSWORD_SCHEMEに従って保存される
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Password string `gorm:"not null" json:"password"`
	Role     string `gorm:"not null;default:'guest'" json:"role"`
}

// Identity is what the authenticator attaches to a request.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
