package models

// User — учётка для входа. Хэш никогда не отдаётся наружу: сервисы возвращают user.View.
type User struct {
	Base
	Username     string `gorm:"size:191;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"password_hash"`
}

func (User) TableName() string { return "users" }
