package models

// User is the read-only shape resolved through the user directory. Credential
// management is owned by the identity provider, not this core.
type User struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

func (User) TableName() string {
	return "users"
}
