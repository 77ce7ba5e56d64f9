package model

// User is an API credential holder. Users authenticate against /auth and are
// provisioned out of band (see AUTH_SEED_USERNAME).
type User struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Username string `gorm:"column:username;type:VARCHAR2(100);not null;uniqueIndex:idx_user_username"`
	Password string `gorm:"column:password;type:VARCHAR2(60);not null"` // bcrypt hash

	BaseEntity
}

// TableName specifies the table name for User
func (*User) TableName() string {
	return "api_user"
}

// NewUser creates a new User instance
// Note: password must be hashed before storing (handled in service layer)
func NewUser(username, hashedPassword string) *User {
	return &User{
		Username: username,
		Password: hashedPassword,
	}
}
