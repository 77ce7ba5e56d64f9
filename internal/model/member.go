package model

// Member is the managed person record.
// The active flag is stored as a single-bit numeric column but is always a
// bool on this side of the driver.
type Member struct {
	// Primary key - IDENTITY (auto-increment)
	MemberID uint32 `gorm:"column:member_id;primaryKey;autoIncrement"`

	// Core fields
	Firstname string `gorm:"column:firstname;type:VARCHAR2(100);not null"`
	Lastname  string `gorm:"column:lastname;type:VARCHAR2(100);not null"`
	Email     string `gorm:"column:email;type:VARCHAR2(255);not null;uniqueIndex:idx_member_email"`
	Active    bool   `gorm:"column:active;type:NUMBER(1);not null"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// NewMember creates a new Member instance
func NewMember(firstname, lastname, email string, active bool) *Member {
	return &Member{
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
		Active:    active,
	}
}
