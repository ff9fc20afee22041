package user

// User represents a credential record in the system.
// Users are provisioned out of band; the service only reads them.
// Password holds either the plaintext secret or, with the bcrypt scheme,
// a 60-character bcrypt hash.
type User struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	UserName  string `gorm:"size:50;uniqueIndex;not null"`
	Password  string `gorm:"size:60;not null"`
	FirstName string `gorm:"size:50;not null"`
	LastName  string `gorm:"size:50;not null"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "Users"
}

// Claims represents the identity carried by a session token.
type Claims struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"family_name"`
}
