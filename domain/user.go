package domain

// Role is the access tier assigned to a user account.
type Role string

const (
	RoleGeneral Role = "GENERAL"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGeneral, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Email      string `json:"email" db:"email"`
	Password   string `json:"-" db:"password"`
	Role       Role   `json:"role" db:"role"`
	ProfilePic string `json:"profilePic" db:"profile_pic"`
	CreatedAt  string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt  string `json:"updatedAt,omitempty" db:"updated_at"`
}
