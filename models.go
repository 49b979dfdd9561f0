package titanic

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the account model. Email is the case-insensitive identity key and
// immutable once registered; PasswordHash is never serialized.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          Role       `bun:"role,notnull" json:"role"`
	IsActive      bool       `bun:"is_active,notnull" json:"is_active"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureDefaults fills store-managed fields before insert.
func (u *User) EnsureDefaults() {
	if u == nil {
		return
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// Passenger is a Titanic passenger record.
type Passenger struct {
	bun.BaseModel `bun:"table:passengers,alias:pax"`
	ID            int64    `bun:"id,pk,autoincrement" json:"id"`
	Name          string   `bun:"name,notnull" json:"name"`
	Sex           string   `bun:"sex,notnull" json:"sex"`
	Age           *float64 `bun:"age" json:"age,omitempty"`
	Survived      bool     `bun:"survived,notnull" json:"survived"`
	Pclass        int      `bun:"pclass,notnull" json:"pclass"`
	Fare          *float64 `bun:"fare" json:"fare,omitempty"`
	Embarked      *string  `bun:"embarked" json:"embarked,omitempty"`
}
