package domain

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models a persisted account. The password hash never leaves the service
// layer.
type User struct {
	ID           int        `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Identity is the minimal authenticated principal carried by a session token.
// It is minted at sign-in or token verification time, lives for one request,
// and is never persisted.
type Identity struct {
	ID   int  `json:"id"`
	Role Role `json:"role"`
}

// CanManage reports whether the identity may mutate the resource owned by
// ownerID: owners manage themselves, admins manage everyone.
func (i Identity) CanManage(ownerID int) bool {
	return i.ID == ownerID || i.Role == RoleAdmin
}
