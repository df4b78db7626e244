package models

import "time"

type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPatch carries the fields of a partial profile update. Nil fields are left unchanged.
// PasswordHash must already be hashed.
type UserPatch struct {
	Name         *string
	MobileNumber *string
	Email        *string
	PasswordHash *string
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.MobileNumber != nil {
		u.MobileNumber = *p.MobileNumber
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Role         Role   `json:"role"`
}

func (i Identity) IsOrganizer() bool {
	return i.Role == RoleOrganizer
}

func (u *User) Identity() Identity {
	return Identity{
		UserID:       u.ID,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
	}
}
