package models

import "time"

// Role values returned by the backend in UserRecord.Role.
const (
	RoleTeacher  = "teacher"
	RoleDirector = "director"
	RoleStudent  = "student"
)

// UserRecord is the backend's user profile shape. It is returned by sign-in,
// OTP verification and the profile endpoint, and cached client-side as part of
// the session.
type UserRecord struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Role       string     `json:"role"`
	SchoolID   string     `json:"schoolId,omitempty"`
	SchoolName string     `json:"schoolName,omitempty"`
	AvatarURL  string     `json:"avatarUrl,omitempty"`
	Verified   bool       `json:"verified"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// FullName returns the display name for the user.
func (u *UserRecord) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
