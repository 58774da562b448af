// Package models defines the client-side copies of server-owned resources:
// the user profile, uploaded images, match candidates, DMCA reports and
// notifications. All of them are read-mostly; the only fields a client ever
// changes are the match confirmation flag and profile edit fields.
package models

import "time"

// Profile is the current user's identity and contact data as returned by
// GET /users/me. A serialized copy is cached in the local session store and
// opportunistically refreshed, so any instance may be stale.
type Profile struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	FullName     string     `json:"full_name,omitempty"`
	AvatarURL    string     `json:"profile_image_url,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Location     string     `json:"location,omitempty"`
	Language     string     `json:"language,omitempty"`
	Timezone     string     `json:"timezone,omitempty"`
	IsActive     bool       `json:"is_active"`
	IsVerified   bool       `json:"is_verified"`
	AuthProvider string     `json:"auth_provider,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}
