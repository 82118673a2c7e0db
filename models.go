package console

import "time"

// Role namespaces a session store's slice of the vault. The two sessions are
// fully independent; a user and an administrator may be signed in at once.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated principal's minimal profile plus the session
// credential used for subsequent authenticated requests.
type Identity struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// UserRecord is an admin-managed entry in the roster. The server is the
// system of record; ID is server-assigned and immutable.
type UserRecord struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// merge folds server-returned fields into the record, preserving local fields
// the response left empty.
func (r *UserRecord) merge(updated UserRecord) {
	if updated.Name != "" {
		r.Name = updated.Name
	}
	if updated.Email != "" {
		r.Email = updated.Email
	}
	if updated.ProfileImageURL != "" {
		r.ProfileImageURL = updated.ProfileImageURL
	}
	if updated.CreatedAt != nil {
		r.CreatedAt = updated.CreatedAt
	}
}
