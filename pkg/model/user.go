package model

import "time"

const RoleAdmin = "admin"

type User struct {
	ID        string         `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string         `json:"email" bson:"email"`
	Role      string         `json:"role,omitempty" bson:"role,omitempty"`
	Profile   map[string]any `json:"profile,omitempty" bson:"profile,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UpsertResult reports whether an upsert created the user or matched an
// existing one.
type UpsertResult struct {
	Inserted bool `json:"inserted"`
	Updated  bool `json:"updated"`
}
