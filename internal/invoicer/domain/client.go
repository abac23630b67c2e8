package domain

import "time"

// Client is a billing contact owned by exactly one user. OwnerID never
// changes after creation.
type Client struct {
	ID        int64
	OwnerID   int64
	Name      string
	Email     string  // unique across all users
	Phone     *string // nil when unset
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient carries the caller supplied fields for a client insert.
type NewClient struct {
	Name  string
	Email string
	Phone *string
}

// ClientPatch is a partial update. Absent fields leave the stored value alone;
// a null phone clears it.
type ClientPatch struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
	Phone Optional[string] `json:"phone"`
}
