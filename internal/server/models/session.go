package models

// Session maps an opaque token to a username with an absolute creation
// time. CreatedAt is a Unix timestamp in milliseconds; the session store
// treats a missing or non-positive value as a structural defect.
type Session struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"createdAt"`
}
