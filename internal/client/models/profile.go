package models

// Profile is a member's public page as returned by
// GET /api/members/{name}/profile.
type Profile struct {
	UserName string  `json:"userName"`
	AboutMe  string  `json:"aboutMe"`
	Images   []Image `json:"images"`
}

// Image is one picture on a profile; Description may be empty.
type Image struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}
