package domain

// WorkspaceRef is the owning workspace embedded in a repository payload.
type WorkspaceRef struct {
	Slug string `json:"slug"`
}

// Repository represents a BitBucket repository as returned by the API.
type Repository struct {
	UUID          string       `json:"uuid"`
	FullName      string       `json:"full_name"` // workspace/name
	Name          string       `json:"name"`
	Workspace     WorkspaceRef `json:"workspace"`
	WatchersCount int          `json:"watchers_count"`
}

// Namespace returns the owning workspace slug, falling back to the
// prefix of the full name when the payload omitted it.
func (r Repository) Namespace() string {
	if r.Workspace.Slug != "" {
		return r.Workspace.Slug
	}
	for i := 0; i < len(r.FullName); i++ {
		if r.FullName[i] == '/' {
			return r.FullName[:i]
		}
	}
	return ""
}

// User is the authenticated BitBucket account.
type User struct {
	UUID        string `json:"uuid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Workspace is a BitBucket workspace as returned by the upstream API.
// The proxy flattens these to slugs before they reach the client.
type Workspace struct {
	UUID string `json:"uuid,omitempty"`
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// Page is one page of a paginated BitBucket listing.
type Page[T any] struct {
	Values   []T    `json:"values"`
	Page     int    `json:"page"`
	PageLen  int    `json:"pagelen"`
	Size     int    `json:"size"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// HasNext reports whether a forward page cursor is present.
func (p Page[T]) HasNext() bool {
	return p.Next != ""
}

// HasPrevious reports whether a backward page cursor is present.
func (p Page[T]) HasPrevious() bool {
	return p.Previous != ""
}
