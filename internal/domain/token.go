package domain

import "errors"

// ErrNoToken is returned by operations that cannot run without a stored token.
var ErrNoToken = errors.New("no BitBucket token stored, run 'bbr token set' first")

// TokenProvider supplies the locally stored BitBucket token.
// An empty string means no token is stored.
type TokenProvider interface {
	Token() string
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func() string

// Token implements TokenProvider.
func (f TokenProviderFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

// StaticToken is a fixed token, mostly useful in tests and for env overrides.
type StaticToken string

// Token implements TokenProvider.
func (t StaticToken) Token() string {
	return string(t)
}

// HasToken reports whether p yields a non-empty token.
func HasToken(p TokenProvider) bool {
	return p != nil && p.Token() != ""
}
