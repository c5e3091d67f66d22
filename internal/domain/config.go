package domain

import (
	"fmt"
	"net/url"
)

// AppMode is the deployment mode the selector runs under.
type AppMode string

const (
	// ModeOSS is the self-hosted mode; repository installation is unavailable.
	ModeOSS AppMode = "oss"
	// ModeSaaS is the hosted mode; users can authorize additional repositories.
	ModeSaaS AppMode = "saas"
)

// AuthorizeEndpoint is the BitBucket OAuth consent page.
const AuthorizeEndpoint = "https://bitbucket.org/site/oauth2/authorize"

// ParseAppMode parses a mode string. Empty input yields ModeOSS.
func ParseAppMode(s string) (AppMode, error) {
	switch s {
	case "", string(ModeOSS):
		return ModeOSS, nil
	case string(ModeSaaS):
		return ModeSaaS, nil
	default:
		return "", fmt.Errorf("invalid app mode: %s", s)
	}
}

// AppConfig is the subset of application configuration the selector reads.
type AppConfig struct {
	Mode AppMode
	Slug string
}

// CanInstallRepositories reports whether the "add more repositories" link applies.
func (c AppConfig) CanInstallRepositories() bool {
	return c.Mode == ModeSaaS && c.Slug != ""
}

// AuthorizeURL builds the OAuth consent URL for the configured app slug.
func (c AppConfig) AuthorizeURL() string {
	return AuthorizeEndpoint + "?client_id=" + url.QueryEscape(c.Slug)
}
