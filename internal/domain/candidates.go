package domain

import (
	"strings"
	"unicode"
)

// MergeCandidates builds the selectable list: public repositories with
// duplicate UUIDs collapsed (first wins), followed by every user repository.
// Repositories present in both lists are kept twice.
func MergeCandidates(user, public []Repository) []Repository {
	out := make([]Repository, 0, len(public)+len(user))
	seen := make(map[string]struct{}, len(public))
	for _, repo := range public {
		if _, dup := seen[repo.UUID]; dup {
			continue
		}
		seen[repo.UUID] = struct{}{}
		out = append(out, repo)
	}
	return append(out, user...)
}

// FindByUUID returns the first repository with the given UUID.
func FindByUUID(repos []Repository, uuid string) (Repository, bool) {
	for _, repo := range repos {
		if repo.UUID == uuid {
			return repo, true
		}
	}
	return Repository{}, false
}

// SanitizeQuery lowercases s and strips all whitespace.
func SanitizeQuery(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// MatchesQuery reports whether text matches the filter input.
// An empty input matches everything.
func MatchesQuery(text, input string) bool {
	if input == "" {
		return true
	}
	return strings.Contains(SanitizeQuery(text), SanitizeQuery(input))
}

// FilterRepositories returns the repositories whose full name matches input.
func FilterRepositories(repos []Repository, input string) []Repository {
	if input == "" {
		return repos
	}
	var out []Repository
	for _, repo := range repos {
		if MatchesQuery(repo.FullName, input) {
			out = append(out, repo)
		}
	}
	return out
}
