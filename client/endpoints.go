package client

import (
	"net/url"
	"strconv"
)

// Logical mutation operations, used as keys into the cache invalidation
// rules.
const (
	opRegister           = "user.register"
	opLogin              = "user.login"
	opUpdateUser         = "user.update"
	opCompleteOnboarding = "user.onboarding"
	opLogout             = "user.logout"
	opCreateOrganization = "organization.create"
	opUpdateOrganization = "organization.update"
	opCreateProject      = "project.create"
	opUpdateProject      = "project.update"
	opChat               = "project.chat"
)

// Cache key builders. Keys are prefix-structured so mutations can
// invalidate whole resource families.
func keyCurrentUser() string { return "user:me" }

func keyOrganization(id string) string { return "organization:" + id }

func keyActivity(id string) string { return "activity:" + id }

func keyProject(id string) string { return "project:" + id }
func keyRecommendations(projectID string) string {
	return "project:" + projectID + ":recommendations"
}

func keyActivityList(q url.Values) string { return "activity:list:" + q.Encode() }

// invalidationRules maps each mutation to the key prefixes it makes stale.
// An organization update invalidates the current user because the cached
// user document embeds organizationId.
var invalidationRules = map[string][]string{
	opRegister:           {"user:me"},
	opLogin:              {"user:me"},
	opUpdateUser:         {"user:me"},
	opCompleteOnboarding: {"user:me", "organization:"},
	opLogout:             {"user:me", "organization:", "project:"},
	opCreateOrganization: {"user:me", "organization:"},
	opUpdateOrganization: {"user:me", "organization:"},
	opCreateProject:      {"project:"},
	opUpdateProject:      {"project:"},
	opChat:               {"project:"},
}

// ListQuery builds the query string shared by paged list endpoints.
func ListQuery(search string, limit, offset int) url.Values {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

func pathWithQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
