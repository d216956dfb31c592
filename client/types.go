package client

import "strings"

// User mirrors the server's user document.
type User struct {
	ID                     string `json:"id"`
	Username               string `json:"username"`
	Email                  string `json:"email"`
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Role                   string `json:"role"`
	OrganizationID         string `json:"organizationId,omitempty"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}

// Organization mirrors the server's organization document.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Website     string `json:"website,omitempty"`
}

// Recommendation is one saved agent suggestion.
type Recommendation struct {
	ID                string   `json:"id"`
	ProjectID         string   `json:"projectId"`
	ActivityID        string   `json:"activityId"`
	Title             string   `json:"title"`
	ShortDescription  string   `json:"shortDescription"`
	ThumbnailURL      string   `json:"thumbnailUrl,omitempty"`
	ReasonToRecommend string   `json:"reasonToRecommend,omitempty"`
	MatchedCriteria   []string `json:"matchedCriteria,omitempty"`
	Score             float64  `json:"score"`
}

// AgentReply is the payload of one chat turn.
type AgentReply struct {
	Message                string           `json:"message"`
	SuggestedQuestions     []string         `json:"suggestedQuestions"`
	Recommendations        []Recommendation `json:"recommendations"`
	RefreshRecommendations bool             `json:"refreshRecommendations"`
}

// ProfileComplete reports whether the profile fields that gate general
// access are all filled in.
func (u *User) ProfileComplete() bool {
	if u == nil {
		return false
	}
	return strings.TrimSpace(u.FirstName) != "" &&
		strings.TrimSpace(u.LastName) != "" &&
		strings.TrimSpace(u.Role) != ""
}

// Complete reports whether the organization has all required fields.
func (o *Organization) Complete() bool {
	if o == nil {
		return false
	}
	return strings.TrimSpace(o.Name) != "" &&
		strings.TrimSpace(o.Industry) != "" &&
		strings.TrimSpace(o.CompanySize) != ""
}
