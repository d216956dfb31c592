package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Activity mirrors the server's activity document, trimmed to the fields
// discovery surfaces use.
type Activity struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Category         string   `json:"category,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Price            float64  `json:"price"`
	ThumbnailURL     string   `json:"thumbnailUrl,omitempty"`
	Images           []string `json:"images"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
}

// Project mirrors the server's project document.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ThreadID    string   `json:"threadId"`
	OccasionIDs []string `json:"occasionIds"`
}

// ActivityQuery narrows discovery listings.
type ActivityQuery struct {
	Search       string
	Category     string
	Location     string
	Participants int
	Limit        int
	Offset       int
}

func (q ActivityQuery) values() url.Values {
	v := ListQuery(q.Search, q.Limit, q.Offset)
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Participants > 0 {
		v.Set("participants", strconv.Itoa(q.Participants))
	}
	return v
}

// ListActivities reads the discovery listing through the query cache.
func (c *Client) ListActivities(ctx context.Context, q ActivityQuery) ([]Activity, error) {
	var out []Activity
	v := q.values()
	err := c.get(ctx, pathWithQuery("/api/activity", v), keyActivityList(v), &out)
	return out, err
}

func (c *Client) GetActivity(ctx context.Context, id string) (*Activity, error) {
	var out Activity
	if err := c.get(ctx, "/api/activity/"+id, keyActivity(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	var out Organization
	if err := c.get(ctx, "/api/organization/"+id, keyOrganization(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type OrganizationUpdate struct {
	Name        *string `json:"name,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	CompanySize *string `json:"companySize,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// UpdateOrganization writes the change and invalidates both the cached
// organization and the cached current user, whose document embeds
// organizationId.
func (c *Client) UpdateOrganization(ctx context.Context, id string, u OrganizationUpdate) (*Organization, error) {
	var out Organization
	if err := c.mutate(ctx, http.MethodPut, "/api/organization/"+id, opUpdateOrganization, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProjectParams struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	OccasionIDs []string `json:"occasionIds,omitempty"`
}

func (c *Client) CreateProject(ctx context.Context, p ProjectParams) (*Project, error) {
	var out Project
	if err := c.mutate(ctx, http.MethodPost, "/api/project", opCreateProject, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.get(ctx, "/api/project/"+id, keyProject(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecommendations(ctx context.Context, projectID string) ([]Recommendation, error) {
	var out []Recommendation
	err := c.get(ctx, "/api/project/"+projectID+"/recommendation", keyRecommendations(projectID), &out)
	return out, err
}
