package entity

import "time"

// Project tracks one planning effort for a user. ThreadID identifies the
// agent conversation attached to the project.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UserID      string     `json:"userId"`
	ThreadID    string     `json:"threadId"`
	OccasionIDs []string   `json:"occasionIds"`
	Occasions   []Occasion `json:"occasions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Recommendation is an agent-produced match between a project and an
// activity, denormalizing enough of the activity for list rendering.
type Recommendation struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"projectId"`
	ActivityID        string    `json:"activityId"`
	UserID            string    `json:"userId"`
	Title             string    `json:"title"`
	ShortDescription  string    `json:"shortDescription"`
	ThumbnailURL      string    `json:"thumbnailUrl,omitempty"`
	ReasonToRecommend string    `json:"reasonToRecommend,omitempty"`
	MatchedCriteria   []string  `json:"matchedCriteria,omitempty"`
	Score             float64   `json:"score"`
	Activity          *Activity `json:"activity,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
