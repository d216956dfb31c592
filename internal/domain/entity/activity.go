package entity

import "time"

// HostInfo describes the person hosting an activity.
type HostInfo struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Avatar string `json:"avatar"`
}

// ItineraryItem is one step of an activity itinerary.
type ItineraryItem struct {
	Duration    int    `json:"duration,omitempty"` // minutes
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// OfferingLink embeds an offering reference on an activity.
type OfferingLink struct {
	OfferingID       string `json:"offeringId"`
	IsRequired       bool   `json:"isRequired"`
	ShortDescription string `json:"shortDescription,omitempty"`
	LongDescription  string `json:"longDescription,omitempty"`
}

// PreRequisiteLink embeds a prerequisite reference on an activity.
type PreRequisiteLink struct {
	PreRequisiteID string `json:"preRequisiteId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// Activity is a bookable event offered through discovery and the agent.
// Embedding holds the semantic-search vector; it is populated out of band
// and never serialized to API clients.
type Activity struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	ShortDescription  string             `json:"shortDescription"`
	LongDescription   string             `json:"longDescription"`
	Category          string             `json:"category,omitempty"`
	Location          string             `json:"location,omitempty"`
	City              string             `json:"city,omitempty"`
	State             string             `json:"state,omitempty"`
	Price             float64            `json:"price"`
	MinParticipants   int                `json:"minParticipants"`
	MaxParticipants   int                `json:"maxParticipants"`
	MinDuration       int                `json:"minDuration"`
	MaxDuration       int                `json:"maxDuration"`
	PreferredDuration int                `json:"preferredDuration"`
	ThumbnailURL      string             `json:"thumbnailUrl,omitempty"`
	Images            []string           `json:"images"`
	Host              *HostInfo          `json:"host,omitempty"`
	Itinerary         []ItineraryItem    `json:"itinerary,omitempty"`
	Offerings         []OfferingLink     `json:"offerings,omitempty"`
	PreRequisites     []PreRequisiteLink `json:"preRequisites,omitempty"`
	FreeCancellation  bool               `json:"freeCancellation"`
	Rating            float64            `json:"rating"`
	ReviewCount       int                `json:"reviewCount"`
	Embedding         []float32          `json:"-"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// ActivityFilter narrows activity listings and agent searches.
type ActivityFilter struct {
	Search   string
	Category string
	Location string // matched against city, state and location
	City     string
	State    string
	MinPrice float64
	MaxPrice float64
	// Group size the caller needs room for: activities whose participant
	// range covers it match.
	Participants int
	Limit        int
	Offset       int
}
