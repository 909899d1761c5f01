package itineraries

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location stop statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
)

// Location is a single stop within an itinerary. Array position is the
// shooting order and is user-reorderable.
type Location struct {
	SetName      string `bson:"setName" json:"setName"`
	Address      string `bson:"address" json:"address"`
	StartTime    string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime      string `bson:"endTime,omitempty" json:"endTime,omitempty"`
	ContactName  string `bson:"contactName,omitempty" json:"contactName,omitempty"`
	ContactPhone string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
}

// EndpointLocation is the optional day start or wrap location.
type EndpointLocation struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Time    string `bson:"time,omitempty" json:"time,omitempty"`
}

// Itinerary is one shooting day's ordered location list, owned by one user.
type Itinerary struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	Title         string             `bson:"title" json:"title"`
	Date          time.Time          `bson:"date" json:"date"`
	Locations     []Location         `bson:"locations" json:"locations"`
	StartLocation *EndpointLocation  `bson:"startLocation,omitempty" json:"startLocation,omitempty"`
	EndLocation   *EndpointLocation  `bson:"endLocation,omitempty" json:"endLocation,omitempty"`

	// Share state. The password hash never leaves the server; the token is
	// visible to the owner only.
	IsShared      bool     `bson:"isShared" json:"isShared"`
	ShareToken    string   `bson:"shareToken,omitempty" json:"shareToken,omitempty"`
	SharePassword string   `bson:"sharePassword,omitempty" json:"-"`
	SharedWith    []string `bson:"sharedWith,omitempty" json:"sharedWith,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateItineraryRequest represents itinerary creation data
type CreateItineraryRequest struct {
	Title         string            `json:"title" binding:"required"`
	Date          *time.Time        `json:"date" binding:"required"`
	Locations     []Location        `json:"locations"`
	StartLocation *EndpointLocation `json:"startLocation"`
	EndLocation   *EndpointLocation `json:"endLocation"`
}

// UpdateItineraryRequest represents itinerary update data; nil fields are
// left unchanged.
type UpdateItineraryRequest struct {
	Title         string            `json:"title"`
	Date          *time.Time        `json:"date"`
	Locations     []Location        `json:"locations"`
	StartLocation *EndpointLocation `json:"startLocation"`
	EndLocation   *EndpointLocation `json:"endLocation"`
}

// UpdateLocationStatusRequest sets one stop's status
type UpdateLocationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ShareRequest represents the payload for sharing an itinerary
type ShareRequest struct {
	Emails   []string `json:"emails" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Message  string   `json:"message"`
}

// SharedAccessRequest carries the password for the public read view
type SharedAccessRequest struct {
	Password string `json:"password"`
}

// OwnerInfo is the owner's public identity shown on the shared view
type OwnerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SharedItineraryView is the sanitized public projection of a shared
// itinerary. Fields are an explicit allow-list: anything added to Itinerary
// stays private until deliberately added here too.
type SharedItineraryView struct {
	Title         string            `json:"title"`
	Date          time.Time         `json:"date"`
	StartLocation *EndpointLocation `json:"startLocation,omitempty"`
	EndLocation   *EndpointLocation `json:"endLocation,omitempty"`
	Locations     []Location        `json:"locations"`
	Owner         OwnerInfo         `json:"owner"`
}
