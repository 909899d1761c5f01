package travel

// Stop is one addressed point in an itinerary, in visiting order.
type Stop struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Segment is the travel estimate between two consecutive stops. Either the
// measurement fields or Error is set, never both.
type Segment struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Duration        string `json:"duration,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	Distance        string `json:"distance,omitempty"`
	DistanceMeters  int    `json:"distanceMeters,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Summary totals only the successfully computed segments.
type Summary struct {
	Segments             []Segment `json:"segments"`
	TotalDuration        string    `json:"totalDuration"`
	TotalDurationSeconds int       `json:"totalDurationSeconds"`
	TotalDistance        string    `json:"totalDistance"`
	TotalDistanceMeters  int       `json:"totalDistanceMeters"`
}

// MatrixRequest mirrors the request shape of a conventional distance-matrix
// API; this design handles a single origin/destination pair per call.
type MatrixRequest struct {
	Origins      []string `json:"origins" binding:"required"`
	Destinations []string `json:"destinations" binding:"required"`
	Mode         string   `json:"mode"`
}

// MatrixValue is a measurement with display text, e.g. {"text":"12 mins","value":720}.
type MatrixValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// MatrixElement is one origin/destination cell of the matrix response.
type MatrixElement struct {
	Status   string       `json:"status"`
	Distance *MatrixValue `json:"distance,omitempty"`
	Duration *MatrixValue `json:"duration,omitempty"`
}

// MatrixRow groups the elements for one origin.
type MatrixRow struct {
	Elements []MatrixElement `json:"elements"`
}

// MatrixData is the response body of the matrix endpoint.
type MatrixData struct {
	Status string      `json:"status"`
	Rows   []MatrixRow `json:"rows"`
}
