package travel

import (
	"context"
	"sync"

	errs "github.com/lumafilm/locsched/pkg/errors"
)

// Calculator produces ordered travel estimates between consecutive stops.
type Calculator struct {
	geocoder Geocoder
}

func NewCalculator(geocoder Geocoder) *Calculator {
	return &Calculator{geocoder: geocoder}
}

// BuildStops assembles the ordered location list for an itinerary: the start
// location when it has an address, every waypoint in itinerary order, then the
// end location when it has an address.
func BuildStops(start *Stop, waypoints []Stop, end *Stop) []Stop {
	var stops []Stop

	if start != nil && start.Address != "" {
		name := start.Name
		if name == "" {
			name = "Start Location"
		}
		stops = append(stops, Stop{Name: name, Address: start.Address})
	}

	for _, wp := range waypoints {
		if wp.Address != "" {
			stops = append(stops, wp)
		}
	}

	if end != nil && end.Address != "" {
		name := end.Name
		if name == "" {
			name = "End Location"
		}
		stops = append(stops, Stop{Name: name, Address: end.Address})
	}

	return stops
}

// Calculate estimates every consecutive pair of the given stops. A failed
// geocoding lookup marks that one segment with an error; the remaining
// segments are still computed and the result order always matches stop order.
// Fewer than two stops is a data-entry state reported as
// errs.ErrInsufficientLocations, no lookups are made.
func (calc *Calculator) Calculate(ctx context.Context, stops []Stop) (*Summary, error) {
	if len(stops) < 2 {
		return nil, errs.ErrInsufficientLocations
	}

	segments := make([]Segment, len(stops)-1)

	// Pairs are independent, so they are geocoded concurrently. Each result
	// lands in its own slot; assembly order never depends on completion order.
	var wg sync.WaitGroup
	for i := 0; i < len(stops)-1; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			segments[i] = calc.segment(ctx, stops[i], stops[i+1])
		}(i)
	}
	wg.Wait()

	summary := &Summary{Segments: segments}
	for _, seg := range segments {
		if seg.Error != "" {
			continue
		}
		summary.TotalDurationSeconds += seg.DurationSeconds
		summary.TotalDistanceMeters += seg.DistanceMeters
	}
	summary.TotalDuration = FormatDuration(summary.TotalDurationSeconds / 60)
	summary.TotalDistance = FormatDistance(summary.TotalDistanceMeters)

	return summary, nil
}

func (calc *Calculator) segment(ctx context.Context, from, to Stop) Segment {
	seg := Segment{From: from.Name, To: to.Name}

	origin := calc.geocoder.Geocode(ctx, from.Address)
	if origin == nil {
		seg.Error = "Unable to locate address: " + from.Address
		return seg
	}

	dest := calc.geocoder.Geocode(ctx, to.Address)
	if dest == nil {
		seg.Error = "Unable to locate address: " + to.Address
		return seg
	}

	roadKm := RoadDistanceKm(Haversine(origin.Lat, origin.Lon, dest.Lat, dest.Lon))
	minutes := EstimateDrivingMinutes(roadKm)

	seg.DurationSeconds = minutes * 60
	seg.Duration = FormatDuration(minutes)
	seg.DistanceMeters = int(roadKm * 1000)
	seg.Distance = FormatDistance(seg.DistanceMeters)

	return seg
}
