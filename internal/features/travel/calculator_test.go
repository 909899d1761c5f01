package travel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/lumafilm/locsched/pkg/errors"
)

// fakeGeocoder resolves addresses from a fixed table; unknown addresses fail.
type fakeGeocoder struct {
	table map[string]Coordinates
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) *Coordinates {
	if coords, ok := f.table[address]; ok {
		c := coords
		return &c
	}
	return nil
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{table: map[string]Coordinates{
		"123 Main St":   {Lat: 34.0522, Lon: -118.2437},
		"456 Ocean Ave": {Lat: 34.0195, Lon: -118.4912},
		"789 Hill Rd":   {Lat: 34.1184, Lon: -118.3004},
	}}
}

func TestBuildStopsSkipsUnaddressed(t *testing.T) {
	start := &Stop{Name: "Crew Parking"} // no address
	waypoints := []Stop{
		{Name: "Set B", Address: "123 Main St"},
		{Name: "Set C", Address: "456 Ocean Ave"},
	}

	stops := BuildStops(start, waypoints, nil)
	require.Len(t, stops, 2)
	require.Equal(t, "Set B", stops[0].Name)
	require.Equal(t, "Set C", stops[1].Name)
}

func TestBuildStopsDefaultNames(t *testing.T) {
	stops := BuildStops(&Stop{Address: "123 Main St"}, nil, &Stop{Address: "456 Ocean Ave"})
	require.Len(t, stops, 2)
	require.Equal(t, "Start Location", stops[0].Name)
	require.Equal(t, "End Location", stops[1].Name)
}

func TestCalculateInsufficientLocations(t *testing.T) {
	calc := NewCalculator(newFakeGeocoder())

	_, err := calc.Calculate(context.Background(), []Stop{{Name: "Only", Address: "123 Main St"}})
	require.ErrorIs(t, err, errs.ErrInsufficientLocations)
}

func TestCalculateSingleSegment(t *testing.T) {
	calc := NewCalculator(newFakeGeocoder())

	summary, err := calc.Calculate(context.Background(), []Stop{
		{Name: "Set B", Address: "123 Main St"},
		{Name: "Set C", Address: "456 Ocean Ave"},
	})
	require.NoError(t, err)
	require.Len(t, summary.Segments, 1)

	seg := summary.Segments[0]
	require.Empty(t, seg.Error)
	require.Equal(t, "Set B", seg.From)
	require.Equal(t, "Set C", seg.To)
	require.Greater(t, seg.DistanceMeters, 0)
	require.Greater(t, seg.DurationSeconds, 0)
	require.Equal(t, seg.DistanceMeters, summary.TotalDistanceMeters)
	require.Equal(t, seg.DurationSeconds, summary.TotalDurationSeconds)
}

func TestCalculateGeocodeFailureMarksSegmentOnly(t *testing.T) {
	calc := NewCalculator(newFakeGeocoder())

	summary, err := calc.Calculate(context.Background(), []Stop{
		{Name: "Set A", Address: "nowhere at all"},
		{Name: "Set B", Address: "123 Main St"},
		{Name: "Set C", Address: "456 Ocean Ave"},
	})
	require.NoError(t, err)
	require.Len(t, summary.Segments, 2)

	require.NotEmpty(t, summary.Segments[0].Error)
	require.Zero(t, summary.Segments[0].DistanceMeters)

	require.Empty(t, summary.Segments[1].Error)
	require.Greater(t, summary.Segments[1].DistanceMeters, 0)

	// errored segments are excluded from totals, not counted as zero-length legs
	require.Equal(t, summary.Segments[1].DistanceMeters, summary.TotalDistanceMeters)
	require.Equal(t, summary.Segments[1].DurationSeconds, summary.TotalDurationSeconds)
}

func TestCalculatePreservesOrder(t *testing.T) {
	calc := NewCalculator(newFakeGeocoder())

	stops := []Stop{
		{Name: "Set A", Address: "123 Main St"},
		{Name: "Set B", Address: "456 Ocean Ave"},
		{Name: "Set C", Address: "789 Hill Rd"},
		{Name: "Set D", Address: "123 Main St"},
	}

	summary, err := calc.Calculate(context.Background(), stops)
	require.NoError(t, err)
	require.Len(t, summary.Segments, 3)

	for i, seg := range summary.Segments {
		require.Equal(t, stops[i].Name, seg.From)
		require.Equal(t, stops[i+1].Name, seg.To)
	}
}

func TestCalculateIdenticalStopsYieldZero(t *testing.T) {
	calc := NewCalculator(newFakeGeocoder())

	summary, err := calc.Calculate(context.Background(), []Stop{
		{Name: "Set A", Address: "123 Main St"},
		{Name: "Also Set A", Address: "123 Main St"},
	})
	require.NoError(t, err)

	seg := summary.Segments[0]
	require.Empty(t, seg.Error)
	require.Zero(t, seg.DistanceMeters)
	require.Zero(t, seg.DurationSeconds)
}
