package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding attaches the place nearest the epicenter. Without a
// geocoder the event is returned unchanged; lookup failures only set
// GeoSource, they never fail the event.
func EnrichWithGeocoding(ctx context.Context, event SeismicEvent, geocoder Geocoder, logger *slog.Logger) SeismicEvent {
	if geocoder == nil {
		return event
	}

	lat, okLat := event.Latitude.Get()
	lon, okLon := event.Longitude.Get()
	if !okLat || !okLon {
		event.GeoSource = "original"
		return event
	}

	result, err := geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"event_id", event.ID,
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		event.GeoSource = "failed"
		return event
	}

	// Offshore epicenters often have no nearby place.
	if result.FormattedAddress == "" {
		event.GeoSource = "original"
		return event
	}
	event.FormattedAddress = result.FormattedAddress
	event.PlaceName = result.PlaceName
	event.GeoConfidence = result.Confidence
	event.GeoSource = "reverse"
	return event
}
