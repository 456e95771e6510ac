package metrics

import "github.com/prometheus/client_golang/prometheus"

// Geocode outcomes.
const (
	GeocodeResolved = "resolved"
	GeocodeCached   = "cached"
	GeocodeNoResult = "no_result"
	GeocodeFailed   = "failed"
	GeocodeNoAPIKey = "unconfigured"
)

var (
	GeocodeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quest_geocode_requests_total", Help: "Reverse geocode lookups by outcome"},
		[]string{"outcome"},
	)
	BadgesUnlocked = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "quest_badges_unlocked_total", Help: "Total badges that entered the collected state"},
	)
	ActivitiesEnded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "quest_activities_ended_total", Help: "Total activities ended"},
	)
	LocationsCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quest_locations_collected_total", Help: "Locations collected within activities by method"},
		[]string{"method"},
	)
	AreaEventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quest_area_events_total", Help: "Area resolve events handled by the worker by result"},
		[]string{"result"},
	)
)

func Register() {
	prometheus.MustRegister(GeocodeRequests, BadgesUnlocked, ActivitiesEnded, LocationsCollected, AreaEventsProcessed)
}
