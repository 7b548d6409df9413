package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with cache statistics",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Entries int    `json:"entries" doc:"Number of cached entries"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Uptime     string                     `json:"uptime" doc:"Time since the server started"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"genre_cache": s.checkGenreCache(),
		"recap_cache": s.checkRecapCache(),
	}

	// The caches are optional; losing one slows recaps down but never breaks them.
	overall := "healthy"
	for _, c := range components {
		if c.Status != "healthy" {
			overall = "degraded"
		}
	}

	return &HealthOutput{
		CacheControl: CacheNoStore,
		Body: HealthResponse{
			Status:     overall,
			Uptime:     time.Since(s.startedAt).Round(time.Second).String(),
			Components: components,
		},
	}, nil
}

// checkGenreCache verifies the badger genre cache is readable.
func (s *Server) checkGenreCache() ComponentHealth {
	if s.genreStore == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "genre cache not configured",
		}
	}

	n, err := s.genreStore.CountCachedGenres()
	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "genre cache unreadable",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Entries: n,
		Message: formatEntries(n, "book"),
	}
}

// checkRecapCache reports how many finished recaps are held in memory.
func (s *Server) checkRecapCache() ComponentHealth {
	if s.recapCache == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "recap cache not configured",
		}
	}

	n := s.recapCache.Len()
	return ComponentHealth{
		Status:  "healthy",
		Entries: n,
		Message: formatEntries(n, "recap"),
	}
}

func formatEntries(count int, noun string) string {
	switch count {
	case 0:
		return "no cached " + noun + "s"
	case 1:
		return "1 cached " + noun
	default:
		return strconv.Itoa(count) + " cached " + noun + "s"
	}
}
