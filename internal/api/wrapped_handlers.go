package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	"github.com/listenupapp/shelfwrapped/internal/service"
)

func (s *Server) registerWrappedRoutes() {
	op := huma.Operation{
		OperationID: "getWrapped",
		Method:      http.MethodGet,
		Path:        "/api/v1/wrapped/{profileID}",
		Summary:     "Yearly reading recap",
		Description: "Crawls the profile's read and to-read shelves and returns the recap for one calendar year.",
		Tags:        []string{"Wrapped"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusTooManyRequests, http.StatusBadGateway},
	}
	if s.recapLimits != nil {
		op.Middlewares = huma.Middlewares{s.rateLimitMiddleware(s.recapLimits)}
	}

	huma.Register(s.api, op, s.handleGetWrapped)
}

// WrappedInput contains parameters for building a recap.
type WrappedInput struct {
	ProfileID string `path:"profileID" doc:"Profile id, optionally with its vanity suffix (12345678-jane-doe)"`
	Year      int    `query:"year" doc:"Recap year between 2000 and 2099; defaults to the current year"`
	Refresh   bool   `query:"refresh" doc:"Rebuild the recap even when a cached copy exists"`
}

// WrappedOutput wraps the recap for Huma.
type WrappedOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *domain.StatsBundle
}

func (s *Server) handleGetWrapped(ctx context.Context, input *WrappedInput) (*WrappedOutput, error) {
	year := input.Year
	if year == 0 {
		year = time.Now().Year()
	}

	bundle, err := s.wrapped.Wrapped(ctx, input.ProfileID, year, service.WrappedOptions{Refresh: input.Refresh})
	if err != nil {
		apiErr := toAPIError(err)
		if apiErr.GetStatus() >= http.StatusInternalServerError {
			s.logger.Error("Failed to build recap",
				"profile_id", input.ProfileID,
				"year", year,
				"error", err,
			)
		}
		return nil, apiErr
	}

	return &WrappedOutput{
		CacheControl: CacheRecap,
		Body:         bundle,
	}, nil
}
