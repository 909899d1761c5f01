package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumafilm/locsched/internal/config"
	"github.com/lumafilm/locsched/internal/features/auth"
	"github.com/lumafilm/locsched/internal/features/itineraries"
	"github.com/lumafilm/locsched/internal/features/travel"
	"github.com/lumafilm/locsched/internal/pkg/mailer"
	errs "github.com/lumafilm/locsched/pkg/errors"
)

// travelStopSourceAdapter adapts itineraries.Repository to travel.StopSource
type travelStopSourceAdapter struct {
	repo *itineraries.Repository
}

func (a *travelStopSourceAdapter) StopsForItinerary(ctx context.Context, itineraryID, userID string) ([]travel.Stop, error) {
	itinerary, err := a.repo.GetByID(ctx, itineraryID, userID)
	if err != nil {
		return nil, err
	}
	if itinerary == nil {
		return nil, errs.ErrNotFound
	}

	var start, end *travel.Stop
	if itinerary.StartLocation != nil {
		start = &travel.Stop{Name: itinerary.StartLocation.Name, Address: itinerary.StartLocation.Address}
	}
	if itinerary.EndLocation != nil {
		end = &travel.Stop{Name: itinerary.EndLocation.Name, Address: itinerary.EndLocation.Address}
	}

	waypoints := make([]travel.Stop, 0, len(itinerary.Locations))
	for _, loc := range itinerary.Locations {
		waypoints = append(waypoints, travel.Stop{Name: loc.SetName, Address: loc.Address})
	}

	return travel.BuildStops(start, waypoints, end), nil
}

// ownerSourceAdapter adapts auth.Repository to itineraries.OwnerSource
type ownerSourceAdapter struct {
	repo *auth.Repository
}

func (a *ownerSourceAdapter) GetOwner(ctx context.Context, userID string) (*itineraries.OwnerInfo, error) {
	user, err := a.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrNotFound
	}
	return &itineraries.OwnerInfo{Name: user.Name, Email: user.Email}, nil
}

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api")

	itinerariesRepo := itineraries.NewRepository(db)
	usersRepo := auth.NewRepository(db)

	sharing := itineraries.NewService(itinerariesRepo, &ownerSourceAdapter{repo: usersRepo})
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	itinerariesHandler := itineraries.NewHandler(itinerariesRepo, sharing, mail, cfg.FrontendURL)

	auth.RegisterRoutes(api, db, cfg)
	itineraries.RegisterRoutes(api, itinerariesHandler, cfg.JWTSecret)
	travel.RegisterRoutes(api, cfg, &travelStopSourceAdapter{repo: itinerariesRepo})
}
