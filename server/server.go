// Package server exposes institution lookups over HTTP
package server

import (
	"context"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/johnstarich/plaid/client"
	"github.com/johnstarich/plaid/country"
	"github.com/johnstarich/plaid/institution"
	"go.uber.org/zap"
)

const loggerKey = "logger"

// Lookup fetches institutions, usually a *client.Client
type Lookup interface {
	GetInstitution(ctx context.Context, institutionID string, countryCodes []country.Code, options ...institution.Option) (institution.GetInstitutionResponse, error)
	ListInstitutions(ctx context.Context, count, offset int, countryCodes []country.Code, options ...institution.Option) (institution.ListInstitutionsResponse, error)
}

type statser interface {
	Stats() client.Stats
}

// Run serves the lookup API on addr until the listener fails
func Run(addr string, lookup Lookup, logger *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	logger.Info("Starting server", zap.String("addr", addr))
	return newEngine(lookup, logger).Run(addr)
}

func newEngine(lookup Lookup, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		recovery(logger, true),
		func(c *gin.Context) {
			c.Set(loggerKey, logger)
		},
	)

	api := engine.Group("/api/v1")
	api.GET("/institutions", listInstitutions(lookup))
	api.GET("/institutions/:id", getInstitution(lookup))
	if s, ok := lookup.(statser); ok {
		api.GET("/stats", getStats(s))
	}
	return engine
}
