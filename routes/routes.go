package routes

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/config"
	"github.com/kendall-kelly/fichas-api/controllers"
	"github.com/kendall-kelly/fichas-api/middleware"
	"github.com/kendall-kelly/fichas-api/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies wires the router
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Logger zerolog.Logger
	// Clock overrides time.Now in the services; nil keeps the wall clock
	Clock func() time.Time
	// AuthGuard replaces the Auth0 JWT guard when set
	AuthGuard gin.HandlerFunc
}

// Setup builds the gin engine with every /api route mounted
func Setup(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsTest() {
		gin.SetMode(gin.TestMode)
	}
	controllers.RegisterValidation()

	fichaService := services.NewFichaService(deps.DB, deps.Logger)
	estatisticaService := services.NewEstatisticaService(deps.DB)
	if deps.Clock != nil {
		fichaService.WithClock(deps.Clock)
		estatisticaService.WithClock(deps.Clock)
	}

	production := cfg.IsProduction()
	fichas := controllers.NewFichaController(fichaService, production)
	clientes := controllers.NewClienteController(services.NewClienteService(deps.DB), production)
	estatisticas := controllers.NewEstatisticaController(estatisticaService, production)
	health := controllers.NewHealthController(deps.DB)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(corsConfig(cfg)))

	api := router.Group("/api")
	api.GET("/health", health.Health)

	protected := api.Group("")
	guard, err := authGuard(deps)
	if err != nil {
		return nil, err
	}
	write := []gin.HandlerFunc{}
	if guard != nil {
		protected.Use(guard)
		if cfg.Auth0WriteScope != "" {
			write = append(write, middleware.RequireScope(cfg.Auth0WriteScope))
		}
	}
	writeRoute := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	protected.GET("/database/status", health.DatabaseStatus)

	protected.POST("/fichas", writeRoute(fichas.Create)...)
	protected.GET("/fichas", fichas.List)
	protected.GET("/fichas/vendedores", fichas.Vendedores)
	protected.GET("/fichas/:id", fichas.Get)
	protected.PUT("/fichas/:id", writeRoute(fichas.Update)...)
	protected.PATCH("/fichas/:id/entregar", writeRoute(fichas.MarkAsDelivered)...)
	protected.DELETE("/fichas/:id", writeRoute(fichas.Delete)...)

	protected.GET("/clientes", clientes.Search)
	protected.POST("/clientes", writeRoute(clientes.Create)...)

	protected.GET("/estatisticas", estatisticas.Estatisticas)
	protected.GET("/relatorio", estatisticas.Relatorio)

	return router, nil
}

// authGuard returns the injected guard, the Auth0 JWT guard when configured, or nil
func authGuard(deps Dependencies) (gin.HandlerFunc, error) {
	if deps.AuthGuard != nil {
		return deps.AuthGuard, nil
	}
	if !deps.Config.AuthEnabled() {
		return nil, nil
	}

	guard, err := middleware.JWTGuard(deps.Config, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure JWT guard: %w", err)
	}
	deps.Logger.Info().Str("domain", deps.Config.Auth0Domain).Msg("JWT guard enabled")
	return guard, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	c.MaxAge = 12 * time.Hour

	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}
