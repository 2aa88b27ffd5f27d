package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	alertdomain "github.com/smallbiznis/riskwatch/internal/alert/domain"
	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/smallbiznis/riskwatch/internal/observability"
	obsmiddleware "github.com/smallbiznis/riskwatch/internal/observability/logger"
	riskdomain "github.com/smallbiznis/riskwatch/internal/risk/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	db       *gorm.DB
	riskSvc  riskdomain.Service
	alertSvc alertdomain.Service
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	DB       *gorm.DB
	RiskSvc  riskdomain.Service
	AlertSvc alertdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		db:       p.DB,
		riskSvc:  p.RiskSvc,
		alertSvc: p.AlertSvc,
	}

	svc.registerRiskRoutes()
	svc.registerAlertRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRiskRoutes() {
	risk := s.engine.Group("/risk")

	risk.GET("/customers", s.ListCustomerRisk)
	risk.GET("/snapshots", s.ListRiskSnapshots)
	risk.GET("/snapshots/:customerId", s.GetRiskSnapshot)
	risk.DELETE("/snapshots/:customerId", s.DeleteRiskSnapshot)
}

func (s *Server) registerAlertRoutes() {
	alerts := s.engine.Group("/alerts")

	alerts.POST("/send", s.SendAlert)
	alerts.GET("", s.ListAlerts)
	alerts.PATCH("/:id", s.UpdateAlert)
	alerts.DELETE("/:id", s.DeleteAlert)
}
