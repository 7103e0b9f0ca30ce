// Package api wires the Gin router for the rendered pages and the JSON API.
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/problem-finder/internal/catalog"
	"github.com/jonesrussell/problem-finder/internal/config"
	"github.com/jonesrussell/problem-finder/internal/events"
	"github.com/jonesrussell/problem-finder/internal/handlers"
	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/web"
)

const corsMaxAge = 12 * time.Hour

// NewRouter builds the engine with all routes and middleware attached.
func NewRouter(cat *catalog.Catalog, pub *events.Publisher, cfg *config.Config, log logger.Logger) (*gin.Engine, error) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With",
		},
		MaxAge: corsMaxAge,
	}))
	router.Use(ginLogger(log))

	pageHandler := handlers.NewPageHandler(cat, pub, log)
	problemHandler := handlers.NewProblemHandler(cat, pub, log)

	// rendering defects end up on the error view, not a blank 500
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic", logger.Any("panic", recovered))
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		pageHandler.Error(c)
		c.Abort()
	}))

	router.GET("/health", func(c *gin.Context) {
		mode := "fixture"
		if cat.Live() {
			mode = "live"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
	})

	// Pages
	router.GET("/", pageHandler.Index)
	router.GET("/problems/:id", pageHandler.Detail)
	router.GET("/about", pageHandler.About)

	// API v1
	v1 := router.Group("/api/v1")
	problems := v1.Group("/problems")
	problems.GET("", problemHandler.List)
	problems.GET("/export", problemHandler.Export)
	problems.GET("/:id", problemHandler.GetByID)

	router.NoRoute(func(c *gin.Context) {
		if wantsJSON(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		pageHandler.NotFound(c)
	})

	return router, nil
}

// wantsJSON reports whether the request targets the API rather than a page.
func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
