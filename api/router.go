// Package api contains all endpoints available
package api

import (
	"bitwise74/notes-api/api/category"
	"bitwise74/notes-api/api/note"
	"bitwise74/notes-api/api/root"
	"bitwise74/notes-api/api/user"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/pkg/middleware"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type API struct {
	Router  *gin.Engine
	limiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with every route registered. Close has to
// be called once the router is no longer used.
func NewRouter(d *internal.Deps) *API {
	router := gin.New()
	store := persist.NewMemoryStore(time.Minute)

	cfg := d.Config

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.Host.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.Security.RateLimit,
	})

	jwt := middleware.NewJWTMiddleware(d.Tokens, d.Users)
	turnstile := middleware.NewTurnstileMiddleware(&cfg.Cloudflare.Turnstile)

	// GET /status			-> Reports that the server is running
	router.GET("/status", cache.CacheByRequestURI(store, 5*time.Second), root.Status)

	main := router.Group("/api", limiter.Middleware(), middleware.BodySizeLimiter(cfg.Security.BodyLimit))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		main.GET("/validate", jwt, root.Validate)
	}

	auth := main.Group("/auth")
	{
		// POST /api/auth/register 	-> Registers a new user and mails a verification link
		auth.POST("/register", turnstile, func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/auth/login 	-> Logs in a user and returns a JWT token
		auth.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/auth/verify	-> Verifies a new user
		auth.POST("/verify", func(c *gin.Context) { user.UserVerify(c, d) })
	}

	n := main.Group("/notes", jwt)
	{
		// GET /api/notes		-> Returns a page of the user's notes
		n.GET("", func(c *gin.Context) { note.NoteList(c, d) })

		// POST /api/notes		-> Creates a new note
		n.POST("", func(c *gin.Context) { note.NoteCreate(c, d) })

		// POST /api/notes/assign	-> Links a note to a category
		n.POST("/assign", func(c *gin.Context) { note.NoteAssign(c, d) })

		// POST /api/notes/deassign	-> Unlinks a note from a category
		n.POST("/deassign", func(c *gin.Context) { note.NoteDeassign(c, d) })

		// GET /api/notes/:noteId	-> Returns a note with its categories
		n.GET("/:noteId", func(c *gin.Context) { note.NoteFetch(c, d) })

		// GET /api/notes/:noteId/owns	-> Checks if a user owns a note
		n.GET("/:noteId/owns", func(c *gin.Context) { note.NoteOwns(c, d) })

		// PUT /api/notes/:noteId	-> Edits the title and/or content of a note
		n.PUT("/:noteId", func(c *gin.Context) { note.NoteEdit(c, d) })

		// DELETE /api/notes/:noteId	-> Deletes a note
		n.DELETE("/:noteId", func(c *gin.Context) { note.NoteDelete(c, d) })
	}

	cat := main.Group("/categories", jwt)
	{
		// GET /api/categories		-> Returns all categories of the user
		cat.GET("", func(c *gin.Context) { category.CategoryList(c, d) })

		// POST /api/categories		-> Creates a new category
		cat.POST("", func(c *gin.Context) { category.CategoryCreate(c, d) })

		// PUT /api/categories/:categoryId	-> Renames a category
		cat.PUT("/:categoryId", func(c *gin.Context) { category.CategoryEdit(c, d) })

		// DELETE /api/categories/:categoryId	-> Deletes a category
		cat.DELETE("/:categoryId", func(c *gin.Context) { category.CategoryDelete(c, d) })
	}

	return &API{Router: router, limiter: limiter}
}

// Close stops the background work started by NewRouter
func (a *API) Close() {
	a.limiter.Stop()
}
