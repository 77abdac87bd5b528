package fakeapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// APIPrefix is where the routes are mounted, mirroring the platform's
// versioned base URL
const APIPrefix = "/api/v10"

const contextKeyUser = "user"

// ErrorResponse mirrors the platform's error body
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Platform error codes returned by the fake
const (
	CodeGeneral        = 0
	CodeUnknownChannel = 10003
	CodeUnknownGuild   = 10004
	CodeEmptyMessage   = 50006
	CodeInvalidBody    = 50035
)

// NewRouter builds the gin engine serving the fake API
func NewRouter(store *Store, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	h := &handlers{store: store, log: logger}

	r := gin.New()
	r.Use(gin.Recovery(), LoggerMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group(APIPrefix, AuthMiddleware(store, logger))
	api.GET("/users/@me", h.me)
	api.GET("/users/@me/settings", h.settings)
	api.PATCH("/users/@me/settings", h.updateSettings)
	api.GET("/users/@me/guilds", h.guilds)
	api.GET("/guilds/:guild/channels", h.channels)
	api.GET("/channels/:channel/messages", h.messages)
	api.POST("/channels/:channel/messages", h.createMessage)

	return r
}

// NewServer wraps the router in an http.Server listening on addr
func NewServer(addr string, store *Store, logger *zerolog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(store, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// AuthMiddleware resolves the raw token in the Authorization header
func AuthMiddleware(store *Store, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			logger.Debug().Msg("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "401: Unauthorized", Code: CodeGeneral})
			return
		}

		user, err := store.Authenticate(token)
		if err != nil {
			logger.Debug().Err(err).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "401: Unauthorized", Code: CodeGeneral})
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// LoggerMiddleware logs every request after it is served
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetHeader("X-Request-ID")).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	}
}

func currentUser(c *gin.Context) protocol.Identity {
	user, _ := c.MustGet(contextKeyUser).(protocol.Identity)
	return user
}
