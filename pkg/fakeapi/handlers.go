package fakeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aeolun/discordlite/pkg/protocol"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 100
)

type handlers struct {
	store *Store
	log   *zerolog.Logger
}

// me handles GET /users/@me
func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// settings handles GET /users/@me/settings
func (h *handlers) settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Settings(currentUser(c).ID))
}

// updateSettings handles PATCH /users/@me/settings. Only status is honoured.
func (h *handlers) updateSettings(c *gin.Context) {
	var req protocol.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid settings body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid Form Body", Code: CodeInvalidBody})
		return
	}

	presence, err := protocol.ParsePresence(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid Form Body", Code: CodeInvalidBody})
		return
	}

	user := currentUser(c)
	h.store.SetStatus(user.ID, presence)
	h.log.Info().Str("user", user.Username).Str("status", presence.Token()).Msg("status changed")
	c.JSON(http.StatusOK, h.store.Settings(user.ID))
}

// guilds handles GET /users/@me/guilds
func (h *handlers) guilds(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Guilds())
}

// channels handles GET /guilds/:guild/channels
func (h *handlers) channels(c *gin.Context) {
	channels, err := h.store.Channels(c.Param("guild"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// messages handles GET /channels/:channel/messages?limit=N
func (h *handlers) messages(c *gin.Context) {
	limit := defaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxMessageLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid Form Body", Code: CodeInvalidBody})
			return
		}
		limit = n
	}

	messages, err := h.store.RecentMessages(c.Param("channel"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// createMessage handles POST /channels/:channel/messages
func (h *handlers) createMessage(c *gin.Context) {
	var req protocol.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid message body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid Form Body", Code: CodeInvalidBody})
		return
	}

	msg, err := h.store.PostMessage(currentUser(c), c.Param("channel"), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info().Str("channel", c.Param("channel")).Str("message", msg.ID).Msg("message created")
	c.JSON(http.StatusOK, msg)
}

func (h *handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownGuild):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Unknown Guild", Code: CodeUnknownGuild})
	case errors.Is(err, ErrUnknownChannel):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Unknown Channel", Code: CodeUnknownChannel})
	case errors.Is(err, ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cannot send an empty message", Code: CodeEmptyMessage})
	case errors.Is(err, ErrNotTextChannel):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cannot send messages in a non-text channel", Code: CodeGeneral})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "500: Internal Server Error", Code: CodeGeneral})
	}
}
