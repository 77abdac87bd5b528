package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aeolun/discordlite/pkg/protocol"
)

// DefaultBaseURL is the platform REST API root
const DefaultBaseURL = "https://discord.com/api/v10"

// DefaultMessageLimit is how many recent messages a channel fetch asks for
const DefaultMessageLimit = 50

const (
	OpVerifyIdentity  = "verify_identity"
	OpFetchSettings   = "fetch_settings"
	OpFetchGuilds     = "fetch_guilds"
	OpFetchChannels   = "fetch_channels"
	OpFetchMessages   = "fetch_messages"
	OpSendMessage     = "send_message"
	OpUpdatePresence  = "update_presence"
	requestIDHeader   = "X-Request-ID"
	defaultUserAgent  = "discordlite (https://github.com/aeolun/discordlite, 0.1)"
	maxErrorBodyBytes = 512
)

// GatewayOptions configures an HTTPGateway
type GatewayOptions struct {
	BaseURL      string
	UserAgent    string
	MessageLimit int
	// Timeout bounds a single request. Zero means no limit.
	Timeout time.Duration
	Logger  zerolog.Logger
	Metrics *Metrics
	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
}

// HTTPGateway implements GatewayInterface over the platform's REST API
type HTTPGateway struct {
	baseURL      string
	userAgent    string
	messageLimit int
	http         *http.Client
	logger       zerolog.Logger
	metrics      *Metrics
}

// NewHTTPGateway creates a gateway. Unset options fall back to defaults.
func NewHTTPGateway(opts GatewayOptions) *HTTPGateway {
	g := &HTTPGateway{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		userAgent:    opts.UserAgent,
		messageLimit: opts.MessageLimit,
		http:         opts.HTTPClient,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
	}
	if g.baseURL == "" {
		g.baseURL = DefaultBaseURL
	}
	if g.userAgent == "" {
		g.userAgent = defaultUserAgent
	}
	if g.messageLimit <= 0 {
		g.messageLimit = DefaultMessageLimit
	}
	if g.http == nil {
		g.http = &http.Client{Timeout: opts.Timeout}
	}
	return g
}

// BaseURL returns the API root requests are sent to
func (g *HTTPGateway) BaseURL() string {
	return g.baseURL
}

func (g *HTTPGateway) VerifyIdentity(ctx context.Context, token string) (protocol.Identity, error) {
	var me protocol.Identity
	err := g.do(ctx, OpVerifyIdentity, http.MethodGet, "/users/@me", token, nil, "verify token", "user", &me)
	return me, err
}

func (g *HTTPGateway) FetchOrderingPreference(ctx context.Context, token string) (protocol.OrderingPreference, error) {
	var pref protocol.OrderingPreference
	err := g.do(ctx, OpFetchSettings, http.MethodGet, "/users/@me/settings", token, nil, "fetch user settings", "user settings", &pref)
	return pref, err
}

func (g *HTTPGateway) FetchGuilds(ctx context.Context, token string) ([]protocol.Guild, error) {
	var guilds []protocol.Guild
	if err := g.do(ctx, OpFetchGuilds, http.MethodGet, "/users/@me/guilds", token, nil, "fetch guilds", "guilds", &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

func (g *HTTPGateway) FetchChannels(ctx context.Context, token, guildID string) ([]protocol.Channel, error) {
	var channels []protocol.Channel
	path := "/guilds/" + url.PathEscape(guildID) + "/channels"
	if err := g.do(ctx, OpFetchChannels, http.MethodGet, path, token, nil, "fetch channels", "channels", &channels); err != nil {
		return nil, err
	}
	return NormalizeChannels(channels), nil
}

func (g *HTTPGateway) FetchMessages(ctx context.Context, token, channelID string) ([]protocol.Message, error) {
	var messages []protocol.Message
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", url.PathEscape(channelID), g.messageLimit)
	if err := g.do(ctx, OpFetchMessages, http.MethodGet, path, token, nil, "fetch messages", "messages", &messages); err != nil {
		return nil, err
	}
	return ChronologicalMessages(messages), nil
}

func (g *HTTPGateway) SendMessage(ctx context.Context, token, channelID, content string) error {
	path := "/channels/" + url.PathEscape(channelID) + "/messages"
	body := protocol.SendMessageRequest{Content: content}
	return g.do(ctx, OpSendMessage, http.MethodPost, path, token, body, "send message", "", nil)
}

func (g *HTTPGateway) UpdatePresence(ctx context.Context, token string, presence protocol.Presence) error {
	body := protocol.UpdateSettingsRequest{Status: presence.Token()}
	return g.do(ctx, OpUpdatePresence, http.MethodPatch, "/users/@me/settings", token, body, "change status", "", nil)
}

// do performs one request. body, when non-nil, is sent as JSON. out, when
// non-nil, receives the decoded response; resource names it in decode errors.
func (g *HTTPGateway) do(ctx context.Context, op, method, path, token string, body any, what, resource string, out any) (err error) {
	start := time.Now()
	reqID := uuid.NewString()
	logger := g.logger.With().Str("op", op).Str("request_id", reqID).Logger()
	defer func() {
		g.metrics.observe(op, start, err)
		ev := logger.Debug()
		if err != nil {
			ev = logger.Warn().Str("kind", Kind(err))
		}
		ev.Dur("elapsed", time.Since(start)).Err(err).Msg("gateway request")
	}()

	var reader io.Reader
	if body != nil {
		payload, merr := json.Marshal(body)
		if merr != nil {
			return &RequestError{Op: op, Kind: ErrDecode, Err: merr, msg: fmt.Sprintf("Failed to encode request: %v", merr)}
		}
		reader = bytes.NewReader(payload)
	}

	req, rerr := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if rerr != nil {
		return networkError(op, rerr)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, derr := g.http.Do(req)
	if derr != nil {
		return networkError(op, derr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Debug().Int("status", resp.StatusCode).Bytes("body", snippet).Msg("non-success response")
		return statusError(op, what, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if jerr := json.NewDecoder(resp.Body).Decode(out); jerr != nil {
		return decodeError(op, resource, jerr)
	}
	return nil
}
