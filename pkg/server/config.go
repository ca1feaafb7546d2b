package server

import (
	"net/http"
	"net/url"
	"time"
)

// SessionConfig holds configuration for individual producer sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a frame from the
	// producer. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between WebSocket pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket
	// message. Default: 64KB.
	MaxMessageSize int64

	// SendQueue is the size of the outgoing frame buffer. A full
	// buffer blocks the sender; frames are never dropped.
	// Default: 256.
	SendQueue int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		SendQueue:         256,
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or
	// "localhost:3000"). Default: ":8080".
	Address string

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate the request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// ShutdownTimeout is the maximum time to wait for graceful
	// shutdown. Default: 30 seconds.
	ShutdownTimeout time.Duration

	// MaxSessions is the maximum number of concurrent producer
	// sessions. 0 means no limit. Default: 0.
	MaxSessions int
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
// CheckOrigin enforces same-origin by default.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         ":8080",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     SameOriginCheck,
		SessionConfig:   DefaultSessionConfig(),
		ShutdownTimeout: 30 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	if c == nil {
		return DefaultServerConfig()
	}
	defaults := DefaultServerConfig()
	out := c.Clone()
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = defaults.CheckOrigin
	}
	if out.SessionConfig == nil {
		out.SessionConfig = defaults.SessionConfig
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	sc := out.SessionConfig
	sd := defaults.SessionConfig
	if c.SessionConfig != nil {
		sc = c.SessionConfig.Clone()
		out.SessionConfig = sc
	}
	if sc.ReadTimeout == 0 {
		sc.ReadTimeout = sd.ReadTimeout
	}
	if sc.WriteTimeout == 0 {
		sc.WriteTimeout = sd.WriteTimeout
	}
	if sc.HeartbeatInterval == 0 {
		sc.HeartbeatInterval = sd.HeartbeatInterval
	}
	if sc.MaxMessageSize == 0 {
		sc.MaxMessageSize = sd.MaxMessageSize
	}
	if sc.SendQueue == 0 {
		sc.SendQueue = sd.SendQueue
	}
	return out
}

// SameOriginCheck validates that the WebSocket request origin matches
// the host. This is the secure default for CheckOrigin.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., same-origin request or curl)
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}

// Clone returns a copy of the ServerConfig.
func (c *ServerConfig) Clone() *ServerConfig {
	if c == nil {
		return nil
	}
	clone := *c
	clone.SessionConfig = c.SessionConfig.Clone()
	return &clone
}

// WithAddress sets the server address and returns the config for chaining.
func (c *ServerConfig) WithAddress(addr string) *ServerConfig {
	c.Address = addr
	return c
}

// WithSessionConfig sets the session configuration and returns the config for chaining.
func (c *ServerConfig) WithSessionConfig(sc *SessionConfig) *ServerConfig {
	c.SessionConfig = sc
	return c
}

// WithMaxSessions sets the maximum sessions and returns the config for chaining.
func (c *ServerConfig) WithMaxSessions(max int) *ServerConfig {
	c.MaxSessions = max
	return c
}
