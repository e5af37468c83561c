package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/avalder/keel/pkg/catalog"
	"github.com/avalder/keel/pkg/nanos"
)

const definitionsChannel = "instrument_definitions"

type subscribeMessage struct {
	Op      string `json:"op"`
	Channel string `json:"channel"`
}

// Client subscribes to an instrument-definitions stream and applies every
// decodable update to the catalog. An update that fails the construction
// invariants is venue data quality, it is logged and skipped, the stream
// keeps running.
type Client struct {
	endpoint string
	catalog  *catalog.Catalog
	logger   *zap.Logger

	readTimeout  time.Duration
	writeTimeout time.Duration
	pingInterval time.Duration
	reconnectMin time.Duration
	reconnectMax time.Duration
}

type Option func(*Client)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) { c.readTimeout = d }
}

func WithPingInterval(d time.Duration) Option {
	return func(c *Client) { c.pingInterval = d }
}

func WithReconnectWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.reconnectMin = min
		c.reconnectMax = max
	}
}

func NewClient(endpoint string, cat *catalog.Catalog, opts ...Option) *Client {
	c := &Client{
		endpoint:     endpoint,
		catalog:      cat,
		logger:       zap.NewNop(),
		readTimeout:  60 * time.Second,
		writeTimeout: 10 * time.Second,
		pingInterval: 20 * time.Second,
		reconnectMin: time.Second,
		reconnectMax: time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run dials and consumes the stream until the context is cancelled,
// reconnecting with exponential backoff after every dropped connection.
func (c *Client) Run(ctx context.Context) error {
	wait := c.reconnectMin
	for {
		err := c.runOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("definitions stream dropped",
			zap.String("endpoint", c.endpoint),
			zap.Duration("reconnect_in", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
		if wait > c.reconnectMax {
			wait = c.reconnectMax
		}
	}
}

func (c *Client) runOnce(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("unable to dial %q: %w", c.endpoint, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	// Unblock the read loop on cancellation.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	if err := c.subscribe(conn); err != nil {
		return err
	}
	c.logger.Info("definitions stream connected", zap.String("endpoint", c.endpoint))

	go c.ping(ctx, conn)

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	})
	if err := conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return fmt.Errorf("unable to set read deadline: %w", err)
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("unable to read message: %w", err)
		}
		if err := conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return fmt.Errorf("unable to set read deadline: %w", err)
		}
		c.apply(message)
	}
}

func (c *Client) subscribe(conn *websocket.Conn) error {
	payload, err := json.Marshal(subscribeMessage{Op: "subscribe", Channel: definitionsChannel})
	if err != nil {
		return fmt.Errorf("unable to marshal subscribe message: %w", err)
	}
	if err := conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("unable to set write deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("unable to subscribe to %q: %w", definitionsChannel, err)
	}
	return nil
}

func (c *Client) ping(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) apply(message []byte) {
	def, err := DecodeDefinition(message, nanos.Now())
	if err != nil {
		c.logger.Warn("definition rejected", zap.Error(err))
		return
	}
	replaced := c.catalog.Apply(def)
	c.logger.Debug("definition applied",
		zap.Stringer("id", def.Instrument.ID()),
		zap.Bool("replaced", replaced))
}
