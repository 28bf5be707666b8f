package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
)

// EventType represents the type of WebSocket event
type EventType string

const (
	// EventTypeHumanizeRun is sent after every rewrite
	EventTypeHumanizeRun EventType = "humanize_run"
	// EventTypeDetection is sent after every detection request
	EventTypeDetection EventType = "detection"
	// EventTypeSystemStatus represents a system status event
	EventTypeSystemStatus EventType = "system_status"
	// EventTypeConnection represents connection events
	EventTypeConnection EventType = "connection"
	// EventTypePong answers a client ping
	EventTypePong EventType = "pong"
)

// Event represents a WebSocket event sent to clients
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// HumanizeRunEvent summarizes one rewrite. The text itself is never sent.
type HumanizeRunEvent struct {
	RequestID            string  `json:"request_id"`
	Style                string  `json:"style"`
	Variability          string  `json:"variability"`
	EffectiveVariability string  `json:"effective_variability"`
	InputChars           int     `json:"input_chars"`
	OutputChars          int     `json:"output_chars"`
	LengthChange         float64 `json:"length_change"`
	SignalTotal          int     `json:"signal_total"`
	Preserved            int     `json:"preserved"`
	ProcessingMS         float64 `json:"processing_ms"`
}

// DetectionEvent reports the signals found in one text
type DetectionEvent struct {
	RequestID    string          `json:"request_id"`
	Signals      detector.Result `json:"signals"`
	Total        int             `json:"total"`
	Chars        int             `json:"chars"`
	Cached       bool            `json:"cached"`
	ProcessingMS float64         `json:"processing_ms"`
}

// SystemStatusEvent represents system status information
type SystemStatusEvent struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	TotalRuns        int64  `json:"total_runs"`
	TotalDetections  int64  `json:"total_detections"`
	ConnectedClients int    `json:"connected_clients"`
	CacheEnabled     bool   `json:"cache_enabled"`
}

// ConnectionEvent represents WebSocket connection events
type ConnectionEvent struct {
	Action    string `json:"action"` // "connected", "disconnected"
	ClientID  string `json:"client_id"`
	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ClientMessage represents messages sent from clients to server
type ClientMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SubscriptionRequest represents a client subscription request
type SubscriptionRequest struct {
	Events []EventType `json:"events"`
	// MinSignals drops detection and run events below this signal total
	MinSignals int `json:"min_signals,omitempty"`
}

// Client represents a WebSocket client connection
type Client struct {
	ID           string
	Conn         *websocket.Conn
	Send         chan Event
	Subscription *SubscriptionRequest
	ConnectedAt  time.Time
	LastPing     time.Time
	IP           string
	UserAgent    string

	mu sync.RWMutex
}
