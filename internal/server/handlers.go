package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
	"github.com/zxinyun/ai-humanizer-zh/internal/logger"
	"github.com/zxinyun/ai-humanizer-zh/internal/preserve"
	"github.com/zxinyun/ai-humanizer-zh/internal/report"
	"github.com/zxinyun/ai-humanizer-zh/internal/websocket"
)

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Signals detector.Result `json:"signals"`
	Total   int             `json:"total"`
	Cached  bool            `json:"cached"`
}

type humanizeRequest struct {
	Text        string   `json:"text"`
	Style       string   `json:"style,omitempty"`
	Variability string   `json:"variability,omitempty"`
	Preserve    []string `json:"preserve,omitempty"`
}

type humanizeResponse struct {
	Text                 string          `json:"text"`
	OriginalLength       int             `json:"original_length"`
	HumanizedLength      int             `json:"humanized_length"`
	LengthChange         float64         `json:"length_change"`
	Style                string          `json:"style"`
	Variability          string          `json:"variability"`
	EffectiveVariability string          `json:"effective_variability"`
	Signals              detector.Result `json:"signals"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	d := s.defaults.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"name":                "ai-humanizer-zh",
		"version":             Version,
		"default_style":       d.options.Style,
		"default_variability": d.options.Variability,
		"preserve_count":      len(d.preserve),
		"cache_enabled":       s.detector.Enabled(),
		"rate_limit_enabled":  s.config.RateLimit.Enabled,
		"websocket_enabled":   s.config.WebSocket.Enabled,
		"signals":             detector.SignalNames,
	})
}

// handleDetect reports the AI-style signals of a text
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())

	var req detectRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	start := time.Now()
	signals, cached := s.detector.Detect(r.Context(), req.Text)
	s.detections.Add(1)

	s.wsHub.BroadcastDetection(websocket.DetectionEvent{
		RequestID:    requestID,
		Signals:      signals,
		Total:        signals.Total(),
		Chars:        utf8.RuneCountInString(req.Text),
		Cached:       cached,
		ProcessingMS: float64(time.Since(start).Microseconds()) / 1000,
	})

	writeJSON(w, http.StatusOK, detectResponse{Signals: signals, Total: signals.Total(), Cached: cached})
}

// handleHumanize rewrites a text, filling omitted options from the defaults
func (s *Server) handleHumanize(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())
	log := s.logger.WithRequestID(requestID)

	var req humanizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	d := s.defaults.Load()
	opts := d.options
	if req.Style != "" {
		style, err := humanize.ParseStyle(req.Style)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		opts.Style = style
	}
	if req.Variability != "" {
		variability, err := humanize.ParseVariability(req.Variability)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		opts.Variability = variability
	}
	phrases := append(append([]string(nil), d.preserve...), req.Preserve...)

	result := preserve.Run(s.runner, req.Text, phrases, opts)
	s.runs.Add(1)

	change, _ := report.LengthChange(req.Text, result.Text)
	inChars := utf8.RuneCountInString(req.Text)
	outChars := utf8.RuneCountInString(result.Text)

	log.LogRun(logger.RunFields{
		Style:                string(result.Options.Style),
		Variability:          string(result.Options.Variability),
		EffectiveVariability: string(result.EffectiveVariability),
		SignalTotal:          result.Detection.Total(),
		InputChars:           inChars,
		OutputChars:          outChars,
		Preserved:            len(phrases),
		Duration:             result.Duration,
	})

	s.wsHub.BroadcastRun(websocket.HumanizeRunEvent{
		RequestID:            requestID,
		Style:                string(result.Options.Style),
		Variability:          string(result.Options.Variability),
		EffectiveVariability: string(result.EffectiveVariability),
		InputChars:           inChars,
		OutputChars:          outChars,
		LengthChange:         change,
		SignalTotal:          result.Detection.Total(),
		Preserved:            len(phrases),
		ProcessingMS:         float64(result.Duration.Microseconds()) / 1000,
	})

	writeJSON(w, http.StatusOK, humanizeResponse{
		Text:                 result.Text,
		OriginalLength:       inChars,
		HumanizedLength:      outChars,
		LengthChange:         change,
		Style:                string(result.Options.Style),
		Variability:          string(result.Options.Variability),
		EffectiveVariability: string(result.EffectiveVariability),
		Signals:              result.Detection,
	})
}

// decode reads a size limited JSON body into v, answering the request
// itself when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if s.config.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxBodyBytes)
	}

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, io.EOF):
		writeError(w, r, http.StatusBadRequest, "request body is empty")
	default:
		s.logger.WithRequestID(getRequestID(r.Context())).Debug("Invalid request body", zap.Error(err))
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: getRequestID(r.Context())})
}
