package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mkarven/listwise/pkg/config"
	"github.com/mkarven/listwise/pkg/suggest"
)

// Server handles the IPC for item suggestions.
type Server struct {
	engine     suggest.Suggester
	config     *config.Config
	configPath string

	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	writeMu sync.Mutex
}

// NewServer creates a suggestion server using stdin/stdout for IPC.
func NewServer(engine suggest.Suggester, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(engine, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams. Tests drive it
// with in-memory pipes.
func NewServerWithIO(engine suggest.Suggester, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:     engine,
		config:     cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(r),
		enc:        msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It signals readiness, then
// processes requests until the input stream closes.
func (s *Server) Start() error {
	log.Debug("Starting suggestion server")

	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the request action.
func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "", "suggest":
		s.handleSuggest(request)
	case "invalidate":
		s.engine.Invalidate()
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	case "stats":
		s.send(StatusResponse{ID: request.ID, Status: "ok", Stats: s.engine.Stats()})
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	case "config_update":
		s.handleConfigUpdate(request)
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

// handleSuggest validates the query, runs it through the engine, and sends
// the ranked payloads. Short prefixes are not an error; they yield an empty
// result, matching the engine's activation threshold.
func (s *Server) handleSuggest(request Request) {
	prefix := request.Prefix
	if prefix == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		log.Debug("Prefix is empty in request")
		return
	}
	if len(prefix) > s.config.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), 400)
		log.Debug("Prefix is too long in request")
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.config.Server.DefaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions, err := s.engine.Query(context.Background(), prefix, request.Exclude, limit)
	elapsed := time.Since(start)
	if err != nil {
		s.sendError(request.ID, fmt.Sprintf("Query failed: %v", err), 500)
		log.Errorf("Query for prefix %q: %v", prefix, err)
		return
	}

	s.send(SuggestResponse{
		ID:          request.ID,
		Suggestions: toPayloads(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

// handleConfigUpdate adjusts server limits at runtime and persists them.
func (s *Server) handleConfigUpdate(request Request) {
	if request.DefaultLimit == nil && request.MaxLimit == nil && request.MaxPrefix == nil {
		s.sendError(request.ID, "No config fields in update", 400)
		return
	}
	if s.configPath == "" {
		s.sendError(request.ID, "No config file loaded", 400)
		return
	}
	if err := s.config.Update(s.configPath, request.DefaultLimit, request.MaxLimit, request.MaxPrefix); err != nil {
		s.send(StatusResponse{ID: request.ID, Status: "error", Error: err.Error()})
		log.Errorf("Config update: %v", err)
		return
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// toPayloads converts engine suggestions into wire payloads with 1-based
// ranks following the ordering the engine already decided.
func toPayloads(suggestions []suggest.ItemSuggestion) []SuggestionPayload {
	payloads := make([]SuggestionPayload, len(suggestions))
	for i, sg := range suggestions {
		var lastUsed int64
		if !sg.LastUsed.IsZero() {
			lastUsed = sg.LastUsed.Unix()
		}
		payloads[i] = SuggestionPayload{
			ID:             sg.ID,
			Title:          sg.Title,
			Description:    sg.Description,
			Quantity:       sg.Quantity,
			Images:         sg.Images,
			Frequency:      sg.Frequency,
			LastUsed:       lastUsed,
			Score:          sg.Score,
			RecencyScore:   sg.RecencyScore,
			FrequencyScore: sg.FrequencyScore,
			Rank:           uint16(i + 1),
		}
	}
	return payloads
}

// send encodes a response. Writes are serialized so concurrent handlers
// never interleave msgpack frames.
func (s *Server) send(response any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response.
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
