package server

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/haneulsoft/markserve/pkg/config"
	"github.com/haneulsoft/markserve/pkg/search"
	"github.com/haneulsoft/markserve/pkg/store"
)

// Server handles the IPC for trademark search.
type Server struct {
	store   *store.Store
	engine  *search.Engine
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	writeMu sync.Mutex

	// cfgMu guards cfg: the watcher goroutine swaps it while the request
	// loop reads limits from it.
	cfgMu      sync.RWMutex
	cfg        *config.Config
	configPath string
	watcher    *config.Watcher
}

// NewServer creates a search server speaking msgpack over stdin/stdout.
func NewServer(s *store.Store, engine *search.Engine, cfg *config.Config, configPath string) *Server {
	return &Server{
		store:      s,
		engine:     engine,
		decoder:    msgpack.NewDecoder(os.Stdin),
		encoder:    msgpack.NewEncoder(os.Stdout),
		cfg:        cfg,
		configPath: configPath,
	}
}

// Start begins the request loop. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting server loop")

	if s.configPath != "" {
		w, err := config.Watch(s.configPath, s.applyConfig)
		if err != nil {
			log.Warnf("Config watching disabled: %v", err)
		} else {
			s.watcher = w
			defer s.watcher.Close()
		}
	}

	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("stdin closed, shutting down")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

// applyConfig swaps in a freshly reloaded config. Runs on the watcher
// goroutine.
func (s *Server) applyConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
	s.engine.SetOptions(searchOptions(cfg))
}

// snapshotConfig copies the current config so a handler reads one
// consistent view even when a reload or update lands mid-request.
func (s *Server) snapshotConfig() config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return *s.cfg
}

func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		Threshold:    cfg.Search.Threshold,
		RerankLimit:  cfg.Search.RerankLimit,
		DefaultLimit: cfg.Server.DefaultLimit,
		MaxLimit:     cfg.Server.MaxLimit,
	}
}

// handleRequest dispatches on the action field.
func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "", "search":
		s.handleSearch(req)
	case "detail":
		s.handleDetail(req)
	case "statuses":
		s.handleMeta(req, s.store.RegisterStatuses)
	case "product_codes":
		s.handleMeta(req, s.store.MainProductCodes)
	case "info":
		s.handleInfo(req)
	case "config":
		s.handleConfig(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, "unknown action: "+req.Action, 400)
	}
}

// handleSearch validates the query bounds, runs the engine and answers
// with one page. Empty result sets for non-empty queries include "did you
// mean" names.
func (s *Server) handleSearch(req Request) {
	cfg := s.snapshotConfig()
	if req.Query != "" {
		n := len([]rune(req.Query))
		if n < cfg.Server.MinQuery {
			s.sendError(req.ID, "query too short", 400)
			return
		}
		if n > cfg.Server.MaxQuery {
			s.sendError(req.ID, "query too long", 400)
			return
		}
	}

	start := time.Now()
	res, err := s.engine.Search(search.Params{
		Query:       req.Query,
		Status:      req.Status,
		ProductCode: req.ProductCode,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		DateField:   req.DateField,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		log.Errorf("Search failed: %v", err)
		s.sendError(req.ID, "search failed", 500)
		return
	}
	elapsed := time.Since(start)

	records := make([]ResultRecord, len(res.Records))
	for i, tm := range res.Records {
		records[i] = ResultRecord{
			ApplicationNumber: tm.ApplicationNumber,
			ProductName:       tm.ProductName,
			ProductNameEng:    tm.ProductNameEng,
			ApplicationDate:   tm.ApplicationDate,
			RegisterStatus:    tm.RegisterStatus,
			RegistrationNums:  tm.RegistrationNums,
			RegistrationDates: tm.RegistrationDates,
			MainProductCodes:  tm.MainProductCodes,
		}
	}

	var suggestions []string
	if res.Total == 0 && req.Query != "" {
		for _, sg := range s.engine.Suggest(req.Query, cfg.Search.SuggestLimit) {
			suggestions = append(suggestions, sg.Name)
		}
	}

	s.send(SearchResponse{
		ID:          req.ID,
		Records:     records,
		Total:       res.Total,
		Count:       len(records),
		Offset:      req.Offset,
		TimeTaken:   elapsed.Microseconds(),
		Suggestions: suggestions,
	})
}

func (s *Server) handleDetail(req Request) {
	if req.ApplicationNumber == "" {
		s.sendError(req.ID, "missing application number", 400)
		return
	}
	tm, err := s.store.Get(req.ApplicationNumber)
	if errors.Is(err, store.ErrNotFound) {
		s.sendError(req.ID, "trademark not found", 404)
		return
	}
	if err != nil {
		log.Errorf("Detail lookup failed: %v", err)
		s.sendError(req.ID, "lookup failed", 500)
		return
	}
	s.send(DetailResponse{ID: req.ID, Record: tm})
}

func (s *Server) handleMeta(req Request, fetch func() ([]string, error)) {
	values, err := fetch()
	if err != nil {
		log.Errorf("Meta query failed: %v", err)
		s.sendError(req.ID, "meta query failed", 500)
		return
	}
	s.send(MetaResponse{ID: req.ID, Values: values})
}

func (s *Server) handleInfo(req Request) {
	count, err := s.store.Count()
	if err != nil {
		log.Errorf("Count failed: %v", err)
		s.sendError(req.ID, "info failed", 500)
		return
	}
	cfg := s.snapshotConfig()
	s.send(InfoResponse{
		ID:           req.ID,
		RecordCount:  count,
		IndexedNames: s.engine.IndexedNames(),
		Threshold:    cfg.Search.Threshold,
		MaxLimit:     cfg.Server.MaxLimit,
	})
}

// handleConfig applies runtime tweaks and persists them.
func (s *Server) handleConfig(req Request) {
	if req.MaxLimit == nil && req.MinQuery == nil && req.MaxQuery == nil && req.Threshold == nil {
		s.sendError(req.ID, "no config values given", 400)
		return
	}
	s.cfgMu.Lock()
	err := s.cfg.Update(s.configPath, req.MaxLimit, req.MinQuery, req.MaxQuery, req.Threshold)
	updated := *s.cfg
	s.cfgMu.Unlock()
	if err != nil {
		log.Errorf("Config update failed: %v", err)
		s.sendError(req.ID, "config update failed", 500)
		return
	}
	s.engine.SetOptions(searchOptions(&updated))
	s.send(StatusResponse{ID: req.ID, Status: "updated"})
}

// send encodes a response onto stdout. Encoding failures are logged; there
// is no way to tell the client once the stream itself is broken.
func (s *Server) send(response any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response.
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
