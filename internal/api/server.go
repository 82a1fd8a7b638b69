package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"
	"unicode"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	huffman "github.com/chronos-tachyon/huffmantree"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// maxDecodeCount bounds the count of a decode request.  Every character of a
// multi-symbol tree costs at least one bit of the body, so only single-symbol
// trees can reach it.
const maxDecodeCount = maxBodyBytes

// ErrNotASCII is reported for request text, or a tree symbol, outside 7-bit
// ASCII.  JSON strings are UTF-8, so only ASCII bytes survive the round trip
// through a request and a response unchanged.
var ErrNotASCII = errors.New("api: not ASCII")

// Server represents the HTTP API server
type Server struct {
	server          *http.Server
	logger          zerolog.Logger
	shutdownTimeout time.Duration
}

// NewServer creates a new API server
func NewServer(addr string, shutdownTimeout time.Duration, logger zerolog.Logger) *Server {
	s := &Server{
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/trees/{name}", s.getTree).Methods(http.MethodGet)
	v1.HandleFunc("/trees", s.buildTree).Methods(http.MethodPost)
	v1.HandleFunc("/encode", s.encode).Methods(http.MethodPost)
	v1.HandleFunc("/decode", s.decode).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, errors.Errorf("no route for %s %s", r.Method, r.URL.Path))
	})

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and serves until ctx is done, then
// shuts down gracefully, allowing in-flight requests the configured timeout
// to finish.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.server.Addr)
	}
	return s.Serve(ctx, listener)
}

// Serve is like Start, but accepts connections on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("Server listening")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return errors.Wrap(err, "server error")
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("Request")
	})
}

// Helper functions for HTTP responses
func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return false
	}
	return true
}

// HTTP Handlers
// getTree handles GET /v1/trees/{name} - fetch a reference tree
func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	root, err := huffman.ReferenceTree(name)
	if errors.Is(err, huffman.ErrUnknownTree) {
		s.respondError(w, http.StatusNotFound, err)
		return
	}
	if root == nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respond(w, http.StatusOK, TreeResponse{
		Name:  name,
		Bits:  huffman.Serialize(root),
		Codes: codesOf(root),
	})
}

// buildTree handles POST /v1/trees - build a tree from sample text
func (s *Server) buildTree(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if err := checkASCII(req.Text); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.Wrap(err, "text"))
		return
	}

	table := huffman.Count([]byte(req.Text))
	if req.FillGaps {
		table = table.Widen(huffman.MandatorySymbols())
	}
	root, err := huffman.Build(table)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	stats := table.Stats()
	s.respond(w, http.StatusOK, TreeResponse{
		Bits:   huffman.Serialize(root),
		Codes:  codesOf(root),
		Unique: stats.Unique,
		Total:  stats.Total,
	})
}

// encode handles POST /v1/encode - encode text with a tree
func (s *Server) encode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if err := checkASCII(req.Text); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.Wrap(err, "text"))
		return
	}
	root, warnings, ok := s.selectTree(w, req.TreeSelector)
	if !ok {
		return
	}

	var enc huffman.Encoder
	enc.Init(root)
	bits := enc.Encode([]byte(req.Text))
	s.respond(w, http.StatusOK, EncodeResponse{
		Bits:     bits,
		Skipped:  enc.Skipped(),
		Warnings: messages(warnings),
	})
}

// decode handles POST /v1/decode - decode bits with a tree
func (s *Server) decode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	root, warnings, ok := s.selectTree(w, req.TreeSelector)
	if !ok {
		return
	}

	n := -1
	if req.Count != nil {
		if *req.Count < 0 || *req.Count > maxDecodeCount {
			s.respondError(w, http.StatusBadRequest, errors.Errorf("invalid count %d, must be 0 .. %d", *req.Count, maxDecodeCount))
			return
		}
		n = *req.Count
	}
	if _, isLeaf := root.(*huffman.Leaf); isLeaf && n < 0 {
		s.respondError(w, http.StatusBadRequest, errors.New("a single-symbol tree requires count"))
		return
	}

	var dec huffman.Decoder
	dec.Init(root)
	text, err := dec.DecodeN(req.Bits, n)
	warnings = multierr.Append(warnings, err)
	s.respond(w, http.StatusOK, DecodeResponse{
		Text:     text,
		Warnings: messages(warnings),
	})
}

// selectTree resolves the tree named by sel, writing an error response and
// returning ok == false if it cannot.  Trailing bits after an inline tree are
// returned as a warning.
func (s *Server) selectTree(w http.ResponseWriter, sel TreeSelector) (root huffman.Node, warnings error, ok bool) {
	if sel.TreeBits != "" {
		root, err := huffman.ParseTree(sel.TreeBits)
		if root == nil {
			s.respondError(w, http.StatusBadRequest, errors.Wrap(err, "tree_bits"))
			return nil, nil, false
		}
		for _, sym := range huffman.Leaves(root) {
			if sym > unicode.MaxASCII {
				s.respondError(w, http.StatusBadRequest, errors.Wrapf(ErrNotASCII, "tree_bits: symbol %v", sym))
				return nil, nil, false
			}
		}
		return root, err, true
	}

	name := sel.Tree
	if name == "" {
		name = huffman.StandardTreeName
	}
	root, err := huffman.ReferenceTree(name)
	if root == nil {
		status := http.StatusInternalServerError
		if errors.Is(err, huffman.ErrUnknownTree) {
			status = http.StatusBadRequest
		}
		s.respondError(w, status, err)
		return nil, nil, false
	}
	return root, nil, true
}

func checkASCII(text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] > unicode.MaxASCII {
			return errors.Wrapf(ErrNotASCII, "byte 0x%02x at offset %d", text[i], i)
		}
	}
	return nil
}

func codesOf(root huffman.Node) map[string]string {
	codes := huffman.Derive(root)
	out := make(map[string]string, len(codes))
	for sym, hc := range codes {
		out[string(rune(sym))] = string(hc)
	}
	return out
}

func messages(err error) []string {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
