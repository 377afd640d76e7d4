package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// Stored is a layout document kept by the server.
type Stored struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	Layout    document.Layout `json:"layout"`
}

// createResponse is the body of POST /v1/layouts.
type createResponse struct {
	Stored
	Stats createStats `json:"stats"`
}

type createStats struct {
	Tags     int   `json:"tags"`
	Placed   int   `json:"placed"`
	Skipped  int   `json:"skipped"`
	Cached   bool  `json:"cached"`
	Duration int64 `json:"duration_ms"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := s.now()
	ctx := r.Context()
	recs, err := pipeline.Parse(ctx, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	layout, hit, err := s.runner.GenerateLayoutWithCacheInfo(ctx, recs, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := s.now()
	doc := Stored{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		ExpiresAt: now.Add(cache.TTLDocument).UTC(),
		Layout:    layout,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "encode layout"))
		return
	}
	if err := s.store.Set(ctx, s.keyer.DocumentKey(doc.ID), data, cache.TTLDocument); err != nil {
		writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "store layout"))
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+doc.ID)
	writeJSON(w, http.StatusCreated, createResponse{
		Stored: doc,
		Stats: createStats{
			Tags:     len(recs),
			Placed:   layout.Placed(),
			Skipped:  len(layout.Skipped),
			Cached:   hit,
			Duration: now.Sub(start).Milliseconds(),
		},
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, r, errNotFound("layout %q not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), s.keyer.DocumentKey(id)); err != nil {
		writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "delete layout"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := errs.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts, err := s.renderOptions(r, format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), doc.Layout, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

// decodeOptions reads the request body over the server defaults.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := s.baseOptions()
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return opts, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return opts, errs.New(errs.ErrCodeInvalidInput, "request body is empty")
		}
		return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	opts.Input = "" // files are a CLI concern
	opts.Logger = s.logger
	opts.Registry = s.registry
	return opts, nil
}

// renderOptions builds render options from the server defaults and the
// query string (scale, background, thumb_width, thumb_height).
func (s *Server) renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.baseOptions()
	opts.Formats = []string{format}
	opts.Logger = s.logger
	opts.Registry = s.registry

	q := r.URL.Query()
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	floatParam := func(name string, dst *float64) error {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errs.New(errs.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
			}
			*dst = f
		}
		return nil
	}
	intParam := func(name string, dst *int) error {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return errs.New(errs.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", name, v)
			}
			*dst = n
		}
		return nil
	}
	if err := floatParam("scale", &opts.Scale); err != nil {
		return opts, err
	}
	if err := intParam("thumb_width", &opts.ThumbWidth); err != nil {
		return opts, err
	}
	if err := intParam("thumb_height", &opts.ThumbHeight); err != nil {
		return opts, err
	}
	return opts, nil
}

// load fetches the stored document named by the id URL parameter.
func (s *Server) load(r *http.Request) (Stored, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return Stored{}, errNotFound("layout %q not found", id)
	}
	data, ok, err := s.store.Get(r.Context(), s.keyer.DocumentKey(id))
	if err != nil {
		return Stored{}, errs.Wrap(errs.ErrCodeInternal, err, "load layout")
	}
	if !ok {
		return Stored{}, errNotFound("layout %q not found", id)
	}
	var doc Stored
	if err := json.Unmarshal(data, &doc); err != nil {
		return Stored{}, errs.Wrap(errs.ErrCodeInternal, err, "decode layout %s", id)
	}
	return doc, nil
}

// baseOptions copies the defaults so request decoding never writes into
// their slices.
func (s *Server) baseOptions() pipeline.Options {
	opts := s.defaults
	opts.Tags = nil
	opts.Text = ""
	opts.Angles = slices.Clone(opts.Angles)
	opts.Domain = slices.Clone(opts.Domain)
	opts.Ignore = slices.Clone(opts.Ignore)
	opts.Formats = slices.Clone(opts.Formats)
	if opts.Padding != nil {
		p := *opts.Padding
		opts.Padding = &p
	}
	return opts
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

func errNotFound(format string, args ...any) error {
	return errs.New(errs.ErrCodeNotFound, format, args...)
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, msg string) map[string]errorDetail {
	return map[string]errorDetail{"error": {Code: code, Message: msg}}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = fmt.Sprintf("internal error (request %s)", requestID(r))
	}
	writeJSON(w, status, errorBody(code, msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
