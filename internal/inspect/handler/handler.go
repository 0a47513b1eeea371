package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
	"github.com/wiratR/batch-transaction-viewer/internal/inspect/models"
	"github.com/wiratR/batch-transaction-viewer/internal/platform/middleware"
	"github.com/wiratR/batch-transaction-viewer/internal/validation"
	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
	dErrors "github.com/wiratR/batch-transaction-viewer/pkg/domain-errors"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/httputil"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/privacy"
	"github.com/wiratR/batch-transaction-viewer/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/inspect-mocks.go -package=mocks Service

// Service defines the interface for inspection operations.
type Service interface {
	CreateSession(ctx context.Context) (*models.Session, error)
	Session(ctx context.Context, id uuid.UUID) (*models.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	LoadDocument(ctx context.Context, id uuid.UUID, data []byte) (*models.Document, error)
	SearchNodes(ctx context.Context, id uuid.UUID, query string) ([]xmltree.IndexEntry, error)
	DescribeNode(ctx context.Context, id uuid.UUID, path string) (*models.NodeDetails, error)
	Findings(ctx context.Context, id uuid.UUID) (validation.Map, error)
	LoadDenyList(ctx context.Context, id uuid.UUID, data []byte) (*models.DenyList, error)
	QueryEntries(ctx context.Context, id uuid.UUID, q denylist.QueryParams) (denylist.View, error)
	LookupEntry(ctx context.Context, id uuid.UUID, pan string) (denylist.Entry, error)
	Reasons(ctx context.Context, id uuid.UUID) (*models.ReasonSummary, error)
	Export(ctx context.Context, id uuid.UUID, format models.ExportFormat, w io.Writer) error
}

// Limits caps request bodies per upload route.
type Limits struct {
	MaxDocumentBytes int64
	MaxPayloadBytes  int64
}

// Handler wires inspection endpoints to the inspection service.
type Handler struct {
	service Service
	logger  *slog.Logger
	limits  Limits
}

// New constructs an inspection handler with its dependencies. A nil logger
// discards.
func New(service Service, logger *slog.Logger, limits Limits) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		logger:  logger,
		limits:  limits,
	}
}

// Register mounts the session endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGetSession)
			r.Delete("/", h.HandleDeleteSession)

			r.With(
				middleware.MaxBodyBytes(h.limits.MaxDocumentBytes),
				middleware.RequireContentType("application/xml", "text/xml", "text/plain", "application/octet-stream"),
			).Put("/document", h.HandleLoadDocument)
			r.Get("/nodes", h.HandleSearchNodes)
			r.Get("/nodes/*", h.HandleDescribeNode)
			r.Get("/validation", h.HandleValidation)

			r.With(middleware.MaxBodyBytes(h.limits.MaxPayloadBytes)).Put("/denylist", h.HandleLoadDenyList)
			r.Get("/entries", h.HandleQueryEntries)
			r.With(middleware.MaxBodyBytes(64<<10), middleware.ContentTypeJSON).Post("/entries/query", h.HandlePostQueryEntries)
			r.Get("/entries/{pan}", h.HandleLookupEntry)
			r.Get("/reasons", h.HandleReasons)
			r.Get("/export.csv", h.HandleExportCSV)
			r.Get("/export.json", h.HandleExportJSON)
		})
	})
}

// HandleCreateSession handles POST /sessions.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, err := h.service.CreateSession(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to create session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toSessionResponse(session))
}

// HandleGetSession handles GET /sessions/{id}.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	session, err := h.service.Session(ctx, id)
	if err != nil {
		h.fail(ctx, w, "failed to load session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSessionResponse(session))
}

// HandleDeleteSession handles DELETE /sessions/{id}.
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSession(ctx, id); err != nil {
		h.fail(ctx, w, "failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLoadDocument handles PUT /sessions/{id}/document with a raw XML body.
func (h *Handler) HandleLoadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	data, ok := h.readBody(w, r)
	if !ok {
		return
	}

	doc, err := h.service.LoadDocument(ctx, id, data)
	if err != nil {
		h.fail(ctx, w, "document load failed", err)
		return
	}

	h.logger.InfoContext(ctx, "document indexed",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"nodes", doc.Tree.Len(),
		"findings", doc.Findings.Count(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// HandleSearchNodes handles GET /sessions/{id}/nodes?q=.
func (h *Handler) HandleSearchNodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")
	hits, err := h.service.SearchNodes(ctx, id, query)
	if err != nil {
		h.fail(ctx, w, "node search failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toNodesResponse(query, hits))
}

// HandleDescribeNode handles GET /sessions/{id}/nodes/{path}. An empty path
// addresses the document element.
func (h *Handler) HandleDescribeNode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	path, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid node path"))
		return
	}
	details, err := h.service.DescribeNode(ctx, id, path)
	if err != nil {
		h.fail(ctx, w, "node lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toNodeDetailsResponse(details))
}

// HandleValidation handles GET /sessions/{id}/validation.
func (h *Handler) HandleValidation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	findings, err := h.service.Findings(ctx, id)
	if err != nil {
		h.fail(ctx, w, "validation lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toValidationResponse(findings))
}

// HandleLoadDenyList handles PUT /sessions/{id}/denylist. The body may be
// plain JSON or a zlib, deflate or zip container.
func (h *Handler) HandleLoadDenyList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	data, ok := h.readBody(w, r)
	if !ok {
		return
	}
	list, err := h.service.LoadDenyList(ctx, id, data)
	if err != nil {
		h.fail(ctx, w, "deny list load failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDenyListResponse(list))
}

// HandleQueryEntries handles GET /sessions/{id}/entries.
func (h *Handler) HandleQueryEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req := QueryRequestFromValues(r.URL.Query())
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.queryEntries(ctx, w, id, req)
}

// HandlePostQueryEntries handles POST /sessions/{id}/entries/query.
func (h *Handler) HandlePostQueryEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[QueryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.queryEntries(ctx, w, id, req)
}

func (h *Handler) queryEntries(ctx context.Context, w http.ResponseWriter, id uuid.UUID, req *QueryRequest) {
	view, err := h.service.QueryEntries(ctx, id, req.Params())
	if err != nil {
		h.fail(ctx, w, "entry query failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleLookupEntry handles GET /sessions/{id}/entries/{pan}.
func (h *Handler) HandleLookupEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	pan := strings.TrimSpace(chi.URLParam(r, "pan"))
	entry, err := h.service.LookupEntry(ctx, id, pan)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.InfoContext(ctx, "pan not denied",
				"request_id", requestcontext.RequestID(ctx),
				"pan_fingerprint", privacy.FingerprintPAN(pan),
			)
		}
		h.fail(ctx, w, "entry lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &LookupResponse{Status: "DENIED", Entry: entry})
}

// HandleReasons handles GET /sessions/{id}/reasons.
func (h *Handler) HandleReasons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	summary, err := h.service.Reasons(ctx, id)
	if err != nil {
		h.fail(ctx, w, "reason lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toReasonsResponse(summary))
}

// HandleExportCSV handles GET /sessions/{id}/export.csv.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, models.ExportCSV, "text/csv; charset=utf-8", "denylist.csv")
}

// HandleExportJSON handles GET /sessions/{id}/export.json.
func (h *Handler) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, models.ExportJSON, "application/json", "denylist.json")
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format models.ExportFormat, contentType, filename string) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.service.Export(ctx, id, format, &buf); err != nil {
		h.fail(ctx, w, "export failed", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(ctx, "failed to write export",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteError(w, dErrors.New(dErrors.CodePayloadTooLarge, "request body too large"))
			return nil, false
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read request body"))
		return nil, false
	}
	if len(data) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body is required"))
		return nil, false
	}
	return data, true
}

// fail logs at warn for client errors and at error otherwise, then writes
// the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}
