// Package service orchestrates the XML inspection and deny-list pipelines
// over per-session snapshots.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
	"github.com/wiratR/batch-transaction-viewer/internal/denylist/source"
	"github.com/wiratR/batch-transaction-viewer/internal/inspect/metrics"
	"github.com/wiratR/batch-transaction-viewer/internal/inspect/models"
	"github.com/wiratR/batch-transaction-viewer/internal/validation"
	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
	dErrors "github.com/wiratR/batch-transaction-viewer/pkg/domain-errors"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/privacy"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/sentinel"
	"github.com/wiratR/batch-transaction-viewer/pkg/requestcontext"
)

const tracerName = "github.com/wiratR/batch-transaction-viewer/internal/inspect/service"

// Default upload limits.
const (
	DefaultMaxDocumentBytes = 16 << 20
	DefaultMaxPayloadBytes  = 64 << 20
)

type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Execute(ctx context.Context, id uuid.UUID, apply func(*models.Session) (*models.Session, error)) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service runs the pipelines and keeps their results in session snapshots.
type Service struct {
	sessions         SessionStore
	engine           *validation.Engine
	logger           *slog.Logger
	metrics          *metrics.Metrics
	tracer           trace.Tracer
	maxDocumentBytes int64
	maxPayloadBytes  int64
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithValidationEngine replaces the default rule set.
func WithValidationEngine(engine *validation.Engine) Option {
	return func(s *Service) {
		s.engine = engine
	}
}

// WithLimits sets the upload size limits. Non-positive values keep the defaults.
func WithLimits(maxDocumentBytes, maxPayloadBytes int64) Option {
	return func(s *Service) {
		if maxDocumentBytes > 0 {
			s.maxDocumentBytes = maxDocumentBytes
		}
		if maxPayloadBytes > 0 {
			s.maxPayloadBytes = maxPayloadBytes
		}
	}
}

// New constructs a Service.
func New(sessions SessionStore, opts ...Option) *Service {
	s := &Service{
		sessions:         sessions,
		engine:           validation.NewEngine(),
		logger:           slog.New(slog.DiscardHandler),
		tracer:           otel.Tracer(tracerName),
		maxDocumentBytes: DefaultMaxDocumentBytes,
		maxPayloadBytes:  DefaultMaxPayloadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession opens an empty session.
func (s *Service) CreateSession(ctx context.Context) (*models.Session, error) {
	now := requestcontext.Now(ctx)
	session := &models.Session{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}
	s.metrics.SessionOpened()
	s.logger.InfoContext(ctx, "session created",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID,
	)
	return session, nil
}

// DeleteSession drops a session and everything loaded into it.
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return translateStoreErr(err, "failed to delete session")
	}
	s.metrics.SessionClosed()
	s.logger.InfoContext(ctx, "session deleted",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
	)
	return nil
}

// Session returns the current snapshot of a session.
func (s *Service) Session(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load session")
	}
	return session, nil
}

// LoadDocument parses, indexes and validates an XML document and replaces the
// session's document with the result. A parse failure leaves the session
// unchanged.
func (s *Service) LoadDocument(ctx context.Context, id uuid.UUID, data []byte) (*models.Document, error) {
	ctx, span := s.tracer.Start(ctx, "inspect.Service.LoadDocument",
		trace.WithAttributes(
			attribute.String("session.id", id.String()),
			attribute.Int("document.bytes", len(data)),
		),
	)
	defer span.End()

	if int64(len(data)) > s.maxDocumentBytes {
		span.SetStatus(codes.Error, "document too large")
		return nil, dErrors.New(dErrors.CodePayloadTooLarge, "document exceeds size limit")
	}
	if _, err := s.Session(ctx, id); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
	}

	start := time.Now()
	tree, err := xmltree.Load(string(data))
	if err != nil {
		s.metrics.IncrementParseFailures()
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		s.logger.WarnContext(ctx, "document rejected",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", id,
			"error", err,
		)
		var perr *xmltree.ParseError
		if errors.As(err, &perr) {
			return nil, &dErrors.Error{Code: dErrors.CodeParseError, Message: perr.Error(), Err: err}
		}
		return nil, dErrors.Wrap(err, dErrors.CodeParseError, "malformed document")
	}
	span.AddEvent("indexed", trace.WithAttributes(attribute.Int("document.nodes", tree.Len())))

	findings := s.engine.Validate(tree)
	s.metrics.ObservePipelineLatency("document", time.Since(start))
	s.metrics.IncrementDocumentsIndexed()
	for _, msgs := range findings {
		for _, msg := range msgs {
			s.metrics.AddFindings(msg, 1)
		}
	}

	doc := &models.Document{
		Tree:     tree,
		Findings: findings,
		Size:     len(data),
		LoadedAt: requestcontext.Now(ctx),
	}
	_, err = s.sessions.Execute(ctx, id, func(current *models.Session) (*models.Session, error) {
		return current.WithDocument(doc, doc.LoadedAt), nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, translateStoreErr(err, "failed to save document")
	}

	span.SetAttributes(
		attribute.Int("document.nodes", tree.Len()),
		attribute.Int("validation.findings", findings.Count()),
	)
	span.SetStatus(codes.Ok, "document loaded")
	s.logger.InfoContext(ctx, "document loaded",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"nodes", tree.Len(),
		"findings", findings.Count(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

// SearchNodes returns the indexed nodes whose label contains query.
func (s *Service) SearchNodes(ctx context.Context, id uuid.UUID, query string) ([]xmltree.IndexEntry, error) {
	doc, err := s.document(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementQuery("search")
	return doc.Tree.Search(query), nil
}

// DescribeNode returns the details pane for the node at path.
func (s *Service) DescribeNode(ctx context.Context, id uuid.UUID, path string) (*models.NodeDetails, error) {
	doc, err := s.document(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementQuery("details")
	details, ok := doc.Tree.Describe(path)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "no node at path "+path)
	}
	return &models.NodeDetails{Details: details, Findings: doc.Findings[path]}, nil
}

// Findings returns the validation map of the session's document.
func (s *Service) Findings(ctx context.Context, id uuid.UUID) (validation.Map, error) {
	doc, err := s.document(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Findings, nil
}

// LoadDenyList unpacks and normalizes a deny-list payload and replaces the
// session's entry set with the result.
func (s *Service) LoadDenyList(ctx context.Context, id uuid.UUID, data []byte) (*models.DenyList, error) {
	ctx, span := s.tracer.Start(ctx, "inspect.Service.LoadDenyList",
		trace.WithAttributes(
			attribute.String("session.id", id.String()),
			attribute.Int("payload.bytes", len(data)),
		),
	)
	defer span.End()

	if int64(len(data)) > s.maxPayloadBytes {
		span.SetStatus(codes.Error, "payload too large")
		return nil, dErrors.New(dErrors.CodePayloadTooLarge, "deny-list payload exceeds size limit")
	}
	if _, err := s.Session(ctx, id); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
	}

	start := time.Now()
	payload, err := source.Unpack(data, s.maxPayloadBytes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unpack failed")
		if errors.Is(err, source.ErrTooLarge) {
			return nil, dErrors.Wrap(err, dErrors.CodePayloadTooLarge, "deny-list payload exceeds size limit")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "unreadable deny-list payload")
	}
	res, err := denylist.NormalizeJSON(payload.Data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "deny-list payload is not valid JSON")
	}
	s.metrics.ObservePipelineLatency("denylist", time.Since(start))
	s.metrics.AddEntriesNormalized(string(res.Shape), len(res.Entries))

	list := &models.DenyList{
		Entries:  res.Entries,
		Reasons:  res.Reasons,
		Shape:    res.Shape,
		Format:   string(payload.Format),
		Member:   payload.Member,
		Size:     len(data),
		LoadedAt: requestcontext.Now(ctx),
	}
	_, err = s.sessions.Execute(ctx, id, func(current *models.Session) (*models.Session, error) {
		return current.WithDenyList(list, list.LoadedAt), nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, translateStoreErr(err, "failed to save deny list")
	}

	span.SetAttributes(
		attribute.String("denylist.shape", string(res.Shape)),
		attribute.String("denylist.format", string(payload.Format)),
		attribute.Int("denylist.entries", len(res.Entries)),
	)
	span.SetStatus(codes.Ok, "deny list loaded")
	s.logger.InfoContext(ctx, "deny list loaded",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"shape", res.Shape,
		"format", payload.Format,
		"entries", len(res.Entries),
		"reasons", len(res.Reasons),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return list, nil
}

// QueryEntries filters, sorts and summarizes the session's entries.
func (s *Service) QueryEntries(ctx context.Context, id uuid.UUID, q denylist.QueryParams) (denylist.View, error) {
	list, err := s.denyList(ctx, id)
	if err != nil {
		return denylist.View{}, err
	}
	_, span := s.tracer.Start(ctx, "inspect.Service.QueryEntries",
		trace.WithAttributes(
			attribute.String("query.sort", string(q.Key)),
			attribute.String("query.dir", string(q.Direction)),
		),
	)
	defer span.End()

	s.metrics.IncrementQuery("entries")
	start := time.Now()
	view := denylist.Query(list.Entries, list.Reasons, q)
	s.metrics.ObservePipelineLatency("query", time.Since(start))
	span.SetAttributes(attribute.Int("query.matches", view.Stats.Count))
	return view, nil
}

// LookupEntry returns the entry with exactly pan.
func (s *Service) LookupEntry(ctx context.Context, id uuid.UUID, pan string) (denylist.Entry, error) {
	list, err := s.denyList(ctx, id)
	if err != nil {
		return denylist.Entry{}, err
	}
	s.metrics.IncrementQuery("lookup")
	entry, ok := denylist.Lookup(list.Entries, pan)
	s.logger.InfoContext(ctx, "deny list lookup",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"pan_fingerprint", privacy.FingerprintPAN(pan),
		"denied", ok,
	)
	if !ok {
		return denylist.Entry{}, dErrors.New(dErrors.CodeNotFound, "not in deny list")
	}
	return entry, nil
}

// Reasons summarizes the reasons present in the session's entries.
func (s *Service) Reasons(ctx context.Context, id uuid.UUID) (*models.ReasonSummary, error) {
	list, err := s.denyList(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementQuery("reasons")
	return &models.ReasonSummary{
		Labels:  denylist.DistinctReasons(list.Entries),
		Catalog: list.Reasons,
		Counts:  denylist.CountByReason(list.Entries, list.Reasons),
	}, nil
}

// Export writes the session's entries, ordered by PAN, to w.
func (s *Service) Export(ctx context.Context, id uuid.UUID, format models.ExportFormat, w io.Writer) error {
	list, err := s.denyList(ctx, id)
	if err != nil {
		return err
	}
	s.metrics.IncrementQuery("export")
	entries := denylist.Sort(list.Entries, denylist.SortByPAN, denylist.Asc)
	switch format {
	case models.ExportCSV:
		err = denylist.WriteCSV(w, entries)
	case models.ExportJSON:
		err = denylist.WriteJSON(w, list.Reasons, entries)
	default:
		return dErrors.New(dErrors.CodeBadRequest, "unsupported export format: "+string(format))
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write export")
	}
	return nil
}

func (s *Service) document(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	session, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Document == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no document loaded")
	}
	return session.Document, nil
}

func (s *Service) denyList(ctx context.Context, id uuid.UUID) (*models.DenyList, error) {
	session, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.DenyList == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no deny list loaded")
	}
	return session.DenyList, nil
}

func translateStoreErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
