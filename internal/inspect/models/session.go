// Package models holds the inspection session snapshot types.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
	"github.com/wiratR/batch-transaction-viewer/internal/validation"
	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
)

// Session is an immutable snapshot. Uploads replace the Document or DenyList
// wholesale by saving a modified copy; nothing inside is mutated in place.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Document  *Document
	DenyList  *DenyList
}

// WithDocument returns a copy of s holding doc.
func (s Session) WithDocument(doc *Document, at time.Time) *Session {
	s.Document = doc
	s.UpdatedAt = at
	return &s
}

// WithDenyList returns a copy of s holding list.
func (s Session) WithDenyList(list *DenyList, at time.Time) *Session {
	s.DenyList = list
	s.UpdatedAt = at
	return &s
}

// Document is an indexed, validated XML document.
type Document struct {
	Tree     *xmltree.IndexedTree
	Findings validation.Map
	Size     int
	LoadedAt time.Time
}

// DenyList is a normalized deny-list payload.
type DenyList struct {
	Entries  []denylist.Entry
	Reasons  denylist.ReasonCatalog
	Shape    denylist.Shape
	Format   string
	Member   string
	Size     int
	LoadedAt time.Time
}

// ReasonSummary describes the reasons present in a deny list.
type ReasonSummary struct {
	Labels  []string
	Catalog denylist.ReasonCatalog
	Counts  []denylist.ReasonCount
}

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// NodeDetails is a node's details pane plus the findings raised on it.
type NodeDetails struct {
	Details  xmltree.Details
	Findings []string
}
