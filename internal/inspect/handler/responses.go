package handler

import (
	"time"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
	"github.com/wiratR/batch-transaction-viewer/internal/inspect/models"
	"github.com/wiratR/batch-transaction-viewer/internal/validation"
	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
)

// SessionResponse describes a session snapshot.
type SessionResponse struct {
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	HasDocument bool      `json:"has_document"`
	HasDenyList bool      `json:"has_denylist"`
}

func toSessionResponse(s *models.Session) *SessionResponse {
	return &SessionResponse{
		SessionID:   s.ID.String(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		HasDocument: s.Document != nil,
		HasDenyList: s.DenyList != nil,
	}
}

// DocumentResponse summarizes an indexed document.
type DocumentResponse struct {
	Nodes    int       `json:"nodes"`
	Findings int       `json:"findings"`
	Bytes    int       `json:"bytes"`
	LoadedAt time.Time `json:"loaded_at"`
}

func toDocumentResponse(d *models.Document) *DocumentResponse {
	return &DocumentResponse{
		Nodes:    d.Tree.Len(),
		Findings: d.Findings.Count(),
		Bytes:    d.Size,
		LoadedAt: d.LoadedAt,
	}
}

// NodeResponse is one search hit.
type NodeResponse struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
	Leaf  bool   `json:"leaf"`
	Value string `json:"value,omitempty"`
}

// NodesResponse lists search hits in document order.
type NodesResponse struct {
	Query string         `json:"query"`
	Nodes []NodeResponse `json:"nodes"`
}

func toNodesResponse(query string, hits []xmltree.IndexEntry) *NodesResponse {
	resp := &NodesResponse{Query: query, Nodes: make([]NodeResponse, 0, len(hits))}
	for _, h := range hits {
		n := NodeResponse{Path: h.Path, Name: h.Node.Name, Depth: h.Depth, Leaf: h.Node.IsLeaf()}
		if n.Leaf {
			n.Value = h.Node.TrimmedText()
		}
		resp.Nodes = append(resp.Nodes, n)
	}
	return resp
}

// NodeDetailsResponse is the details pane of one node.
type NodeDetailsResponse struct {
	xmltree.Details
	Findings []string `json:"findings"`
}

func toNodeDetailsResponse(d *models.NodeDetails) *NodeDetailsResponse {
	findings := d.Findings
	if findings == nil {
		findings = []string{}
	}
	return &NodeDetailsResponse{Details: d.Details, Findings: findings}
}

// ValidationResponse is the validation map of a document.
type ValidationResponse struct {
	Count    int            `json:"count"`
	Paths    []string       `json:"paths"`
	Findings validation.Map `json:"findings"`
}

func toValidationResponse(m validation.Map) *ValidationResponse {
	paths := m.Paths()
	if paths == nil {
		paths = []string{}
	}
	if m == nil {
		m = validation.Map{}
	}
	return &ValidationResponse{Count: m.Count(), Paths: paths, Findings: m}
}

// DenyListResponse summarizes a normalized deny list.
type DenyListResponse struct {
	Shape    string    `json:"shape"`
	Format   string    `json:"format"`
	Member   string    `json:"member,omitempty"`
	Entries  int       `json:"entries"`
	Reasons  int       `json:"reasons"`
	Bytes    int       `json:"bytes"`
	LoadedAt time.Time `json:"loaded_at"`
}

func toDenyListResponse(l *models.DenyList) *DenyListResponse {
	return &DenyListResponse{
		Shape:    string(l.Shape),
		Format:   l.Format,
		Member:   l.Member,
		Entries:  len(l.Entries),
		Reasons:  len(l.Reasons),
		Bytes:    l.Size,
		LoadedAt: l.LoadedAt,
	}
}

// LookupResponse is a PAN lookup hit.
type LookupResponse struct {
	Status string         `json:"status"`
	Entry  denylist.Entry `json:"entry"`
}

// ReasonsResponse lists the reasons of a deny list.
type ReasonsResponse struct {
	Labels  []string               `json:"labels"`
	Catalog denylist.ReasonCatalog `json:"catalog"`
	Counts  []denylist.ReasonCount `json:"counts"`
}

func toReasonsResponse(s *models.ReasonSummary) *ReasonsResponse {
	catalog := s.Catalog
	if catalog == nil {
		catalog = denylist.ReasonCatalog{}
	}
	return &ReasonsResponse{Labels: s.Labels, Catalog: catalog, Counts: s.Counts}
}
