package handler

import (
	"net/url"
	"strings"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
	dErrors "github.com/wiratR/batch-transaction-viewer/pkg/domain-errors"
)

const maxQueryFieldLength = 256

// QueryRequest is the entry query, from the query string of
// GET /sessions/{id}/entries or the body of POST /sessions/{id}/entries/query.
type QueryRequest struct {
	Text    string `json:"text"`
	Removed string `json:"removed"`
	Reason  string `json:"reason"`
	Sort    string `json:"sort"`
	Dir     string `json:"dir"`

	// Parsed values (populated by Validate)
	params denylist.QueryParams
}

// QueryRequestFromValues reads a QueryRequest from URL query values.
func QueryRequestFromValues(v url.Values) *QueryRequest {
	return &QueryRequest{
		Text:    v.Get("text"),
		Removed: v.Get("removed"),
		Reason:  v.Get("reason"),
		Sort:    v.Get("sort"),
		Dir:     v.Get("dir"),
	}
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *QueryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Text) > maxQueryFieldLength || len(r.Reason) > maxQueryFieldLength {
		return dErrors.New(dErrors.CodeValidation, "text and reason must be at most 256 characters")
	}

	removed, err := denylist.ParseRemovedState(r.Removed)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "removed must be all, true or false")
	}
	key, err := denylist.ParseSortKey(r.Sort)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "sort must be pan, removed or reasons")
	}
	dir, err := denylist.ParseDirection(r.Dir)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "dir must be asc or desc")
	}

	r.params = denylist.QueryParams{
		Criteria: denylist.Criteria{
			Text:    strings.TrimSpace(r.Text),
			Removed: removed,
			Reason:  strings.TrimSpace(r.Reason),
		},
		Key:       key,
		Direction: dir,
	}
	return nil
}

// Params returns the validated query.
func (r *QueryRequest) Params() denylist.QueryParams {
	return r.params
}
