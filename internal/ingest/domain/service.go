package domain

import (
	"context"
	"errors"
	"io"
)

type UploadRequest struct {
	Reader       io.Reader
	Filename     string
	SupervisorID string
	UploadMode   string
}

type Service interface {
	// Upload parses the spreadsheet, resolves employee identifiers in one
	// batched lookup and upserts every normalized row keyed by account id.
	// Partial success is the normal case; row-level problems surface in the
	// result counts, not as errors.
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
	// ListUploads returns the most recent upload manifests, newest first.
	ListUploads(ctx context.Context, limit int) ([]CaseUpload, error)
}

var (
	// ErrMalformedFile fails the whole upload before any row is processed.
	ErrMalformedFile = errors.New("malformed_file")
	ErrEmptyFile     = errors.New("empty_file")
)
