package documents

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/muhammadolammi/cvmatch/internal/logging"
)

// Source is an upload that has not been read yet.
type Source struct {
	Name         string
	DeclaredType string
	Open         func() (io.ReadCloser, error)
}

// FileSource reads a document from disk. The type comes from the extension.
func FileSource(path string) *Source {
	return &Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// MultipartSource wraps a multipart form file.
func MultipartSource(fh *multipart.FileHeader) *Source {
	if fh == nil {
		return nil
	}
	return &Source{
		Name:         fh.Filename,
		DeclaredType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// ReadPair reads the job description and the CV concurrently and runs both
// through the policy. A nil source, or one the policy rejects, yields a nil
// document. Only I/O failures are returned as errors.
func (p Policy) ReadPair(ctx context.Context, jd, cv *Source) (*Document, *Document, error) {
	var jdDoc, cvDoc *Document

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := p.read(ctx, RoleJobDescription, jd)
		jdDoc = doc
		return err
	})
	g.Go(func() error {
		doc, err := p.read(ctx, RoleCV, cv)
		cvDoc = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return jdDoc, cvDoc, nil
}

func (p Policy) read(ctx context.Context, role Role, src *Source) (*Document, error) {
	if src == nil || src.Open == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", role.Label(), err)
	}
	defer rc.Close()

	// One extra byte tells an oversized file from one exactly at the limit.
	data, err := io.ReadAll(io.LimitReader(rc, int64(p.maxBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", role.Label(), err)
	}

	doc, err := p.Accept(role, src.Name, src.DeclaredType, data)
	if err != nil {
		logging.FromContext(ctx).Debug("document rejected", "role", role, "name", src.Name, "err", err)
		return nil, nil
	}
	return doc, nil
}
