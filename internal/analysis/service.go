package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/logging"
	"github.com/muhammadolammi/cvmatch/internal/markdown"
)

// Result is one finished analysis.
type Result struct {
	ID       uuid.UUID       `json:"id"`
	Markdown string          `json:"markdown"`
	Nodes    []markdown.Node `json:"nodes"`
}

// Service runs a comparison and its side channels: archiving the uploads,
// recording status and publishing status updates. Side-channel failures are
// logged and never fail the analysis.
type Service struct {
	analyzer  Analyzer
	archiver  Archiver
	recorder  Recorder
	publisher Publisher

	retryAttempts int
	retryDelay    time.Duration
}

// Option configures a Service.
type Option func(*Service)

func WithArchiver(a Archiver) Option {
	return func(s *Service) {
		if a != nil {
			s.archiver = a
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithRetry sets how side-channel writes are retried.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		s.retryAttempts = attempts
		s.retryDelay = delay
	}
}

func NewService(analyzer Analyzer, opts ...Option) *Service {
	s := &Service{
		analyzer:      analyzer,
		archiver:      nopArchiver{},
		recorder:      nopRecorder{},
		publisher:     nopPublisher{},
		retryAttempts: 3,
		retryDelay:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compare analyzes the pair. Both documents must be present; otherwise it
// returns ErrMissingDocuments without calling the model. The model is called
// exactly once and any failure is wrapped in ErrAnalysisFailed.
func (s *Service) Compare(ctx context.Context, jd, cv *documents.Document) (*Result, error) {
	if jd == nil || cv == nil {
		return nil, ErrMissingDocuments
	}

	id := uuid.New()
	logger := logging.FromContext(ctx).With("analysis_id", id)
	ctx = logging.WithLogger(ctx, logger)

	s.record(ctx, "create analysis", func(ctx context.Context) error {
		return s.recorder.CreateAnalysis(ctx, id, StatusProcessing)
	})
	s.publish(ctx, id, StatusProcessing, "analysis started")

	for _, doc := range []*documents.Document{jd, cv} {
		key, err := retry(ctx, s.retryAttempts, s.retryDelay, func() (string, error) {
			return s.archiver.Archive(ctx, id, doc)
		})
		if err != nil {
			logger.Warn("failed to archive document", "role", doc.Role, "name", doc.Name, "err", err)
		}
		s.record(ctx, "record document", func(ctx context.Context) error {
			return s.recorder.AddDocument(ctx, id, doc, key)
		})
	}

	logger.Info("analysis started", "jd", jd.Name, "cv", cv.Name)
	started := time.Now()

	output, err := s.analyzer.Analyze(ctx, jd, cv)
	if err == nil {
		output = CleanMarkdown(output)
		if strings.TrimSpace(output) == "" {
			err = errEmptyResponse
		}
	}
	if err != nil {
		logger.Error("analysis failed", "err", err, "elapsed", time.Since(started))
		s.record(ctx, "set status", func(ctx context.Context) error {
			return s.recorder.SetStatus(ctx, id, StatusFailed)
		})
		s.publish(ctx, id, StatusFailed, "analysis failed")
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	logger.Info("analysis completed", "elapsed", time.Since(started))
	s.record(ctx, "set status", func(ctx context.Context) error {
		return s.recorder.SetStatus(ctx, id, StatusCompleted)
	})
	s.publish(ctx, id, StatusCompleted, "analysis completed")

	return &Result{
		ID:       id,
		Markdown: output,
		Nodes:    markdown.Render(output),
	}, nil
}

func (s *Service) record(ctx context.Context, what string, fn func(context.Context) error) {
	// The audit trail must outlive a cancelled request.
	ctx = context.WithoutCancel(ctx)
	_, err := retry(ctx, s.retryAttempts, s.retryDelay, func() (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	if err != nil {
		logging.FromContext(ctx).Warn("failed to "+what, "err", err)
	}
}

func (s *Service) publish(ctx context.Context, id uuid.UUID, status, message string) {
	if err := s.publisher.PublishStatus(ctx, id, status, message); err != nil {
		logging.FromContext(ctx).Warn("failed to publish update", "status", status, "err", err)
	}
}
