package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/saransh1220/background-erase/internal/modules/removal/domain"
)

// Outcomes reported to the Recorder.
const (
	OutcomeSaved       = "saved"
	OutcomeCached      = "cached"
	OutcomeRemoteError = "remote_error"
	OutcomeInvalidPath = "invalid_path"
	OutcomeIOError     = "io_error"
	OutcomeNetwork     = "network_error"
)

// Recorder receives per-invocation measurements.
type Recorder interface {
	RecordOutcome(outcome string)
	RecordBytes(direction string, n int)
}

// Job is a single removal: where to read, where to write and an optional preview.
type Job struct {
	Source  string
	Dest    string
	Preview string
}

// RemovalService uploads one image and persists the cut-out.
type RemovalService struct {
	remover  domain.BackgroundRemover
	writer   domain.ResultWriter
	cache    domain.ResultCache
	cacheTTL time.Duration
	preview  domain.PreviewRenderer
	recorder Recorder
	logger   *slog.Logger
}

// Option customizes a RemovalService.
type Option func(*RemovalService)

// WithCache enables the result cache.
func WithCache(cache domain.ResultCache, ttl time.Duration) Option {
	return func(s *RemovalService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithPreview sets the renderer used when a Job asks for a preview.
func WithPreview(r domain.PreviewRenderer) Option {
	return func(s *RemovalService) { s.preview = r }
}

// WithRecorder reports outcomes and byte counts.
func WithRecorder(r Recorder) Option {
	return func(s *RemovalService) { s.recorder = r }
}

// NewRemovalService creates a new removal service
func NewRemovalService(remover domain.BackgroundRemover, writer domain.ResultWriter, logger *slog.Logger, opts ...Option) *RemovalService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &RemovalService{
		remover: remover,
		writer:  writer,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RemoveBackground uploads src and writes the returned image to dst.
func (s *RemovalService) RemoveBackground(ctx context.Context, src, dst string) (*domain.Result, error) {
	return s.Remove(ctx, Job{Source: src, Dest: dst})
}

// Remove runs a Job. A non-200 answer is returned as *domain.RemoteError and
// leaves the destination untouched.
func (s *RemovalService) Remove(ctx context.Context, job Job) (*domain.Result, error) {
	req, err := s.prepare(job)
	if err != nil {
		return nil, err
	}

	output, cached := s.lookup(ctx, req)
	if !cached {
		resp, err := s.remover.RemoveBackground(ctx, req)
		if err != nil {
			return nil, s.classify(err)
		}
		if !resp.OK() {
			s.record(OutcomeRemoteError)
			return nil, &domain.RemoteError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       decodeText(resp.Body),
			}
		}
		output = resp.Body
		s.store(ctx, req, output)
	}
	s.recordBytes("out", len(output))

	detected := mimetype.Detect(output)
	if want := domain.ContentTypeFor(job.Dest); want != domain.DefaultContentType && !detected.Is(want) {
		s.logger.Warn("destination extension does not match returned image",
			"dest", job.Dest,
			"extension_type", want,
			"returned_type", detected.String())
	}

	location, err := s.writer.Save(ctx, job.Dest, bytes.NewReader(output), detected.String())
	if err != nil {
		s.record(OutcomeIOError)
		return nil, fmt.Errorf("%w: save %s: %w", domain.ErrIO, job.Dest, err)
	}

	result := &domain.Result{
		Location:    location,
		Bytes:       int64(len(output)),
		ContentType: detected.String(),
		Cached:      cached,
	}

	if job.Preview != "" && s.preview != nil {
		if err := s.preview.Render(output, job.Preview); err != nil {
			s.logger.Warn("preview not written", "path", job.Preview, "error", err)
		} else {
			result.Preview = job.Preview
		}
	}

	if cached {
		s.record(OutcomeCached)
	} else {
		s.record(OutcomeSaved)
	}
	return result, nil
}

// prepare validates the paths and reads the source into a Request.
func (s *RemovalService) prepare(job Job) (*domain.Request, error) {
	name, err := domain.FileName(job.Source)
	if err != nil {
		s.record(OutcomeInvalidPath)
		return nil, err
	}
	if job.Dest == "" {
		s.record(OutcomeInvalidPath)
		return nil, fmt.Errorf("%w: empty destination", domain.ErrInvalidPath)
	}

	data, err := os.ReadFile(job.Source)
	if err != nil {
		s.record(OutcomeIOError)
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIO, job.Source, err)
	}
	s.recordBytes("in", len(data))

	return &domain.Request{
		SourcePath:  job.Source,
		FileName:    name,
		ContentType: domain.ContentTypeFor(name),
		Data:        data,
	}, nil
}

// classify records the outcome of a failed API call and makes sure the error
// carries one of the domain error kinds.
func (s *RemovalService) classify(err error) error {
	if errors.Is(err, domain.ErrNetwork) {
		s.record(OutcomeNetwork)
		return err
	}
	s.record(OutcomeIOError)
	if errors.Is(err, domain.ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrIO, err)
}

func (s *RemovalService) lookup(ctx context.Context, req *domain.Request) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	output, ok, err := s.cache.Get(ctx, req)
	if err != nil {
		s.logger.Warn("result cache unavailable", "error", err)
		return nil, false
	}
	if ok {
		s.logger.Debug("result cache hit", "source", req.SourcePath)
	}
	return output, ok
}

func (s *RemovalService) store(ctx context.Context, req *domain.Request, output []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, req, output, s.cacheTTL); err != nil {
		s.logger.Warn("result not cached", "error", err)
	}
}

func (s *RemovalService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordOutcome(outcome)
	}
}

func (s *RemovalService) recordBytes(direction string, n int) {
	if s.recorder != nil {
		s.recorder.RecordBytes(direction, n)
	}
}

// decodeText turns an error body into printable text. Invalid UTF-8 is
// replaced rather than rejected.
func decodeText(body []byte) string {
	return strings.ToValidUTF8(strings.TrimSpace(string(body)), "�")
}
