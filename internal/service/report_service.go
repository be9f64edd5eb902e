package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-records/internal/report"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
	"github.com/noah-isme/school-records/pkg/export"
)

type schoolViewer interface {
	View(fn func(src report.Source, version uint64))
	Version() uint64
}

// reportTextKey names the text rendering of one version of the records, so a
// rendering stored after a later change can never be served for it.
func reportTextKey(version uint64) string {
	return ReportCachePrefix + "text:" + strconv.FormatUint(version, 10)
}

type reportCache interface {
	Fetch(ctx context.Context, key string, dest interface{}) (bool, error)
	Store(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportService renders the school report. Text renderings are cached until
// the next change to the records.
type ReportService struct {
	school   schoolViewer
	cache    reportCache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs a ReportService. cache may be nil.
func NewReportService(school schoolViewer, cache reportCache, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{school: school, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// Text returns the formatted report and whether it came from cache.
func (s *ReportService) Text(ctx context.Context) (string, bool, error) {
	if s.cache != nil {
		var cached string
		hit, err := s.cache.Fetch(ctx, reportTextKey(s.school.Version()), &cached)
		if err != nil {
			s.logger.Warn("report cache lookup failed, rendering", zap.Error(err))
		}
		if hit {
			return cached, true, nil
		}
	}

	var (
		text    string
		version uint64
	)
	s.school.View(func(src report.Source, v uint64) {
		text, version = report.Render(src), v
	})

	if s.cache != nil {
		if err := s.cache.Store(ctx, reportTextKey(version), text, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache report", zap.Error(err))
		}
	}
	return text, false, nil
}

// Export renders the report as a csv or pdf file with one row per enrollment.
func (s *ReportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}

	generatedAt := s.now().UTC()
	var data export.Dataset
	s.school.View(func(src report.Source, _ uint64) {
		data = report.Table(src, fmt.Sprintf("School Report %s", generatedAt.Format(time.RFC3339)))
	})

	content, err := exporter.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.logger.Info("school report exported",
		zap.String("format", exporter.Extension()),
		zap.Int("rows", len(data.Rows)),
		zap.Int("bytes", len(content)),
	)
	return &ExportFile{
		Filename:    fmt.Sprintf("school-report-%s.%s", generatedAt.Format("20060102-150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}
