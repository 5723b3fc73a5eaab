package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mat-analysis/internal/parser"
	"github.com/mat-analysis/internal/resolver"
	"github.com/mat-analysis/pkg/compression"
	apperrors "github.com/mat-analysis/pkg/errors"
	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/telemetry"
	"github.com/mat-analysis/pkg/utils"
)

// Load reads the result file at path and publishes it as the current
// snapshot. It reports exactly one outcome and never retries. On failure the
// previous snapshot stays current.
func (s *Service) Load(ctx context.Context, path string) *model.LoadResult {
	return s.load(ctx, path, func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.CodeLoadFailure, err, "failed to open %s", path)
		}
		return f, nil
	})
}

// LoadAsync runs Load in a goroutine. The channel receives the outcome and
// is then closed.
func (s *Service) LoadAsync(ctx context.Context, path string) <-chan *model.LoadResult {
	out := make(chan *model.LoadResult, 1)
	go func() {
		defer close(out)
		out <- s.Load(ctx, path)
	}()
	return out
}

// LoadFromStorage downloads key from object storage and loads it.
func (s *Service) LoadFromStorage(ctx context.Context, key string) *model.LoadResult {
	return s.load(ctx, key, func() (io.ReadCloser, error) {
		if s.storage == nil {
			return nil, apperrors.New(apperrors.CodeLoadFailure, "storage is not configured")
		}
		rc, err := s.storage.Download(ctx, key)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.CodeLoadFailure, err, "failed to download %s", key)
		}
		return rc, nil
	})
}

// LoadReader loads a result file from r. name selects the parser by
// extension and is recorded as the source.
func (s *Service) LoadReader(ctx context.Context, name string, r io.Reader) *model.LoadResult {
	return s.load(ctx, name, func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	})
}

func (s *Service) load(ctx context.Context, source string, open func() (io.ReadCloser, error)) *model.LoadResult {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := s.clock.Now()
	loadID := s.newID()
	logger := s.logger.WithFields(map[string]interface{}{
		"load_id": loadID,
		"source":  source,
	})

	ctx, span := telemetry.StartSpan(ctx, "load",
		attribute.String("load.id", loadID),
		attribute.String("load.source", source),
	)

	result := &model.LoadResult{LoadID: loadID, Source: source}
	snap, report, err := s.run(ctx, source, open, logger)
	telemetry.Finish(span, err)
	result.Duration = s.clock.Since(start)

	if err != nil {
		result.Message = failureMessage(err)
		logger.Error("load failed: %v", err)
	} else {
		snap.LoadID = loadID
		snap.Source = source
		snap.LoadedAt = start
		s.current.Store(snap)

		result.Success = true
		result.VariableCount = report.Decoded
		result.ResolvedCount = report.Resolved
		result.TimePoints = len(snap.Table.Time)
		result.Message = fmt.Sprintf("loaded %d variables", report.Decoded)
		logger.Info("loaded %d variables, %d resolved, %d time points in %v",
			result.VariableCount, result.ResolvedCount, result.TimePoints, result.Duration)
	}

	s.record(ctx, result, logger)
	return result
}

// run executes the pipeline and builds an unpublished snapshot.
func (s *Service) run(ctx context.Context, source string, open func() (io.ReadCloser, error), logger utils.Logger) (*Snapshot, *resolver.Report, error) {
	timer := utils.NewTimer("load", utils.WithLogger(logger), utils.WithClock(s.clock))
	defer timer.PrintSummary()

	p, err := s.parserFor(source)
	if err != nil {
		return nil, nil, apperrors.Wrapf(apperrors.CodeLoadFailure, err, "no parser for %s", source)
	}

	rc, err := open()
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	phase := timer.Start("parse")
	pctx, span := telemetry.StartSpan(ctx, "parse", attribute.String("parser", p.Name()))
	raw, err := s.parse(pctx, p, rc)
	telemetry.Finish(span, err)
	phase.Stop()
	if err != nil {
		return nil, nil, apperrors.Wrapf(apperrors.CodeLoadFailure, err, "failed to read %s", source)
	}

	grid := raw.NameGrid()
	if grid == nil {
		err := fmt.Errorf("%w: %s", parser.ErrMissingField, model.FieldName)
		return nil, nil, apperrors.Wrapf(apperrors.CodeLoadFailure, err, "failed to read %s", source)
	}

	phase = timer.Start("decode")
	_, span = telemetry.StartSpan(ctx, "decode")
	names := resolver.DecodeNames(grid)
	span.SetAttributes(attribute.Int("names", len(names)))
	telemetry.Finish(span, nil)
	phase.Stop()

	phase = timer.Start("resolve")
	_, span = telemetry.StartSpan(ctx, "resolve")
	table, report := resolver.ResolveWithReport(names, raw.DataInfo(),
		raw.Block(model.BlockConstant), raw.Block(model.BlockSeries))
	span.SetAttributes(
		attribute.Int("resolved", report.Resolved),
		attribute.Int("gaps", len(report.Gaps)),
	)
	telemetry.Finish(span, nil)
	phase.Stop()

	for _, g := range report.Gaps {
		logger.Debug("unresolved %q at index %d: %s", g.Name, g.Index, g.Gap)
	}

	phase = timer.Start("classify")
	visible := table.VisibleNames()
	snap := &Snapshot{
		Table:      table,
		Names:      visible,
		Categories: s.classifier.Classify(visible),
	}
	phase.Stop()

	return snap, report, nil
}

func (s *Service) parserFor(source string) (parser.Parser, error) {
	if parser.FormatOf(source) == "" {
		if p, ok := s.parsers.Get(DefaultFormat); ok {
			return p, nil
		}
	}
	return s.parsers.ForPath(source)
}

func (s *Service) parse(ctx context.Context, p parser.Parser, r io.Reader) (*model.RawResultFile, error) {
	dr, _, err := compression.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dr.Close()
	return p.Parse(ctx, dr)
}

func (s *Service) record(ctx context.Context, result *model.LoadResult, logger utils.Logger) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveLoad(ctx, model.RecordFromResult(result, s.clock.Now())); err != nil {
		logger.Warn("failed to record load history: %v", err)
	}
}

// failureMessage drops the error code so the message reads as plain text.
func failureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		return appErr.Message
	}
	return err.Error()
}

// Fetch copies key from storage to localPath without loading it.
func (s *Service) Fetch(ctx context.Context, key, localPath string) error {
	if s.storage == nil {
		return apperrors.New(apperrors.CodeStorageError, "storage is not configured")
	}
	if err := s.storage.DownloadFile(ctx, key, localPath); err != nil {
		return apperrors.Wrapf(apperrors.CodeStorageError, err, "failed to fetch %s", key)
	}
	s.logger.Info("fetched %s to %s", key, localPath)
	return nil
}
