package service

import (
	"bytes"
	"context"
	"io"

	"github.com/mat-analysis/internal/export"
	apperrors "github.com/mat-analysis/pkg/errors"
)

// ExportColumns aligns the requested variables to the time axis. Variables
// whose length differs from it are listed in Omitted.
func (s *Service) ExportColumns(names []string) *export.Table {
	series, axis := s.ReadVariables(names)
	return export.Align(axis, names, series)
}

// Export writes the aligned table for names to w.
func (s *Service) Export(ctx context.Context, names []string, w io.Writer, opts export.Options) (*export.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Loaded() {
		return nil, apperrors.New(apperrors.CodeExportError, "no result file loaded")
	}

	enc, err := export.NewWriter(opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeExportError, "invalid export options", err)
	}

	table := s.ExportColumns(names)
	for _, name := range table.Omitted {
		s.logger.Debug("export: omitted %q, not aligned with time", name)
	}
	if err := enc.Write(table.Writer(), w); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeExportError, "failed to write table", err)
	}
	return table, nil
}

// ExportToStorage exports names and uploads the result under key. It
// returns the object URL.
func (s *Service) ExportToStorage(ctx context.Context, key string, names []string, opts export.Options) (*export.Table, string, error) {
	if s.storage == nil {
		return nil, "", apperrors.New(apperrors.CodeStorageError, "storage is not configured")
	}

	var buf bytes.Buffer
	table, err := s.Export(ctx, names, &buf, opts)
	if err != nil {
		return nil, "", err
	}
	if err := s.storage.Upload(ctx, key, &buf); err != nil {
		return nil, "", apperrors.Wrapf(apperrors.CodeStorageError, err, "failed to upload %s", key)
	}
	s.logger.Info("uploaded export %s (%d columns, %d rows)", key, len(table.Names), table.Rows())
	return table, s.storage.GetURL(key), nil
}
