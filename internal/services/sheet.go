package services

import (
	"context"
	"log/slog"

	"github.com/msgsystec/backoffice/types"
)

// SheetSource is the read-only view of the external spreadsheet. The
// concrete implementation lives in internal/sheets.
type SheetSource interface {
	Read(ctx context.Context) (types.SheetData, error)
	Info(ctx context.Context) (types.SheetInfo, error)
	AuthURL() string
}

// SheetService exposes the spreadsheet mirror to the HTTP layer.
type SheetService struct {
	source SheetSource
	logger *slog.Logger
}

func NewSheetService(source SheetSource, logger *slog.Logger) *SheetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetService{source: source, logger: logger}
}

// Read fetches the current spreadsheet contents. There is no cache:
// every call goes to the upstream API, and failures surface as-is.
func (s *SheetService) Read(ctx context.Context) (types.SheetData, error) {
	data, err := s.source.Read(ctx)
	if err != nil {
		s.logger.Error("sheet read failed", slog.String("error", err.Error()))
		return types.SheetData{}, err
	}
	s.logger.Info("sheet read", slog.Int("rows", len(data.Data)))
	return data, nil
}

// Info returns spreadsheet metadata.
func (s *SheetService) Info(ctx context.Context) (types.SheetInfo, error) {
	info, err := s.source.Info(ctx)
	if err != nil {
		s.logger.Error("sheet info failed", slog.String("error", err.Error()))
		return types.SheetInfo{}, err
	}
	return info, nil
}

// AuthURL returns the OAuth2 consent URL for the spreadsheet scope.
func (s *SheetService) AuthURL() string {
	return s.source.AuthURL()
}
