package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nutrition-bot/internal/infrastructure/metrics"
	"nutrition-bot/internal/utils/platformerrors"
	"nutrition-bot/internal/utils/redact"
)

// Entry is one meal log line. Fields hold whatever JSON values the client
// sent and are written to the sheet as-is.
type Entry struct {
	Timestamp any `json:"timestamp"`
	UserID    any `json:"user_id"`
	Text      any `json:"text"`
	Totals    any `json:"totals"`
}

// Row returns the four cells appended for the entry: timestamp, user id,
// text and totals.kcal. A missing value yields an empty cell.
func (e Entry) Row() []any {
	var kcal any
	if totals, ok := e.Totals.(map[string]any); ok {
		kcal = totals["kcal"]
	}
	return []any{e.Timestamp, e.UserID, e.Text, kcal}
}

// Appender writes a row to the backing spreadsheet.
type Appender interface {
	// Configured reports whether the spreadsheet id and credentials are set.
	Configured() bool
	Append(ctx context.Context, row []any) error
}

// Service records meal entries.
type Service struct {
	appender Appender
	redactor *redact.Redactor
	log      zerolog.Logger
}

func NewService(appender Appender, redactor *redact.Redactor, log zerolog.Logger) *Service {
	if redactor == nil {
		redactor = redact.New(redact.LevelHashed, "")
	}
	return &Service{
		appender: appender,
		redactor: redactor,
		log:      log.With().Str("component", "ledger").Logger(),
	}
}

// AddEntry appends e as a single row. No network call is made when the
// appender is not configured.
func (s *Service) AddEntry(ctx context.Context, e Entry) error {
	if s.appender == nil || !s.appender.Configured() {
		metrics.RecordLedgerAppend("not_configured")
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotImplemented,
			"Google Sheets not configured", nil, "8e2d6b4a-1c3f-4f7e-a5d9-6b0e3c2a9f14")
	}

	start := time.Now()
	if err := s.appender.Append(ctx, e.Row()); err != nil {
		metrics.RecordLedgerAppend("error")
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"append to sheet failed", err, "f1a7c3e9-52b8-4d06-9e4a-7c8d1b2e3f50")
	}
	metrics.RecordLedgerAppend("ok")

	s.log.Debug().
		Str("request_id", platformerrors.RequestIDFromContext(ctx)).
		Str("user_id", s.redactor.ID(cellString(e.UserID))).
		Dur("duration", time.Since(start)).
		Msg("ledger entry appended")
	return nil
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
