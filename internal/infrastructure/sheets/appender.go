package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"nutrition-bot/internal/config"
)

const valueInputRaw = "RAW"

// Appender appends rows to a Google Sheets spreadsheet using a service
// account. The API client is built on first use.
type Appender struct {
	sheetID   string
	cellRange string
	opts      []option.ClientOption
	log       zerolog.Logger
	tracer    trace.Tracer

	once    sync.Once
	svc     *gsheets.Service
	initErr error
}

// NewAppender builds an appender from cfg. When opts is empty the client
// authenticates with the service account JSON from cfg; callers may pass
// their own options instead.
func NewAppender(cfg *config.Config, log zerolog.Logger, opts ...option.ClientOption) *Appender {
	a := &Appender{
		log:    log.With().Str("component", "sheets").Logger(),
		tracer: otel.Tracer("nutrition-bot/sheets"),
	}
	if !cfg.SheetsConfigured() {
		return a
	}

	a.sheetID = cfg.SheetID
	a.cellRange = cfg.SheetRange
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsJSON([]byte(cfg.GoogleServiceAccountJSON)),
			option.WithScopes(gsheets.SpreadsheetsScope),
		}
	}
	a.opts = opts
	return a
}

func (a *Appender) Configured() bool {
	return a.sheetID != ""
}

func (a *Appender) client(ctx context.Context) (*gsheets.Service, error) {
	a.once.Do(func() {
		a.svc, a.initErr = gsheets.NewService(context.WithoutCancel(ctx), a.opts...)
		if a.initErr != nil {
			a.log.Error().Err(a.initErr).Msg("failed to create sheets client")
		}
	})
	return a.svc, a.initErr
}

// Append writes row after the last row of the configured range.
func (a *Appender) Append(ctx context.Context, row []any) error {
	if !a.Configured() {
		return fmt.Errorf("sheets appender is not configured")
	}

	ctx, span := a.tracer.Start(ctx, "sheets.append", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("sheets.range", a.cellRange))

	svc, err := a.client(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "client init failed")
		return fmt.Errorf("create sheets client: %w", err)
	}

	values := &gsheets.ValueRange{Values: [][]interface{}{row}}
	resp, err := svc.Spreadsheets.Values.Append(a.sheetID, a.cellRange, values).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		return fmt.Errorf("append row: %w", err)
	}

	if resp.Updates != nil {
		a.log.Debug().
			Str("updated_range", resp.Updates.UpdatedRange).
			Int64("updated_cells", resp.Updates.UpdatedCells).
			Msg("row appended")
	}
	return nil
}
