package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

func TestSeasonReportService_GetSeasonReport_Span(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	f := newReportFixture()
	id := uuid.New()
	f.seasons.On("FindByID", mock.Anything, id).Return(nil, shared.NewDomainError(shared.CodeNotFound, "season not found"))

	_, err := f.svc.GetSeasonReport(context.Background(), id)
	require.ErrorIs(t, err, shared.ErrNotFound)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "season_report.get", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "domain_error", spans[0].Events()[0].Name)
}
