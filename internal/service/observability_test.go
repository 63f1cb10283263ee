package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/cadence/internal/metrics"
)

func TestZapUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewZapUseCaseObserver(zap.New(core))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "submit-report", Success: true, Duration: 5 * time.Millisecond, Fields: map[string]any{"week": 3}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "submit-report", Err: errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "submit-report", entries[0].ContextMap()["use_case"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["week"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestUseCaseObserverFanOut(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New()
	obs := useCaseObserverOrNoop([]UseCaseObserver{nil, NewZapUseCaseObserver(zap.New(core)), NewMetricsUseCaseObserver(m)})

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "dashboard", Success: true})
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, 1, testutil.CollectAndCount(m.UseCaseDuration))

	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewZapUseCaseObserver(nil))
}

func TestServicesReportUseCases(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewReportService(e.projects, e.reports, e.uow, WithObservers(NewZapUseCaseObserver(zap.New(core))))

	_, err := svc.Submit(context.Background(), stranger, submitInput(s.project.ID, 1))
	require.Error(t, err)

	entries := logs.FilterField(zap.String("use_case", "submit-report")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()["success"])
}
