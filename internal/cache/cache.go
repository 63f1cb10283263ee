// Package cache stores rendered general reports keyed by project and day.
// A project's entries are dropped together whenever one of its reports or
// its schedule changes.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/report"
)

type ReportCache interface {
	// GetGeneral returns the cached view for the project on the given day.
	GetGeneral(ctx context.Context, projectID string, day time.Time) (*report.GeneralReportView, bool, error)
	SetGeneral(ctx context.Context, view *report.GeneralReportView, day time.Time) error
	Invalidate(ctx context.Context, projectID string) error
}

type Noop struct{}

func (Noop) GetGeneral(context.Context, string, time.Time) (*report.GeneralReportView, bool, error) {
	return nil, false, nil
}
func (Noop) SetGeneral(context.Context, *report.GeneralReportView, time.Time) error { return nil }
func (Noop) Invalidate(context.Context, string) error                               { return nil }

// Memory is a process-local ReportCache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]map[string]report.GeneralReportView
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]map[string]report.GeneralReportView)}
}

func (m *Memory) GetGeneral(_ context.Context, projectID string, day time.Time) (*report.GeneralReportView, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[projectID][domain.FormatDate(day)]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (m *Memory) SetGeneral(_ context.Context, view *report.GeneralReportView, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byDay, ok := m.entries[view.ProjectID]
	if !ok {
		byDay = make(map[string]report.GeneralReportView)
		m.entries[view.ProjectID] = byDay
	}
	byDay[domain.FormatDate(day)] = *view
	return nil
}

func (m *Memory) Invalidate(_ context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, projectID)
	return nil
}

var (
	_ ReportCache = Noop{}
	_ ReportCache = (*Memory)(nil)
	_ ReportCache = (*Redis)(nil)
)
