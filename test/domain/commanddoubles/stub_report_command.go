//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/sparkyb/github-report/internal/domain/commands"
)

// StubReportCommand is a stub implementation of commands.Report.
type StubReportCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastOpts         commands.ReportOptions
}

var _ commands.Report = (*StubReportCommand)(nil)

func (s *StubReportCommand) Execute(_ context.Context, opts commands.ReportOptions) error {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteErr
}
