package mock

import (
	"context"

	"github.com/fwojciec/storyscout"
)

var _ storyscout.ReportRenderer = (*ReportRenderer)(nil)

// ReportRenderer is a mock implementation of storyscout.ReportRenderer.
type ReportRenderer struct {
	RenderFn func(pitch *storyscout.Pitch, story *storyscout.Story) ([]byte, error)
}

func (r *ReportRenderer) Render(pitch *storyscout.Pitch, story *storyscout.Story) ([]byte, error) {
	return r.RenderFn(pitch, story)
}

var _ storyscout.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of storyscout.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, story *storyscout.Story, report []byte) (string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, story *storyscout.Story, report []byte) (string, error) {
	return w.WriteReportFn(ctx, story, report)
}
