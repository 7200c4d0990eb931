package handlers

import (
	"context"
	"net/http"

	"github.com/kova98/newsdigest/digest"
	"github.com/kova98/newsdigest/enums"
)

type Trigger interface {
	TryRun(ctx context.Context) (digest.Report, bool)
}

type RunHandler struct {
	trigger Trigger
}

func NewRunHandler(trigger Trigger) *RunHandler {
	return &RunHandler{trigger}
}

type runResponse struct {
	RunID      string                `json:"run_id"`
	Aborted    bool                  `json:"aborted"`
	Error      string                `json:"error,omitempty"`
	Outcomes   map[enums.Outcome]int `json:"outcomes"`
	Items      int                   `json:"items"`
	DurationMs int64                 `json:"duration_ms"`
}

// TriggerRun runs a digest pass synchronously and reports its outcome counts.
// The run outlives a client disconnect so no subscription is left half done.
func (h *RunHandler) TriggerRun(w http.ResponseWriter, r *http.Request) Result {
	report, ran := h.trigger.TryRun(context.WithoutCancel(r.Context()))
	if !ran {
		return Conflict("A digest run is already in progress.")
	}

	res := runResponse{
		RunID:      report.RunID,
		Aborted:    report.Aborted,
		Outcomes:   report.Counts(),
		Items:      report.Items(),
		DurationMs: report.Duration().Milliseconds(),
	}
	if report.Err != nil {
		res.Error = report.Err.Error()
	}

	return Ok(res)
}
