package digest

import (
	"time"

	"github.com/kova98/newsdigest/enums"
	"github.com/kova98/newsdigest/models"
)

// Result is the terminal state of one subscription in a run.
type Result struct {
	Subscription models.Subscription
	Outcome      enums.Outcome
	Items        int
	Err          error
}

// Report describes one pipeline run. Aborted is set when the subscription
// list could not be retrieved; Results is empty in that case.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Aborted    bool
	Err        error
	Results    []Result
}

func (r Report) Counts() map[enums.Outcome]int {
	counts := make(map[enums.Outcome]int, len(enums.Outcomes))
	for _, res := range r.Results {
		counts[res.Outcome]++
	}
	return counts
}

func (r Report) Items() int {
	total := 0
	for _, res := range r.Results {
		total += res.Items
	}
	return total
}

func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
