package enums

// Outcome is the terminal state of one subscription within a digest run.
type Outcome string

const (
	OutcomeInvalid Outcome = ""

	// OutcomeSent means the digest was accepted by the mail relay.
	OutcomeSent Outcome = "sent"

	// OutcomeEmpty means the content API had no new items, so nothing was sent.
	OutcomeEmpty Outcome = "empty"

	// OutcomeMalformed means the subscription record itself could not be decoded.
	OutcomeMalformed Outcome = "malformed"

	OutcomeFetchFailed  Outcome = "fetch_failed"
	OutcomeRenderFailed Outcome = "render_failed"
	OutcomeSendFailed   Outcome = "send_failed"
)

// Outcomes lists every valid outcome in state machine order.
var Outcomes = []Outcome{
	OutcomeSent,
	OutcomeEmpty,
	OutcomeMalformed,
	OutcomeFetchFailed,
	OutcomeRenderFailed,
	OutcomeSendFailed,
}
