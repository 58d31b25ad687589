package classifier

// Outcome tells whether a classification came from the backbone or from the
// fallback path.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeFallback
)

func (o Outcome) String() string {
	if o == OutcomeFallback {
		return "fallback"
	}
	return "ok"
}

// Result is either Ok(label) or Fallback(Unknown). Classify never returns
// an error; the fallback cause is carried for logging.
type Result struct {
	Label   Label
	Outcome Outcome
	// Channel is the winning backbone channel, -1 on fallback.
	Channel int
	Score   float64
	Cause   error
}

// Ok is a successful classification.
func Ok(label Label, channel int, score float64) Result {
	return Result{Label: label, Outcome: OutcomeOK, Channel: channel, Score: score}
}

// Fallback is the Unknown result with the reason it was produced.
func Fallback(cause error) Result {
	return Result{Label: Unknown, Outcome: OutcomeFallback, Channel: -1, Cause: cause}
}

// IsFallback reports whether the result came from the fallback path.
func (r Result) IsFallback() bool {
	return r.Outcome == OutcomeFallback
}
