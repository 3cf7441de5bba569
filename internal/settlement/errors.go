package settlement

import (
	"errors"
	"fmt"

	"github.com/mmynk/splitsettle/internal/money"
)

// ErrInvariantViolated is the sentinel for a settlement that is not
// financially equivalent to the naive debts. It always indicates a bug in the
// optimizer, never bad input.
var ErrInvariantViolated = errors.New("settlement invariant violated")

// InvariantViolation reports the participant whose balance drifted furthest
// beyond tolerance.
type InvariantViolation struct {
	Participant string
	Drift       money.Money
	Tolerance   money.Money
	Violations  int
}

func (e *InvariantViolation) Error() string {
	if e == nil {
		return ErrInvariantViolated.Error()
	}
	return fmt.Sprintf("%s: %d participant(s) beyond tolerance %s, worst %q drifted %s",
		ErrInvariantViolated, e.Violations, e.Tolerance.StringFixed(4), e.Participant, e.Drift.StringFixed(4))
}

// Unwrap returns ErrInvariantViolated for errors.Is.
func (e *InvariantViolation) Unwrap() error {
	return ErrInvariantViolated
}
