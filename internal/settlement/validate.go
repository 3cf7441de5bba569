package settlement

import (
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/money"
)

// Drift is one participant's result from Validate.
type Drift struct {
	Participant models.Participant

	// FinalBalance is (spent + paid - received) / weight: what each person
	// behind the participant ends up having paid.
	FinalBalance money.Money

	// Diff is |FinalBalance - Expected|.
	Diff money.Money
}

// Validation is the outcome of checking a transfer list against the even split.
type Validation struct {
	TotalPeople int64

	// Expected is total spend / total people.
	Expected  money.Money
	Tolerance money.Money
	MaxDrift  money.Money
	Drifts    []Drift
}

// OK reports whether every participant is within tolerance.
func (v Validation) OK() bool {
	return v.MaxDrift.Cmp(v.Tolerance) <= 0
}

// Tolerance is the largest drift Validate accepts for a group of totalPeople:
// max(0.0005 × totalPeople, 0.01). It only has to absorb truncating division.
func Tolerance(totalPeople int64) money.Money {
	return money.Max(money.FromUnits(5*totalPeople), money.FromCents(1))
}

// Validate checks that settling transfers leaves every participant having paid
// the even share, within Tolerance. Drift equal to the tolerance is accepted.
// It returns an *InvariantViolation when any participant is beyond it.
// Validate is pure; calling it again on the same input gives the same result.
func Validate(participants []models.Participant, transfers []models.Transfer) (Validation, error) {
	v := Validation{TotalPeople: models.TotalWeight(participants)}
	if v.TotalPeople == 0 {
		return v, nil
	}
	v.Expected = models.TotalSpent(participants).Div(v.TotalPeople)
	v.Tolerance = Tolerance(v.TotalPeople)

	paid := make(map[string]money.Money)
	received := make(map[string]money.Money)
	for _, t := range transfers {
		paid[t.From.Identifier()] = paid[t.From.Identifier()].Add(t.Amount)
		received[t.To.Identifier()] = received[t.To.Identifier()].Add(t.Amount)
	}

	worst := -1
	violations := 0
	v.Drifts = make([]Drift, 0, len(participants))
	for _, p := range participants {
		id := p.Identifier()
		final := p.Spent().Add(paid[id]).Sub(received[id]).Div(p.Weight())
		d := Drift{
			Participant:  p,
			FinalBalance: final,
			Diff:         final.Sub(v.Expected).Abs(),
		}
		v.Drifts = append(v.Drifts, d)

		if d.Diff.Cmp(v.Tolerance) > 0 {
			violations++
		}
		if worst < 0 || d.Diff.Cmp(v.Drifts[worst].Diff) > 0 {
			worst = len(v.Drifts) - 1
		}
	}
	if worst >= 0 {
		v.MaxDrift = v.Drifts[worst].Diff
	}

	if !v.OK() {
		return v, &InvariantViolation{
			Participant: v.Drifts[worst].Participant.Identifier(),
			Drift:       v.MaxDrift,
			Tolerance:   v.Tolerance,
			Violations:  violations,
		}
	}
	return v, nil
}

// Validate checks the graph's current edges against participants.
func (g *Graph) Validate(participants []models.Participant) (Validation, error) {
	return Validate(participants, g.Transfers())
}
