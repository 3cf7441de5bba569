package models

import (
	"fmt"
	"strconv"

	"github.com/mmynk/splitsettle/internal/money"
)

// Kind tags the Participant variant.
type Kind int

const (
	// KindNamed is one identified person with an amount spent.
	KindNamed Kind = iota + 1
	// KindAnonymous is a group of people who spent nothing.
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindAnonymous:
		return "anonymous"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Participant is a tagged union of a named person and an anonymous group.
// Build one with Named or Anonymous; the zero value is invalid.
type Participant struct {
	kind Kind

	// Named
	name  string
	spent money.Money

	// Anonymous
	size int
}

// Named returns a participant for one person who spent the given amount.
func Named(name string, spent money.Money) Participant {
	return Participant{kind: KindNamed, name: name, spent: spent}
}

// Anonymous returns a participant standing for size people who spent nothing.
func Anonymous(size int) Participant {
	return Participant{kind: KindAnonymous, size: size}
}

// Kind reports which variant p is.
func (p Participant) Kind() Kind {
	return p.kind
}

// Identifier is the display name of p and its identity within a run.
func (p Participant) Identifier() string {
	switch p.kind {
	case KindNamed:
		return p.name
	case KindAnonymous:
		if p.size == 1 {
			return "Other person"
		}
		return fmt.Sprintf("Other %d people", p.size)
	default:
		panic(fmt.Sprintf("models: unknown participant kind %v", p.kind))
	}
}

// Spent is the amount p paid up front. Anonymous groups never pay.
func (p Participant) Spent() money.Money {
	switch p.kind {
	case KindNamed:
		return p.spent
	case KindAnonymous:
		return money.Zero
	default:
		panic(fmt.Sprintf("models: unknown participant kind %v", p.kind))
	}
}

// Weight is the number of people p stands for.
func (p Participant) Weight() int64 {
	switch p.kind {
	case KindNamed:
		return 1
	case KindAnonymous:
		return int64(p.size)
	default:
		panic(fmt.Sprintf("models: unknown participant kind %v", p.kind))
	}
}

func (p Participant) String() string {
	return p.Identifier()
}

// TotalWeight sums the weights of all participants.
func TotalWeight(participants []Participant) int64 {
	var n int64
	for _, p := range participants {
		n += p.Weight()
	}
	return n
}

// TotalSpent sums what all participants spent.
func TotalSpent(participants []Participant) money.Money {
	var total money.Money
	for _, p := range participants {
		total = total.Add(p.Spent())
	}
	return total
}

// ValidateParticipants checks the invariants a settlement run relies on:
// known kinds, non-empty names, non-negative spend, positive group sizes and
// unique identifiers.
func ValidateParticipants(participants []Participant) error {
	seen := make(map[string]bool, len(participants))
	for i, p := range participants {
		switch p.kind {
		case KindNamed:
			if p.name == "" {
				return NewInputError(fmt.Sprintf("participants[%d]", i), "name must not be empty")
			}
			if p.spent.IsNegative() {
				return NewInputError(p.name, fmt.Sprintf("amount spent must not be negative, got %s", p.spent))
			}
		case KindAnonymous:
			if p.size <= 0 {
				return NewInputError(fmt.Sprintf("participants[%d]", i), fmt.Sprintf("group size must be positive, got %d", p.size))
			}
		default:
			return NewInputError(fmt.Sprintf("participants[%d]", i), "unknown participant kind")
		}

		id := p.Identifier()
		if seen[id] {
			return NewInputError(id, "duplicate participant")
		}
		seen[id] = true
	}
	return nil
}
