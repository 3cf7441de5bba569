// Package input turns command line style "name=amount" pairs into participants.
package input

import (
	"fmt"
	"strings"

	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/money"
)

// ParsePair parses one "name=amount" argument. The amount accepts either a
// dot or a comma as decimal separator.
func ParsePair(s string) (models.Participant, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return models.Participant{}, models.NewInputError(s, "expected format 'name=amount'")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, models.NewInputError(s, "name must not be empty")
	}

	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	amount, err := money.Parse(value)
	if err != nil {
		return models.Participant{}, models.NewInputError(name, fmt.Sprintf("cannot parse amount %q: %v", value, err))
	}
	if amount.IsNegative() {
		return models.Participant{}, models.NewInputError(name, fmt.Sprintf("amount must not be negative, got %s", value))
	}

	return models.Named(name, amount), nil
}

// ParsePairs parses every argument and checks the resulting participants.
func ParsePairs(args []string) ([]models.Participant, error) {
	participants := make([]models.Participant, 0, len(args))
	for _, arg := range args {
		p, err := ParsePair(arg)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if err := models.ValidateParticipants(participants); err != nil {
		return nil, err
	}
	return participants, nil
}
