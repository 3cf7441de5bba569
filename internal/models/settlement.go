package models

import (
	"fmt"

	"github.com/mmynk/splitsettle/internal/money"
)

// Transfer is money owed by one participant to another.
type Transfer struct {
	// From is the participant who pays (the debtor).
	From Participant

	// To is the participant who receives (the creditor).
	To Participant

	// Amount is strictly positive for every transfer the engine emits.
	Amount money.Money
}

// NewTransfer creates a transfer of amount from one participant to another.
func NewTransfer(from, to Participant, amount money.Money) Transfer {
	return Transfer{From: from, To: to, Amount: amount}
}

func (t Transfer) String() string {
	return fmt.Sprintf("%s -> %s: %s", t.From.Identifier(), t.To.Identifier(), t.Amount)
}

// SumTransfers adds up the amounts of all transfers.
func SumTransfers(transfers []Transfer) money.Money {
	var total money.Money
	for _, t := range transfers {
		total = total.Add(t.Amount)
	}
	return total
}
