// Package calculator derives debts from what each participant spent.
package calculator

import (
	"github.com/mmynk/splitsettle/internal/models"
)

// BuildNaiveDebts computes the unoptimized "everyone owes everyone" transfer set.
//
// Algorithm:
//   - total_people = sum of participant weights (named = 1, anonymous = group size)
//   - For each creditor who spent something: share = spent / total_people
//   - Every other participant owes the creditor share × their weight
//
// Anonymous groups and zero spenders never act as creditors. Shares are
// truncated toward zero on the money grid; a share that truncates to zero
// produces no transfer. The result has one transfer per ordered
// (debtor, creditor) pair, in participant order.
func BuildNaiveDebts(participants []models.Participant) []models.Transfer {
	totalPeople := models.TotalWeight(participants)
	if totalPeople == 0 {
		return nil
	}

	var transfers []models.Transfer
	for ci, creditor := range participants {
		if creditor.Kind() != models.KindNamed || !creditor.Spent().IsPositive() {
			continue
		}

		share := creditor.Spent().Div(totalPeople)
		for di, debtor := range participants {
			if di == ci {
				continue
			}
			amount := share.Mul(debtor.Weight())
			if !amount.IsPositive() {
				continue
			}
			transfers = append(transfers, models.NewTransfer(debtor, creditor, amount))
		}
	}

	return transfers
}
