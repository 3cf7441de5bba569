package calculator

import (
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/money"
)

// MemberBalance is the settlement outcome for one participant.
type MemberBalance struct {
	Participant    models.Participant
	Spent          money.Money
	TotalToPay     money.Money // Sum of transfers this participant pays
	TotalToReceive money.Money // Sum of transfers this participant receives
	NetBalance     money.Money // Positive = owed money, negative = owes money
}

// Summary aggregates a settlement for presentation.
type Summary struct {
	TotalSpent  money.Money
	TotalPeople int64

	// PerPerson is the even share, TotalSpent / TotalPeople, truncated.
	PerPerson money.Money
	Members   []MemberBalance
}

// Summarize computes totals and per-participant pay/receive amounts for a
// transfer list. Members are returned in participant order; participants that
// appear in no transfer get zero amounts.
func Summarize(participants []models.Participant, transfers []models.Transfer) Summary {
	summary := Summary{
		TotalSpent:  models.TotalSpent(participants),
		TotalPeople: models.TotalWeight(participants),
	}
	if summary.TotalPeople > 0 {
		summary.PerPerson = summary.TotalSpent.Div(summary.TotalPeople)
	}

	net := NetBalances(transfers)
	index := make(map[string]int, len(participants))
	summary.Members = make([]MemberBalance, len(participants))
	for i, p := range participants {
		index[p.Identifier()] = i
		summary.Members[i] = MemberBalance{
			Participant: p,
			Spent:       p.Spent(),
			NetBalance:  net[p.Identifier()],
		}
	}

	for _, t := range transfers {
		if i, ok := index[t.From.Identifier()]; ok {
			summary.Members[i].TotalToPay = summary.Members[i].TotalToPay.Add(t.Amount)
		}
		if i, ok := index[t.To.Identifier()]; ok {
			summary.Members[i].TotalToReceive = summary.Members[i].TotalToReceive.Add(t.Amount)
		}
	}

	return summary
}

// NetBalances computes, per participant identifier, incoming minus outgoing
// transfer amounts.
func NetBalances(transfers []models.Transfer) map[string]money.Money {
	balances := make(map[string]money.Money)
	for _, t := range transfers {
		balances[t.To.Identifier()] = balances[t.To.Identifier()].Add(t.Amount)
		balances[t.From.Identifier()] = balances[t.From.Identifier()].Sub(t.Amount)
	}
	return balances
}
