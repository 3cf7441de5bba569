package settlement

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitsettle/internal/calculator"
	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/money"
)

func settle(t *testing.T, participants []models.Participant) (*Graph, []models.Transfer) {
	t.Helper()
	naive := calculator.BuildNaiveDebts(participants)
	g, err := New(naive)
	require.NoError(t, err)
	g.Optimize()
	return g, naive
}

func TestOptimize_ZeroSpenderPaysTheNetCreditor(t *testing.T) {
	a := models.Named("A", money.MustParse("10"))
	b := models.Named("B", money.MustParse("20"))
	c := models.Named("C", money.Zero)
	participants := []models.Participant{a, b, c}

	g, naive := settle(t, participants)
	require.Len(t, naive, 4)

	// A spent exactly the even share of 10, so only C and B have a balance.
	transfers := g.Transfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, c, transfers[0].From)
	assert.Equal(t, b, transfers[0].To)
	assert.Equal(t, money.FromUnits(99999), transfers[0].Amount)
	assert.Equal(t, "10.00", transfers[0].Amount.String())

	// Isolated nodes are kept.
	assert.Equal(t, 3, g.NodeCount())

	v, err := g.Validate(participants)
	require.NoError(t, err)
	assert.True(t, v.OK())
}

func TestOptimize_AnonymousGroupPaysItsShare(t *testing.T) {
	a := models.Named("A", money.MustParse("10"))
	b := models.Named("B", money.MustParse("20"))
	anon := models.Anonymous(1)
	participants := []models.Participant{a, b, anon}

	g, _ := settle(t, participants)

	var paidByAnon money.Money
	for _, tr := range g.Transfers() {
		assert.NotEqual(t, models.KindAnonymous, tr.To.Kind(), "anonymous group must never receive")
		if tr.From == anon {
			paidByAnon = paidByAnon.Add(tr.Amount)
		}
	}
	assert.Equal(t, "10.00", paidByAnon.String())

	_, err := g.Validate(participants)
	require.NoError(t, err)
}

func TestOptimize_EqualSpendersSettleToNothing(t *testing.T) {
	for _, n := range []int{2, 3, 7, 12} {
		t.Run(fmt.Sprintf("%d people", n), func(t *testing.T) {
			participants := make([]models.Participant, n)
			for i := range participants {
				participants[i] = models.Named(fmt.Sprintf("P%02d", i), money.MustParse("17.39"))
			}

			g, naive := settle(t, participants)
			assert.Len(t, naive, n*(n-1))
			assert.Empty(t, g.Transfers())
			assert.Equal(t, n, g.NodeCount())
		})
	}
}

func TestOptimize_TwoPeopleIsANoOp(t *testing.T) {
	a := models.Named("A", money.MustParse("40"))
	b := models.Named("B", money.Zero)

	g, naive := settle(t, []models.Participant{a, b})
	require.Len(t, naive, 1)
	assert.Equal(t, naive, g.Transfers())
}

func TestOptimize_TieBreakByIdentifier(t *testing.T) {
	a := models.Named("A", money.MustParse("30"))
	b := models.Named("B", money.Zero)
	c := models.Named("C", money.Zero)
	d := models.Named("D", money.MustParse("30"))

	g, _ := settle(t, []models.Participant{a, b, c, d})

	want := []models.Transfer{
		models.NewTransfer(b, a, money.MustParse("15")),
		models.NewTransfer(c, d, money.MustParse("15")),
	}
	assert.ElementsMatch(t, want, g.Transfers())
}

func TestOptimize_PreservesBalancesOnRandomGroups(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		participants := randomParticipants(rng)

		naive := calculator.BuildNaiveDebts(participants)
		g, err := New(naive)
		require.NoError(t, err)

		before := make(map[string]money.Money)
		for _, p := range g.Participants() {
			before[p.Identifier()] = g.NetBalance(p)
		}
		nonZero := 0
		for _, b := range before {
			if !b.IsZero() {
				nonZero++
			}
		}

		g.Optimize()
		transfers := g.Transfers()

		for _, p := range g.Participants() {
			assert.Equal(t, before[p.Identifier()], g.NetBalance(p), "run %d: balance of %s changed", run, p)
		}
		assert.LessOrEqual(t, len(transfers), len(naive), "run %d", run)
		if nonZero > 0 {
			assert.Less(t, len(transfers), nonZero, "run %d", run)
		}

		var in, out money.Money
		for _, tr := range transfers {
			assert.NotEqual(t, tr.From.Identifier(), tr.To.Identifier())
			assert.True(t, tr.Amount.IsPositive())
			in = in.Add(tr.Amount)
			out = out.Sub(tr.Amount)
		}
		assert.True(t, in.Add(out).IsZero())

		v, err := g.Validate(participants)
		require.NoError(t, err, "run %d", run)
		assert.True(t, v.OK())
	}
}

func TestSimplifyBidirectional(t *testing.T) {
	tests := []struct {
		name     string
		forward  string
		backward string
		want     []models.Transfer
	}{
		{name: "forward heavier", forward: "10", backward: "7",
			want: []models.Transfer{models.NewTransfer(alice, bob, money.MustParse("3"))}},
		{name: "backward heavier", forward: "4", backward: "9",
			want: []models.Transfer{models.NewTransfer(bob, alice, money.MustParse("5"))}},
		{name: "equal cancels", forward: "6", backward: "6", want: []models.Transfer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New([]models.Transfer{
				models.NewTransfer(alice, bob, money.MustParse(tt.forward)),
				models.NewTransfer(bob, alice, money.MustParse(tt.backward)),
			})
			require.NoError(t, err)

			g.SimplifyBidirectional()
			assert.Equal(t, tt.want, g.Transfers())
			assert.Equal(t, 2, g.NodeCount())
		})
	}
}

func randomParticipants(rng *rand.Rand) []models.Participant {
	n := 1 + rng.Intn(15)
	participants := make([]models.Participant, 0, n+1)
	for i := 0; i < n; i++ {
		var spent money.Money
		if rng.Intn(3) > 0 {
			spent = money.FromCents(rng.Int63n(50000))
		}
		participants = append(participants, models.Named(fmt.Sprintf("P%02d", i), spent))
	}
	if rng.Intn(2) == 0 {
		participants = append(participants, models.Anonymous(1+rng.Intn(6)))
	}
	return participants
}

func TestLookupOptimizer(t *testing.T) {
	for _, name := range []string{"", OptimizerGreedy, OptimizerPairwise} {
		opt, err := LookupOptimizer(name)
		require.NoError(t, err, name)

		g, err := New(calculator.BuildNaiveDebts([]models.Participant{alice, bob, carol}))
		require.NoError(t, err)
		before := map[string]money.Money{}
		for _, p := range g.Participants() {
			before[p.Identifier()] = g.NetBalance(p)
		}

		opt(g)
		for _, p := range g.Participants() {
			assert.Equal(t, before[p.Identifier()], g.NetBalance(p), "%s: %s", name, p.Identifier())
		}
	}

	_, err := LookupOptimizer("magic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	assert.Contains(t, err.Error(), `"magic"`)
}
