package settlement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/money"
)

var (
	alice = models.Named("Alice", money.MustParse("10"))
	bob   = models.Named("Bob", money.MustParse("20"))
	carol = models.Named("Carol", money.Zero)
)

func TestNew_CoalescesSamePair(t *testing.T) {
	g, err := New([]models.Transfer{
		models.NewTransfer(carol, alice, money.MustParse("1.25")),
		models.NewTransfer(carol, bob, money.MustParse("4")),
		models.NewTransfer(carol, alice, money.MustParse("2.75")),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	assert.Equal(t, []models.Transfer{
		models.NewTransfer(carol, alice, money.MustParse("4")),
		models.NewTransfer(carol, bob, money.MustParse("4")),
	}, g.Transfers())
}

func TestNew_NodesInFirstAppearanceOrder(t *testing.T) {
	g, err := New([]models.Transfer{
		models.NewTransfer(bob, alice, money.MustParse("1")),
		models.NewTransfer(carol, bob, money.MustParse("1")),
	})
	require.NoError(t, err)

	assert.Equal(t, []models.Participant{bob, alice, carol}, g.Participants())
}

func TestNew_OppositeEdgesCoexist(t *testing.T) {
	g, err := New([]models.Transfer{
		models.NewTransfer(alice, bob, money.MustParse("10")),
		models.NewTransfer(bob, alice, money.MustParse("7")),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, money.MustParse("3"), g.NetBalance(bob))
	assert.Equal(t, money.MustParse("-3"), g.NetBalance(alice))
	assert.True(t, g.NetBalance(carol).IsZero())
}

func TestNew_RejectsInvalidTransfers(t *testing.T) {
	tests := []struct {
		name     string
		transfer models.Transfer
	}{
		{name: "self transfer", transfer: models.NewTransfer(alice, alice, money.MustParse("1"))},
		{name: "zero amount", transfer: models.NewTransfer(alice, bob, money.Zero)},
		{name: "negative amount", transfer: models.NewTransfer(alice, bob, money.MustParse("-1"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]models.Transfer{tt.transfer})
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))
		})
	}
}

func TestNew_Empty(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)
	assert.Zero(t, g.NodeCount())
	assert.Empty(t, g.Transfers())

	g.Optimize()
	assert.Empty(t, g.Transfers())
}

func TestTransfers_DeterministicOrder(t *testing.T) {
	g, err := New([]models.Transfer{
		models.NewTransfer(carol, bob, money.MustParse("2")),
		models.NewTransfer(alice, bob, money.MustParse("3")),
		models.NewTransfer(carol, alice, money.MustParse("1")),
	})
	require.NoError(t, err)

	// Arena: carol=0, bob=1, alice=2.
	want := []models.Transfer{
		models.NewTransfer(carol, bob, money.MustParse("2")),
		models.NewTransfer(carol, alice, money.MustParse("1")),
		models.NewTransfer(alice, bob, money.MustParse("3")),
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, want, g.Transfers())
	}
}
