package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/finance-kanban/internal/event_bus"
	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/klokku/finance-kanban/pkg/scenario"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)

type published struct {
	created  []event_bus.GameCreated
	settled  []event_bus.RoundSettled
	housing  []event_bus.HousingChanged
	gameOver []event_bus.GameOver
}

func setupServiceTest(t *testing.T) (*ServiceImpl, *published) {
	builder, err := scenario.NewBuilder(scenario.NewDefaultCatalog(), finance.DefaultRules())
	require.NoError(t, err)
	bus := event_bus.NewEventBus()
	events := &published{}
	event_bus.SubscribeTyped(bus, event_bus.GameCreatedType, func(e event_bus.EventT[event_bus.GameCreated]) error {
		events.created = append(events.created, e.Data)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.RoundSettledType, func(e event_bus.EventT[event_bus.RoundSettled]) error {
		events.settled = append(events.settled, e.Data)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.HousingChangedType, func(e event_bus.EventT[event_bus.HousingChanged]) error {
		events.housing = append(events.housing, e.Data)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.GameOverType, func(e event_bus.EventT[event_bus.GameOver]) error {
		events.gameOver = append(events.gameOver, e.Data)
		return nil
	})
	clock := &utils.MockClock{FixedNow: now}
	defaults := NewGame{Difficulty: scenario.DefaultDifficulty, Housing: scenario.DefaultHousing}
	return NewService(NewRepository(), builder, bus, clock, defaults, 42), events
}

func createGame(t *testing.T, service *ServiceImpl, request NewGame) context.Context {
	snapshot, err := service.CreateGame(context.Background(), request)
	require.NoError(t, err)
	return WithId(context.Background(), snapshot.GameId)
}

func obligationIn(t *testing.T, s Snapshot, id string) finance.Obligation {
	o, ok := s.State.Obligation(id)
	require.True(t, ok, "obligation %s not found", id)
	return o
}

func TestCreateGame(t *testing.T) {

	t.Run("empty request uses configured defaults", func(t *testing.T) {
		service, events := setupServiceTest(t)

		snapshot, err := service.CreateGame(context.Background(), NewGame{})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, snapshot.GameId)
		assert.Equal(t, uint64(42), snapshot.Seed)
		assert.Equal(t, now, snapshot.CreatedAt)
		assert.Equal(t, "medium", snapshot.Scenario.DifficultyKey)
		assert.Equal(t, "sharedApartment", snapshot.Scenario.HousingKey)
		assert.True(t, decimal.NewFromInt(2160).Equal(snapshot.State.CashOnHand))
		assert.Equal(t, 60, snapshot.State.QualityOfLife)
		assert.Nil(t, snapshot.LastRound)
		require.Len(t, events.created, 1)
		assert.Equal(t, snapshot.GameId, events.created[0].GameId)
	})

	t.Run("explicit seed and choices are kept", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		seed := uint64(7)

		snapshot, err := service.CreateGame(context.Background(), NewGame{Difficulty: "hard", Housing: "luxury", Seed: &seed})

		require.NoError(t, err)
		assert.Equal(t, uint64(7), snapshot.Seed)
		assert.Equal(t, "hard", snapshot.Scenario.DifficultyKey)
		rent := obligationIn(t, snapshot, "T1")
		assert.True(t, decimal.NewFromInt(2200).Equal(rent.Amount))
		assert.Equal(t, "Rent (Luxury Loft)", rent.Title)
	})

	t.Run("unknown keys fall back to defaults", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		snapshot, err := service.CreateGame(context.Background(), NewGame{Difficulty: "insane", Housing: "castle"})

		require.NoError(t, err)
		assert.Equal(t, "medium", snapshot.Scenario.DifficultyKey)
		assert.Equal(t, "sharedApartment", snapshot.Scenario.HousingKey)
	})

	t.Run("games are independent", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		first := createGame(t, service, NewGame{})
		second := createGame(t, service, NewGame{})

		_, applied, err := service.AssignPayment(first, finance.Cash, decimal.NewFromInt(1000), "T1")
		require.NoError(t, err)
		require.True(t, applied)

		other, err := service.GetGame(second)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2160).Equal(other.State.CashOnHand))
		assert.Equal(t, 2, service.repo.Count(context.Background()))
	})
}

func TestGetGame(t *testing.T) {

	t.Run("no game in context", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		_, err := service.GetGame(context.Background())

		assert.ErrorIs(t, err, ErrNoGame)
	})

	t.Run("unknown game", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		_, err := service.GetGame(WithId(context.Background(), uuid.New()))

		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestDeleteGame(t *testing.T) {
	service, _ := setupServiceTest(t)
	ctx := createGame(t, service, NewGame{})

	deleted, err := service.DeleteGame(ctx)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = service.GetGame(ctx)
	assert.ErrorIs(t, err, ErrGameNotFound)

	deleted, err = service.DeleteGame(ctx)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAssignAndUnassignPayment(t *testing.T) {

	t.Run("cash payment moves cash to the obligation", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		snapshot, applied, err := service.AssignPayment(ctx, finance.Cash, decimal.NewFromInt(1000), "T1")

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, decimal.NewFromInt(1160).Equal(snapshot.State.CashOnHand))
		assert.True(t, obligationIn(t, snapshot, "T1").Satisfied())
	})

	t.Run("rejected payment leaves the game unchanged", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		snapshot, applied, err := service.AssignPayment(ctx, finance.Cash, decimal.NewFromInt(5000), "T1")

		require.NoError(t, err)
		assert.False(t, applied)
		assert.True(t, decimal.NewFromInt(2160).Equal(snapshot.State.CashOnHand))
		assert.Empty(t, obligationIn(t, snapshot, "T1").Payments)
	})

	t.Run("credit payment draws on the credit line", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		snapshot, applied, err := service.AssignPayment(ctx, finance.Credit, decimal.NewFromInt(500), "T3")

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, decimal.NewFromInt(300).Equal(snapshot.State.CreditUsed))
		assert.True(t, decimal.NewFromInt(2160).Equal(snapshot.State.CashOnHand))
	})

	t.Run("removing a payment refunds it", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})
		snapshot, _, err := service.AssignPayment(ctx, finance.Cash, decimal.NewFromInt(300), "T3")
		require.NoError(t, err)
		paymentId := obligationIn(t, snapshot, "T3").Payments[0].Id

		snapshot, applied, err := service.UnassignPayment(ctx, paymentId, "T3")

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, decimal.NewFromInt(2160).Equal(snapshot.State.CashOnHand))
		assert.Empty(t, obligationIn(t, snapshot, "T3").Payments)
	})

	t.Run("removing an unknown payment is rejected", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		_, applied, err := service.UnassignPayment(ctx, uuid.New(), "T3")

		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestChangeHousing(t *testing.T) {

	t.Run("move publishes an event", func(t *testing.T) {
		service, events := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		snapshot, applied, err := service.ChangeHousing(ctx, "oneBed")

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, 62, snapshot.State.QualityOfLife)
		assert.Equal(t, "Rent (1B1B)", obligationIn(t, snapshot, "T1").Title)
		require.Len(t, events.housing, 1)
		assert.Equal(t, 0, events.housing[0].Round)
		assert.Equal(t, "oneBed", events.housing[0].HousingKey)
		assert.Equal(t, "200", events.housing[0].Surcharge)
	})

	t.Run("rejected move publishes nothing", func(t *testing.T) {
		service, events := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		_, applied, err := service.ChangeHousing(ctx, "sharedApartment")

		require.NoError(t, err)
		assert.False(t, applied)
		assert.Empty(t, events.housing)
	})
}

func TestSavingsAndDebt(t *testing.T) {

	t.Run("withdraw without amount empties the account", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})
		_, _, err := service.AssignPayment(ctx, finance.Cash, decimal.NewFromInt(100), "S1")
		require.NoError(t, err)

		snapshot, applied, err := service.WithdrawSavings(ctx, "S1", nil)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, snapshot.State.SavingsBalance.IsZero())
		assert.True(t, decimal.NewFromInt(2160).Equal(snapshot.State.CashOnHand))
	})

	t.Run("withdraw a partial amount", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})
		_, _, err := service.AssignPayment(ctx, finance.Cash, decimal.NewFromInt(100), "S1")
		require.NoError(t, err)
		amount := decimal.NewFromInt(40)

		snapshot, applied, err := service.WithdrawSavings(ctx, "S1", &amount)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, decimal.NewFromInt(60).Equal(snapshot.State.SavingsBalance))
		assert.True(t, decimal.NewFromInt(2100).Equal(snapshot.State.CashOnHand))
	})

	t.Run("borrow adds one chunk to debt and cash", func(t *testing.T) {
		service, _ := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		snapshot, applied, err := service.BorrowDebt(ctx, "D1")

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, decimal.NewFromInt(450).Equal(snapshot.State.DebtBalance))
		assert.True(t, decimal.NewFromInt(2360).Equal(snapshot.State.CashOnHand))
	})
}

func TestAdvanceRound(t *testing.T) {

	t.Run("settles the round and publishes the summary", func(t *testing.T) {
		service, events := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{})

		snapshot, summary, err := service.AdvanceRound(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.Round)
		assert.Equal(t, 1, snapshot.State.RoundIndex)
		require.NotNil(t, snapshot.LastRound)
		assert.Equal(t, summary, *snapshot.LastRound)
		require.Len(t, events.settled, 1)
		assert.Equal(t, snapshot.GameId, events.settled[0].GameId)
	})

	t.Run("cancelled request still publishes the settled round", func(t *testing.T) {
		service, events := setupServiceTest(t)
		gameCtx := createGame(t, service, NewGame{})
		ctx, cancel := context.WithCancel(gameCtx)
		cancel()

		snapshot, summary, err := service.AdvanceRound(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.State.RoundIndex)
		require.Len(t, events.settled, 1)
		assert.Equal(t, summary.Round, events.settled[0].Summary.Round)
	})

	t.Run("concurrent advances publish rounds in order", func(t *testing.T) {
		service, events := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{Difficulty: "easy"})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := service.AdvanceRound(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		require.Len(t, events.settled, 8)
		for i, e := range events.settled {
			assert.Equal(t, i, e.Summary.Round)
		}
	})

	t.Run("no game in context", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		_, _, err := service.AdvanceRound(context.Background())

		assert.ErrorIs(t, err, ErrNoGame)
	})

	t.Run("neglected game ends with a game over event", func(t *testing.T) {
		service, events := setupServiceTest(t)
		ctx := createGame(t, service, NewGame{Difficulty: "hard", Housing: "sharedRoom"})

		var last finance.RoundSummary
		for i := 0; i < 20 && !last.Defeated(); i++ {
			_, summary, err := service.AdvanceRound(ctx)
			require.NoError(t, err)
			last = summary
		}

		assert.True(t, last.Defeated())
		require.Len(t, events.gameOver, 1)
		assert.Equal(t, last.Round, events.gameOver[0].Round)
	})
}
