package finance

import (
	"testing"

	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestEngine_ChangeHousing(t *testing.T) {
	t.Run("should charge the change fee on the next rent bill once", func(t *testing.T) {
		// given
		engine := newTestEngine(testState(), &utils.MockRandom{})

		// when
		ok := engine.ChangeHousing("oneBed")

		// then
		assert.True(t, ok)
		state := engine.State()
		assert.Equal(t, 62, state.QualityOfLife)
		assert.Equal(t, "Rent (1B1B)", obligationOf(t, engine, "T1").Title)
		assertMoney(t, 1000, obligationOf(t, engine, "T1").Amount)
		assertMoney(t, 200, state.Housing.Surcharge)

		engine.AdvanceRound()
		assertMoney(t, 1800, obligationOf(t, engine, "T1").Amount)
		assert.True(t, engine.State().Housing.Surcharge.IsZero())
		assert.Equal(t, "oneBed", engine.State().Housing.BaseKey)

		engine.AdvanceRound()
		assertMoney(t, 1600, obligationOf(t, engine, "T1").Amount)
	})

	t.Run("should make a change back within the same round free", func(t *testing.T) {
		// given
		engine := newTestEngine(testState(), &utils.MockRandom{})
		engine.ChangeHousing("oneBed")

		// when
		ok := engine.ChangeHousing("sharedApartment")

		// then
		assert.True(t, ok)
		state := engine.State()
		assert.True(t, state.Housing.Surcharge.IsZero())
		assertMoney(t, 1000, state.Housing.BaseRent)
		assert.Equal(t, 60, state.QualityOfLife)
	})

	t.Run("should charge a change back after a rollover", func(t *testing.T) {
		// given
		engine := newTestEngine(testState(), &utils.MockRandom{})
		engine.ChangeHousing("oneBed")
		engine.AdvanceRound()

		// when
		ok := engine.ChangeHousing("sharedApartment")

		// then
		assert.True(t, ok)
		assertMoney(t, 200, engine.State().Housing.Surcharge)
	})

	t.Run("should ignore unknown and unchanged housing", func(t *testing.T) {
		engine := newTestEngine(testState(), &utils.MockRandom{})
		before := engine.State()

		assert.False(t, engine.ChangeHousing("castle"))
		assert.False(t, engine.ChangeHousing("sharedApartment"))
		assert.Equal(t, before, engine.State())
	})

	t.Run("should floor quality of life at zero", func(t *testing.T) {
		state := testState()
		state.QualityOfLife = 1
		engine := newTestEngine(state, &utils.MockRandom{})

		engine.ChangeHousing("sharedRoom")

		assert.Equal(t, 0, engine.State().QualityOfLife)
	})
}
