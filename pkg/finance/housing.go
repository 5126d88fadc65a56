package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ChangeHousing moves the player to another housing tier. The new rent and the
// change fee reach the rent obligation at the next rollover. Moving back to
// the housing the round started with undoes the change without a fee.
func (e *Engine) ChangeHousing(key string) bool {
	next, ok := e.housing.Housing(key)
	if !ok {
		log.Debugf("housing change rejected: unknown housing %q", key)
		return false
	}
	h := &e.state.Housing
	if key == h.CurrentKey {
		return false
	}
	current, ok := e.housing.Housing(h.CurrentKey)
	if !ok {
		log.Warnf("current housing %q missing from catalog", h.CurrentKey)
		return false
	}

	if key == h.BaseKey {
		h.Surcharge = decimal.Zero
	} else {
		h.Surcharge = e.rules.HousingChangeFee
	}
	h.BaseRent = next.Rent
	h.CurrentKey = key

	e.state.QualityOfLife = max(0, e.state.QualityOfLife+next.QolDelta-current.QolDelta)
	for i := range e.state.Obligations {
		if e.state.Obligations[i].Category == CategoryRent {
			e.state.Obligations[i].Title = RentTitle(next.Label)
		}
	}
	log.Debugf("housing changed %s -> %s, surcharge %s", current.Key, next.Key, h.Surcharge)
	return true
}

func RentTitle(label string) string {
	return fmt.Sprintf("Rent (%s)", label)
}
