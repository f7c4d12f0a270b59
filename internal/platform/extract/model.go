package extract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira/internal/classify"
	"github.com/carteira-app/carteira/pkg/money"
)

// Entry is one statement line ready for rendering: the raw movement
// from the backend plus its classification and display fields.
type Entry struct {
	ID        string             `json:"id"`
	Date      time.Time          `json:"date"`
	Code      string             `json:"code"`
	Label     string             `json:"label"`
	Direction classify.Direction `json:"direction"`
	Icon      string             `json:"icon"`
	Amount    decimal.Decimal    `json:"amount"`
	AmountBRL string             `json:"amount_brl"`
	Known     bool               `json:"known"`
}

// DayGroup holds all entries of a single calendar day, newest day
// first in the statement, entries in backend order within the day.
type DayGroup struct {
	Day     time.Time `json:"day"`
	Entries []Entry   `json:"entries"`
}

// Statement is the extract screen payload.
type Statement struct {
	Days []DayGroup `json:"days"`
}

func newEntry(id string, date time.Time, amount decimal.Decimal, c classify.Classification) Entry {
	return Entry{
		ID:        id,
		Date:      date,
		Code:      c.Code,
		Label:     c.Label,
		Direction: c.Direction,
		Icon:      c.Icon,
		Amount:    amount,
		AmountBRL: money.FormatBRL(amount),
		Known:     c.Known,
	}
}

// groupByDay buckets entries by calendar day preserving the order the
// backend returned them in, both across days and within each day. The
// day is taken in the entry's own location, not UTC: a 23:30 BRT
// movement belongs to that BRT day.
func groupByDay(entries []Entry) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)

	for _, e := range entries {
		y, m, d := e.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, e.Date.Location())
		key := day.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
