package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadboard/pkg/models"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		action string
		loadID string
		ok     bool
	}{
		{name: "interest", data: "int_load-001", action: actionInterest, loadID: "load-001", ok: true},
		{name: "withdraw", data: "unint_load-002", action: actionWithdraw, loadID: "load-002", ok: true},
		{name: "unique prefix", data: "\fint_load-003", action: actionInterest, loadID: "load-003", ok: true},
		{name: "id with underscore", data: "int_load_x", action: actionInterest, loadID: "load_x", ok: true},
		{name: "unknown action", data: "take_5"},
		{name: "missing id", data: "int_"},
		{name: "empty", data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, loadID, ok := parseCallback(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.loadID, loadID)
		})
	}
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "tg-42", sessionID(42))
	assert.Equal(t, "tg--100123", sessionID(-100123))
}

func TestFormatLoad(t *testing.T) {
	l := &models.Load{
		ID:                "load-001",
		Title:             "Fresh <Produce>",
		Origin:            "Tbilisi",
		Destination:       "Batumi",
		Distance:          380,
		Weight:            15000,
		Payment:           850,
		PickupDate:        time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC),
		CargoType:         "Perishable Goods",
		InterestedDrivers: []string{"drv-001", "drv-003"},
	}

	txt := formatLoad(l)
	assert.Contains(t, txt, "Fresh &lt;Produce&gt;")
	assert.Contains(t, txt, "Tbilisi ➡️ Batumi")
	assert.Contains(t, txt, "₾850")
	assert.Contains(t, txt, "2024-12-25 08:00")
	assert.Contains(t, txt, "Interested: 2")
}

func TestInterestMarkup(t *testing.T) {
	l := &models.Load{ID: "load-001", InterestedDrivers: []string{"drv-001"}}

	menu := interestMarkup(l, "drv-001")
	require.Len(t, menu.InlineKeyboard, 1)
	require.Len(t, menu.InlineKeyboard[0], 1)
	assert.Equal(t, "unint_load-001", menu.InlineKeyboard[0][0].Unique)

	menu = interestMarkup(l, "drv-002")
	assert.Equal(t, "int_load-001", menu.InlineKeyboard[0][0].Unique)
}

func TestScanSummary(t *testing.T) {
	assert.Equal(t, "✅ Scan finished. 3 new load(s) found.", scanSummary(3))
}
