package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"loadboard/pkg/models"
)

const (
	actionInterest = "int"
	actionWithdraw = "unint"
)

func sessionID(chatID int64) string {
	return "tg-" + strconv.FormatInt(chatID, 10)
}

func formatLoad(l *models.Load) string {
	return fmt.Sprintf("📦 <b>%s</b>\n📍 %s ➡️ %s\n🛣 %.0f km | ⚖️ %.0f kg\n💰 ₾%.0f\n🗓 Pickup: %s\n🏷 %s\n👥 Interested: %d",
		html.EscapeString(l.Title),
		html.EscapeString(l.Origin),
		html.EscapeString(l.Destination),
		l.Distance,
		l.Weight,
		l.Payment,
		l.PickupDate.Format("2006-01-02 15:04"),
		html.EscapeString(l.CargoType),
		len(l.InterestedDrivers),
	)
}

// interestMarkup offers the button that flips the driver's interest in l.
func interestMarkup(l *models.Load, driverID string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	btn := menu.Data("🙋 Interested", actionInterest+"_"+l.ID)
	if l.HasInterest(driverID) {
		btn = menu.Data("↩️ Withdraw", actionWithdraw+"_"+l.ID)
	}
	menu.Inline(menu.Row(btn))
	return menu
}

// parseCallback splits "int_<load id>" or "unint_<load id>". Telegram may prefix the
// payload with \f when it comes from a unique button.
func parseCallback(data string) (action, loadID string, ok bool) {
	data = strings.TrimPrefix(strings.TrimSpace(data), "\f")
	action, loadID, found := strings.Cut(data, "_")
	if !found || loadID == "" {
		return "", "", false
	}
	if action != actionInterest && action != actionWithdraw {
		return "", "", false
	}
	return action, loadID, true
}

func scanSummary(added int) string {
	return fmt.Sprintf(messages["en"]["scan_done"], added)
}
