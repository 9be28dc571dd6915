package bot

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/pkg/seed"
	"loadboard/service"
)

const (
	btnLoads   = "📦 Loads"
	btnMyLoads = "⭐ My loads"
	btnScan    = "🔍 AI Scan"
	btnLogout  = "🚪 Logout"
)

type Bot struct {
	Bot *tele.Bot
	Svc service.IServiceManager
	Log logger.ILogger
}

var messages = map[string]map[string]string{
	"en": {
		"welcome":      "👋 Welcome to OnPoint, %s! You are signed in as a driver.",
		"menu":         "🚚 Driver menu:",
		"login_first":  "🔒 Send /start to sign in first.",
		"no_loads":     "📭 No loads on the board right now.",
		"no_mine":      "You have not shown interest in any load yet.",
		"mine_header":  "⭐ Loads you are interested in:",
		"scan_started": "🔍 Scanning for new loads...",
		"scan_done":    "✅ Scan finished. %d new load(s) found.",
		"scan_failed":  "⚠️ Scan failed, try again.",
		"logged_out":   "👋 Signed out. Send /start to come back.",
		"interested":   "🙋 Owner notified of your interest.",
		"withdrawn":    "↩️ Interest withdrawn.",
		"not_found":    "Load is no longer on the board.",
		"error":        "⚠️ Something went wrong.",
	},
}

func New(token string, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot: b,
		Svc: svc,
		Log: log.With(logger.String("component", "driver_bot")),
	}
	bot.registerHandlers()
	return bot, nil
}

// Start blocks until Stop is called.
func (b *Bot) Start() {
	b.Log.Info("🤖 Driver bot started")
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
	b.Log.Info("Driver bot stopped")
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle(btnLoads, b.handleLoads)
	b.Bot.Handle(btnMyLoads, b.handleMyLoads)
	b.Bot.Handle(btnScan, b.handleScan)
	b.Bot.Handle(btnLogout, b.handleLogout)
	b.Bot.Handle(tele.OnCallback, b.handleCallback)
}

func (b *Bot) session(c tele.Context) *service.AuthStore {
	return b.Svc.Auth().Open(context.Background(), sessionID(c.Chat().ID))
}

// currentDriver returns the chat's driver, or nil after telling the chat to sign in.
func (b *Bot) currentDriver(c tele.Context) *models.User {
	user := b.session(c).User()
	if user == nil || user.Role != models.RoleDriver {
		c.Send(messages["en"]["login_first"], tele.RemoveKeyboard)
		return nil
	}
	return user
}

func (b *Bot) handleStart(c tele.Context) error {
	store, err := b.Svc.Auth().LoginDemo(context.Background(), sessionID(c.Chat().ID), models.RoleDriver)
	if err != nil {
		b.Log.Error("demo login failed", logger.Error(err))
		return c.Send(messages["en"]["error"])
	}
	b.Log.Info("chat signed in", logger.Int64("chat_id", c.Chat().ID), logger.String("driver_id", seed.DemoDriverID))

	c.Send(fmt.Sprintf(messages["en"]["welcome"], store.User().Name))
	return b.showMenu(c)
}

func (b *Bot) showMenu(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnLoads), menu.Text(btnMyLoads)),
		menu.Row(menu.Text(btnScan), menu.Text(btnLogout)),
	)
	return c.Send(messages["en"]["menu"], menu)
}

func (b *Bot) handleLogout(c tele.Context) error {
	b.Svc.Auth().Logout(context.Background(), sessionID(c.Chat().ID))
	return c.Send(messages["en"]["logged_out"], tele.RemoveKeyboard)
}
