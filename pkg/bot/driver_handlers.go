package bot

import (
	"context"
	"errors"

	tele "gopkg.in/telebot.v3"

	"loadboard/pkg/logger"
	"loadboard/service"
)

func (b *Bot) handleLoads(c tele.Context) error {
	driver := b.currentDriver(c)
	if driver == nil {
		return nil
	}

	loads, err := b.Svc.Loads().Feed(context.Background(), service.SortNone)
	if err != nil {
		b.Log.Error("failed to load feed", logger.Error(err))
		return c.Send(messages["en"]["error"])
	}
	if len(loads) == 0 {
		return c.Send(messages["en"]["no_loads"])
	}

	for _, l := range loads {
		c.Send(formatLoad(l), interestMarkup(l, driver.ID), tele.ModeHTML)
	}
	return nil
}

func (b *Bot) handleMyLoads(c tele.Context) error {
	driver := b.currentDriver(c)
	if driver == nil {
		return nil
	}

	ctx := context.Background()
	ids, err := b.Svc.Loads().MyInterestedLoads(ctx, driver.ID)
	if err != nil {
		b.Log.Error("failed to list interested loads", logger.Error(err))
		return c.Send(messages["en"]["error"])
	}
	if len(ids) == 0 {
		return c.Send(messages["en"]["no_mine"])
	}

	c.Send(messages["en"]["mine_header"])
	for _, id := range ids {
		l, err := b.Svc.Loads().Load(ctx, id)
		if err != nil {
			continue
		}
		c.Send(formatLoad(l), interestMarkup(l, driver.ID), tele.ModeHTML)
	}
	return nil
}

func (b *Bot) handleScan(c tele.Context) error {
	if b.currentDriver(c) == nil {
		return nil
	}

	c.Send(messages["en"]["scan_started"])
	added, err := b.Svc.Loads().ScanAILoads(context.Background())
	if err != nil {
		return c.Send(messages["en"]["scan_failed"])
	}
	return c.Send(scanSummary(len(added)))
}

func (b *Bot) handleCallback(c tele.Context) error {
	action, loadID, ok := parseCallback(c.Callback().Data)
	if !ok {
		return c.Respond()
	}
	driver := b.currentDriver(c)
	if driver == nil {
		return c.Respond()
	}

	ctx := context.Background()
	var (
		err   error
		reply string
	)
	switch action {
	case actionInterest:
		err = b.Svc.Loads().ExpressInterest(ctx, loadID, driver.ID)
		reply = messages["en"]["interested"]
	case actionWithdraw:
		err = b.Svc.Loads().RemoveInterest(ctx, loadID, driver.ID)
		reply = messages["en"]["withdrawn"]
	}
	if err != nil {
		b.Log.Error("interest change failed", logger.String("load_id", loadID), logger.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: messages["en"]["error"], ShowAlert: true})
	}

	l, err := b.Svc.Loads().Load(ctx, loadID)
	if errors.Is(err, service.ErrLoadNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: messages["en"]["not_found"], ShowAlert: true})
	}
	if err == nil {
		b.Bot.Edit(c.Callback().Message, formatLoad(l), interestMarkup(l, driver.ID), tele.ModeHTML)
	}
	return c.Respond(&tele.CallbackResponse{Text: reply})
}
