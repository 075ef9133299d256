// Package bot plays the game: it clicks the big cookie, keeps track of
// the counter and purchases items when they are affordable.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jakopako/clickr/internal/browser"
	"github.com/jakopako/clickr/internal/config"
	"github.com/jakopako/clickr/internal/game"
	"github.com/jakopako/clickr/internal/log"
	"github.com/jakopako/clickr/internal/types"
	"github.com/jakopako/clickr/internal/utils"
)

// Page is the part of a browser session the bot drives.
type Page interface {
	game.PageReader
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, sel string) error
	JSClick(ctx context.Context, sel string) error
	WaitVisible(ctx context.Context, sel string, timeout time.Duration) error
}

// Bot holds the in-memory state of a single run.
type Bot struct {
	cfg    *config.Config
	page   Page
	reader *game.Reader
	logger *slog.Logger

	counter     int64
	bulk        game.BulkAmount
	transaction game.Transaction
	history     *game.History
	status      types.RunStatus

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// New returns a bot that plays on page according to cfg.
func New(page Page, cfg *config.Config) *Bot {
	return &Bot{
		cfg:     cfg,
		page:    page,
		reader:  game.NewReader(page, &cfg.Selectors),
		logger:  slog.With(slog.String("name", cfg.Name)),
		bulk:    game.Bulk1,
		history: game.NewHistory(cfg.BatchSize),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Counter returns the last successfully read counter value.
func (b *Bot) Counter() int64 { return b.counter }

// Bulk returns the currently selected bulk amount.
func (b *Bot) Bulk() game.BulkAmount { return b.bulk }

// Transaction returns the currently selected store mode.
func (b *Bot) Transaction() game.Transaction { return b.transaction }

// Prepare loads the game, runs the configured startup interactions and
// waits for the game to become playable. Errors returned by Prepare are
// fatal for the run.
func (b *Bot) Prepare(ctx context.Context) error {
	if err := b.page.Navigate(ctx, b.cfg.URL); err != nil {
		return fmt.Errorf("failed to load %s: %w", b.cfg.URL, err)
	}
	b.interact(ctx)
	if err := b.page.WaitVisible(ctx, b.cfg.Selectors.BigCookie, b.cfg.Browser.PageLoadTimeout); err != nil {
		return fmt.Errorf("game did not become ready: %w", err)
	}
	if err := b.ToggleBuy(ctx, game.Bulk1); err != nil {
		return fmt.Errorf("failed to select buy mode: %w", err)
	}
	b.logger.Info("game is ready")
	return nil
}

// ToggleBuy switches the store to buy mode with the given bulk amount.
func (b *Bot) ToggleBuy(ctx context.Context, amount game.BulkAmount) error {
	if err := b.page.WaitVisible(ctx, b.cfg.Selectors.BulkBuy, b.cfg.Browser.PageLoadTimeout); err != nil {
		return err
	}
	if err := b.page.Click(ctx, b.cfg.Selectors.BulkBuy); err != nil {
		return err
	}
	b.transaction = game.Buy
	return b.selectBulk(ctx, amount)
}

// ToggleSell switches the store to sell mode with the given bulk amount.
func (b *Bot) ToggleSell(ctx context.Context, amount game.BulkAmount) error {
	if err := b.page.Click(ctx, b.cfg.Selectors.BulkSell); err != nil {
		return err
	}
	b.transaction = game.Sell
	return b.selectBulk(ctx, amount)
}

func (b *Bot) selectBulk(ctx context.Context, amount game.BulkAmount) error {
	amount = game.NormalizeBulk(int(amount))
	if err := b.page.Click(ctx, amount.Selector(&b.cfg.Selectors)); err != nil {
		return err
	}
	b.bulk = amount
	b.logger.Debug("selected bulk amount", slog.String("transaction", b.transaction.String()), slog.String("bulk", amount.String()))
	return nil
}

// Run plays until the configured duration has passed or ctx is done and
// returns the status of the run. Missing elements and unparsable values
// are not fatal, they are counted and retried in the next iteration.
func (b *Bot) Run(ctx context.Context) *types.RunStatus {
	start := b.now()
	b.status = types.RunStatus{
		Name:           b.cfg.Name,
		Start:          start,
		PurchasedItems: []string{},
	}
	ctx = log.ContextWithLogger(ctx, b.logger)
	b.logger.Info(fmt.Sprintf("playing for %v", b.cfg.Duration))

	lastChecked := start
	for {
		now := b.now()
		if now.Sub(start) >= b.cfg.Duration {
			b.logger.Info("time is up")
			break
		}
		if ctx.Err() != nil {
			b.logger.Info("run cancelled")
			break
		}

		b.step(ctx)

		if now.Sub(lastChecked) >= b.cfg.CheckInterval {
			b.check(ctx)
			lastChecked = b.now()
		}
		b.sleep(ctx, b.cfg.ClickDelay)
	}

	b.status.End = b.now()
	b.status.FinalCount = b.counter
	b.status.BulkAmount = int(b.bulk)
	b.logger.Info(fmt.Sprintf("finished with %d cookies", b.counter),
		slog.Int("clicks", b.status.NrClicks),
		slog.Int("purchases", b.status.NrPurchases))
	status := b.status
	return &status
}

// step clicks the big cookie and updates the counter.
func (b *Bot) step(ctx context.Context) {
	if err := b.page.Click(ctx, b.cfg.Selectors.BigCookie); err != nil {
		b.transient(ctx, "click", err)
	} else {
		b.status.NrClicks++
	}

	counter, err := b.reader.Counter(ctx)
	if err != nil {
		b.transient(ctx, "read counter", err)
		return
	}
	b.counter = counter
}

// check purchases the best affordable item and completes the batch.
func (b *Bot) check(ctx context.Context) {
	// the bulk switch of the last batch failed, no purchases until it succeeds
	if b.history.Full() {
		b.completeBatch(ctx)
		if b.history.Full() {
			return
		}
	}

	items, err := b.reader.Items(ctx)
	if err != nil {
		b.transient(ctx, "read items", err)
	}
	b.logger.Debug(fmt.Sprintf("%d unlocked items", len(items)), slog.Int64("cookies", b.counter))
	if len(items) == 0 {
		return
	}

	item, ok := game.Choose(items, b.counter, b.history)
	if ok {
		b.purchase(ctx, item)
	}

	if b.history.Full() {
		b.completeBatch(ctx)
	}
}

func (b *Bot) purchase(ctx context.Context, item game.Item) {
	if err := b.page.JSClick(ctx, item.Selector()); err != nil {
		b.transient(ctx, "purchase", err)
		return
	}
	b.history.Add(item.Name)
	b.status.NrPurchases++
	b.status.PurchasedItems = append(b.status.PurchasedItems, item.Name)
	b.logger.Info(fmt.Sprintf("purchased %s", item.Name), slog.Int64("cost", item.Cost), slog.Int64("cookies", b.counter))
}

func (b *Bot) completeBatch(ctx context.Context) {
	target := game.NormalizeBulk(b.cfg.BatchBulk)
	if b.bulk != target || b.transaction != game.Buy {
		if err := b.ToggleBuy(ctx, target); err != nil {
			// keep the history so that the switch is retried next check
			b.transient(ctx, "switch bulk amount", err)
			return
		}
	}
	b.logger.Debug("batch complete", slog.Any("items", b.history.Names()))
	b.history.Clear()
}

func (b *Bot) transient(ctx context.Context, op string, err error) {
	if ctx.Err() != nil {
		return
	}
	b.status.NrErrors++
	logger := log.LoggerFromContext(ctx)
	if errors.Is(err, browser.ErrElementNotFound) {
		logger.Debug(fmt.Sprintf("%s: %v", op, err))
		return
	}
	logger.Warn(fmt.Sprintf("%s: %s", op, utils.ShortenString(err.Error(), 200)))
}
