package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/jakopako/clickr/internal/types"
)

// interact runs the configured startup interactions, eg. dismissing a
// consent dialog. Clicks on elements that do not exist are skipped.
func (b *Bot) interact(ctx context.Context) {
	for j, ia := range b.cfg.Interactions {
		b.logger.Debug(fmt.Sprintf("processing interaction nr %d, type %s", j, ia.Type))
		delay := 500 * time.Millisecond // default is .5 seconds
		if ia.Delay > 0 {
			delay = time.Duration(ia.Delay) * time.Millisecond
		}
		switch ia.Type {
		case types.InteractionTypeClick:
			count := 1 // default is 1
			if ia.Count > 0 {
				count = ia.Count
			}
			for i := 0; i < count; i++ {
				if err := b.page.Click(ctx, ia.Selector); err != nil {
					b.logger.Debug(fmt.Sprintf("skipping click on %s: %v", ia.Selector, err))
					break
				}
				b.logger.Debug(fmt.Sprintf("clicked on node with selector: %s", ia.Selector))
				b.sleep(ctx, delay)
			}
		case types.InteractionTypeWait:
			b.sleep(ctx, delay)
		default:
			b.logger.Warn(fmt.Sprintf("unknown interaction type %s", ia.Type))
		}
	}
}
