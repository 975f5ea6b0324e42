package notification

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/KNICEX/stock-watcher/internal/entity"
	"github.com/KNICEX/stock-watcher/pkg/decimalx"
	"github.com/stretchr/testify/assert"
)

type fakeChannel struct {
	kind  string
	err   error
	calls atomic.Int64
}

func (c *fakeChannel) Kind() string {
	return c.kind
}

func (c *fakeChannel) Send(ctx context.Context, msg Message) error {
	c.calls.Add(1)
	return c.err
}

func fullMessage() Message {
	return Message{
		Symbol:         "TCS.NS",
		TargetPrice:    decimalx.MustFromString("4000"),
		CurrentPrice:   decimalx.MustFromString("4100"),
		Direction:      entity.DirectionUp,
		Email:          "user@example.com",
		TelegramChatId: "12345",
	}
}

func TestDispatchAllChannels(t *testing.T) {
	email := &fakeChannel{kind: ChannelEmail}
	telegram := &fakeChannel{kind: ChannelTelegram}
	d := NewMultiDispatcher([]Channel{email, telegram})

	results := d.Dispatch(context.Background(), fullMessage())
	assert.Len(t, results, 2)
	for _, res := range results {
		assert.True(t, res.Ok())
	}
	assert.Equal(t, int64(1), email.calls.Load())
	assert.Equal(t, int64(1), telegram.calls.Load())
}

func TestDispatchSkipsAbsentDestinations(t *testing.T) {
	email := &fakeChannel{kind: ChannelEmail}
	telegram := &fakeChannel{kind: ChannelTelegram}
	d := NewMultiDispatcher([]Channel{email, telegram})

	msg := fullMessage()
	msg.TelegramChatId = ""

	results := d.Dispatch(context.Background(), msg)
	// absence is a skip, not a failure
	assert.Len(t, results, 1)
	assert.Equal(t, ChannelEmail, results[0].Channel)
	assert.Equal(t, int64(0), telegram.calls.Load())
}

func TestDispatchPartialFailure(t *testing.T) {
	email := &fakeChannel{kind: ChannelEmail}
	telegram := &fakeChannel{kind: ChannelTelegram, err: errors.New("api error")}
	d := NewMultiDispatcher([]Channel{email, telegram})

	results := d.Dispatch(context.Background(), fullMessage())
	assert.Len(t, results, 2)

	byChannel := map[string]Result{}
	for _, res := range results {
		byChannel[res.Channel] = res
	}
	assert.True(t, byChannel[ChannelEmail].Ok())
	assert.False(t, byChannel[ChannelTelegram].Ok())
	// the failing channel never blocked the healthy one
	assert.Equal(t, int64(1), email.calls.Load())
}

func TestDispatchNoDestinations(t *testing.T) {
	email := &fakeChannel{kind: ChannelEmail}
	d := NewMultiDispatcher([]Channel{email})

	msg := fullMessage()
	msg.Email = ""
	msg.TelegramChatId = ""

	assert.Empty(t, d.Dispatch(context.Background(), msg))
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₹", CurrencySymbol("RELIANCE.NS"))
	assert.Equal(t, "₹", CurrencySymbol("TATASTEEL.BO"))
	assert.Equal(t, "$", CurrencySymbol("AAPL"))
	assert.Equal(t, "$", CurrencySymbol("BTCUSDT"))
}
