// Package testutil provides in-memory fakes of the Telegram client ports
// for tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sent is one SendMessage call captured by FakeSender.
type Sent struct {
	ChatID any
	Text   string
	Markup models.ReplyMarkup
}

// FakeSender records outbound calls and returns configurable errors.
// It is safe for concurrent use.
type FakeSender struct {
	mu sync.Mutex

	sent    []Sent
	answers []string
	chats   []any

	// SendErr, when set, decides the error for each SendMessage call.
	// It receives the 0-based call index.
	SendErr   func(call int, text string) error
	AnswerErr error
	ChatErr   error
	ChatInfo  *models.ChatFullInfo

	sendCalls int
}

// SendMessage implements telegram.Sender.
func (f *FakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.sendCalls
	f.sendCalls++
	if f.SendErr != nil {
		if err := f.SendErr(call, params.Text); err != nil {
			return nil, err
		}
	}
	f.sent = append(f.sent, Sent{ChatID: params.ChatID, Text: params.Text, Markup: params.ReplyMarkup})
	return &models.Message{ID: call + 1, Text: params.Text}, nil
}

// AnswerCallbackQuery implements telegram.Sender.
func (f *FakeSender) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.AnswerErr != nil {
		return false, f.AnswerErr
	}
	f.answers = append(f.answers, params.CallbackQueryID)
	return true, nil
}

// GetChat implements telegram.Sender.
func (f *FakeSender) GetChat(_ context.Context, params *bot.GetChatParams) (*models.ChatFullInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.chats = append(f.chats, params.ChatID)
	if f.ChatErr != nil {
		return nil, f.ChatErr
	}
	if f.ChatInfo != nil {
		return f.ChatInfo, nil
	}
	return &models.ChatFullInfo{}, nil
}

// Sent returns the successfully sent messages in order.
func (f *FakeSender) Sent() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Sent(nil), f.sent...)
}

// Texts returns the texts of the successfully sent messages.
func (f *FakeSender) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, s := range f.sent {
		out = append(out, s.Text)
	}
	return out
}

// SendCalls counts every SendMessage call, failed ones included.
func (f *FakeSender) SendCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCalls
}

// Answers returns the acknowledged callback query ids.
func (f *FakeSender) Answers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.answers...)
}

// ChatLookups returns the chat ids passed to GetChat.
func (f *FakeSender) ChatLookups() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.chats...)
}

// FakePlatform is an in-memory telegram.Platform.
type FakePlatform struct {
	mu sync.Mutex

	Me          *models.User
	MeErr       error
	SetErr      error
	DeleteErr   error
	WebhookInfo *models.WebhookInfo
	InfoErr     error

	started     bool
	setCalls    []*bot.SetWebhookParams
	deleteCalls int
}

// Start blocks until ctx is done, like long polling does.
func (p *FakePlatform) Start(ctx context.Context) {
	p.mu.Lock()
	p.started = true
	p.mu.Unlock()
	<-ctx.Done()
}

// GetMe implements telegram.Platform.
func (p *FakePlatform) GetMe(context.Context) (*models.User, error) {
	if p.MeErr != nil {
		return nil, p.MeErr
	}
	if p.Me != nil {
		return p.Me, nil
	}
	return &models.User{ID: BotID, IsBot: true, Username: BotUsername}, nil
}

// SetWebhook implements telegram.Platform.
func (p *FakePlatform) SetWebhook(_ context.Context, params *bot.SetWebhookParams) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setCalls = append(p.setCalls, params)
	if p.SetErr != nil {
		return false, p.SetErr
	}
	return true, nil
}

// DeleteWebhook implements telegram.Platform.
func (p *FakePlatform) DeleteWebhook(context.Context, *bot.DeleteWebhookParams) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleteCalls++
	if p.DeleteErr != nil {
		return false, p.DeleteErr
	}
	return true, nil
}

// GetWebhookInfo implements telegram.Platform.
func (p *FakePlatform) GetWebhookInfo(context.Context) (*models.WebhookInfo, error) {
	if p.InfoErr != nil {
		return nil, p.InfoErr
	}
	if p.WebhookInfo != nil {
		return p.WebhookInfo, nil
	}
	return &models.WebhookInfo{}, nil
}

// Started reports whether Start was called.
func (p *FakePlatform) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// SetCalls returns the SetWebhook parameters received.
func (p *FakePlatform) SetCalls() []*bot.SetWebhookParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*bot.SetWebhookParams(nil), p.setCalls...)
}

// DeleteCalls counts DeleteWebhook calls.
func (p *FakePlatform) DeleteCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deleteCalls
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
