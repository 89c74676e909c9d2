// Package chat is the canned-reply assistant behind the site's chat bubble.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"dune_tours/internal/adapters/observability"
	"dune_tours/internal/domain"
	"dune_tours/internal/locale"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Message struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type State string

const (
	Idle     State = "idle"
	Awaiting State = "awaiting"
)

// Widget is one conversation. Every accepted submit schedules exactly one
// reply after the configured delay; Close drops replies still in flight.
type Widget struct {
	mu       sync.Mutex
	lang     domain.Language
	reply    string
	delay    time.Duration
	messages []Message
	pending  int
	closed   bool
	active   time.Time // last user activity

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWidget opens a conversation in lang, seeded with the localized greeting.
func NewWidget(lang domain.Language, delay time.Duration) *Widget {
	if !lang.Valid() {
		lang = domain.DefaultLanguage
	}
	if delay < 0 {
		delay = 0
	}
	strs := locale.For(lang)
	ctx, cancel := context.WithCancel(context.Background())
	w := &Widget{
		lang:   lang,
		reply:  strs.ChatReply,
		delay:  delay,
		ctx:    ctx,
		cancel: cancel,
		active: time.Now(),
	}
	if strs.ChatGreeting != "" {
		w.messages = append(w.messages, Message{Role: RoleBot, Text: strs.ChatGreeting, At: time.Now().UTC()})
	}
	return w
}

func (w *Widget) Language() domain.Language { return w.lang }

// Submit appends text as a user message and schedules the canned reply.
// Blank input and submits after Close are ignored and report false.
func (w *Widget) Submit(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	now := time.Now()
	w.messages = append(w.messages, Message{Role: RoleUser, Text: text, At: now.UTC()})
	w.active = now
	w.pending++
	w.wg.Add(1)
	w.mu.Unlock()

	observability.ObserveChatMessage(string(RoleUser))
	go w.replyAfter()
	return true
}

func (w *Widget) replyAfter() {
	defer w.wg.Done()
	t := time.NewTimer(w.delay)
	defer t.Stop()

	select {
	case <-w.ctx.Done():
		return
	case <-t.C:
	}

	w.mu.Lock()
	// Close may have won the race with the timer.
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending--
	w.messages = append(w.messages, Message{Role: RoleBot, Text: w.reply, At: time.Now().UTC()})
	w.mu.Unlock()

	observability.ObserveChatMessage(string(RoleBot))
}

func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending > 0 {
		return Awaiting
	}
	return Idle
}

// LastActive is the time of the last submit or touch.
func (w *Widget) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Widget) touch(now time.Time) {
	w.mu.Lock()
	w.active = now
	w.mu.Unlock()
}

// Messages returns a copy of the transcript in append order.
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// Close discards pending replies and waits for their goroutines to exit.
// It is safe to call more than once.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	discarded := w.pending
	w.pending = 0
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
	for i := 0; i < discarded; i++ {
		observability.ObserveChatDiscarded()
	}
}
