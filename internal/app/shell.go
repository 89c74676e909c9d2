package app

import (
	"fmt"
	"sync"

	"dune_tours/internal/domain"
)

// Prefs is the visitor-level UI state: active language and currency.
type Prefs struct {
	Language domain.Language `json:"language"`
	Currency domain.Currency `json:"currency"`
}

func DefaultPrefs() Prefs {
	return Prefs{Language: domain.DefaultLanguage, Currency: domain.DefaultCurrency}
}

// Shell holds Prefs and notifies subscribers synchronously on every change.
type Shell struct {
	mu    sync.Mutex
	prefs Prefs
	subs  map[int]func(Prefs)
	next  int
}

func NewShell() *Shell { return NewShellWith(DefaultPrefs()) }

// NewShellWith starts from p; invalid fields are replaced by the defaults.
func NewShellWith(p Prefs) *Shell {
	if !p.Language.Valid() {
		p.Language = domain.DefaultLanguage
	}
	if !p.Currency.Valid() {
		p.Currency = domain.DefaultCurrency
	}
	return &Shell{prefs: p, subs: map[int]func(Prefs){}}
}

func (s *Shell) Prefs() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *Shell) SetLanguage(l domain.Language) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, l)
	}
	s.update(func(p *Prefs) { p.Language = l })
	return nil
}

func (s *Shell) SetCurrency(c domain.Currency) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, c)
	}
	s.update(func(p *Prefs) { p.Currency = c })
	return nil
}

// Subscribe registers fn for change notifications and returns its cancel func.
func (s *Shell) Subscribe(fn func(Prefs)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Shell) update(apply func(*Prefs)) {
	s.mu.Lock()
	before := s.prefs
	apply(&s.prefs)
	after := s.prefs
	if before == after {
		s.mu.Unlock()
		return
	}
	subs := make([]func(Prefs), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// called outside the lock so subscribers may read or change the shell
	for _, fn := range subs {
		fn(after)
	}
}
