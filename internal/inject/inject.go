// Package inject holds the active RTL stylesheet and tells subscribers when
// it changes.
package inject

import (
	"sync"

	"github.com/rtl-agents/rtlagents/internal/style"
)

// MessageType identifies style update messages
const MessageType = "rtl-agents:styles"

// Message is delivered to subscribers on every apply and remove. Empty
// Styles means the styles were removed.
type Message struct {
	Type   string `json:"type"`
	Styles string `json:"styles"`
}

// Injector holds the stylesheet currently in effect. It is safe for
// concurrent use.
type Injector struct {
	mu          sync.Mutex
	styles      string
	applied     bool
	subscribers []*subscriber
}

type subscriber struct {
	fn func(Message)
}

// New returns an injector with no styles applied
func New() *Injector {
	return &Injector{}
}

// Apply generates the stylesheet for opts, makes it current and notifies
// subscribers. Applying again replaces the previous stylesheet.
func (i *Injector) Apply(opts style.StyleOptions) {
	css := style.GenerateRTLStyles(opts)

	i.mu.Lock()
	i.styles = css
	i.applied = true
	subs := i.snapshot()
	i.mu.Unlock()

	notify(subs, Message{Type: MessageType, Styles: css})
}

// Remove clears the current stylesheet and notifies subscribers with empty
// styles. It does nothing when no styles are applied.
func (i *Injector) Remove() {
	i.mu.Lock()
	if !i.applied {
		i.mu.Unlock()
		return
	}
	i.styles = ""
	i.applied = false
	subs := i.snapshot()
	i.mu.Unlock()

	notify(subs, Message{Type: MessageType})
}

// Styles returns the current stylesheet, or "" when none is applied
func (i *Injector) Styles() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.styles
}

// Applied reports whether a stylesheet is in effect
func (i *Injector) Applied() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.applied
}

// Subscribe registers fn for style updates. Subscribers run synchronously in
// subscription order. The returned function unsubscribes; calling it more
// than once is harmless.
func (i *Injector) Subscribe(fn func(Message)) (unsubscribe func()) {
	s := &subscriber{fn: fn}

	i.mu.Lock()
	i.subscribers = append(i.subscribers, s)
	i.mu.Unlock()

	return func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		for idx, existing := range i.subscribers {
			if existing == s {
				i.subscribers = append(i.subscribers[:idx:idx], i.subscribers[idx+1:]...)
				return
			}
		}
	}
}

// snapshot copies the subscriber list; the caller holds mu
func (i *Injector) snapshot() []*subscriber {
	return append([]*subscriber(nil), i.subscribers...)
}

func notify(subs []*subscriber, msg Message) {
	for _, s := range subs {
		s.fn(msg)
	}
}
