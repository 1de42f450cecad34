// Package counter implements the persisted click counter widget.
package counter

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

const (
	Key           = "resolvedEvents"
	Default       = 605
	PulseScale    = 1.3
	PulseDuration = 300 * time.Millisecond
)

// ErrMissingElement indicates the display or the control was not provided.
var ErrMissingElement = errors.New("counter: widget element missing")

// Store is the durable slot the count is kept in.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Display shows the count. Scale is a cosmetic emphasis factor, 1 at rest.
type Display interface {
	SetText(text string)
	SetScale(scale float64)
}

// Control is the clickable element wired to Increment.
type Control interface {
	OnClick(fn func())
}

// AfterFunc runs fn on the host's thread once d has elapsed.
type AfterFunc func(d time.Duration, fn func())

type Widget struct {
	display Display
	store   Store
	after   AfterFunc
	key     string
	value   int
	enabled bool
}

type Option func(*Widget)

// WithKey stores the count under a key other than Key.
func WithKey(key string) Option {
	return func(w *Widget) {
		if key != "" {
			w.key = key
		}
	}
}

// Mount reads the stored count, shows it and wires the control. A missing
// display disables the widget entirely; a missing control leaves the count
// visible but disables increments. Both cases are logged as warnings and the
// returned error wraps ErrMissingElement. The widget is never nil.
func Mount(display Display, control Control, store Store, after AfterFunc, opts ...Option) (*Widget, error) {
	w := &Widget{store: store, after: after, key: Key, value: Default}
	for _, opt := range opts {
		opt(w)
	}

	if display == nil {
		err := fmt.Errorf("%w: display", ErrMissingElement)
		log.Printf("warn: counter disabled: %v", err)
		return w, err
	}
	w.display = display

	w.value = w.load()
	w.display.SetText(strconv.Itoa(w.value))
	log.Printf("counter: mounted with value %d", w.value)

	if control == nil {
		err := fmt.Errorf("%w: control", ErrMissingElement)
		log.Printf("warn: counter increments disabled: %v", err)
		return w, err
	}
	control.OnClick(w.Increment)
	w.enabled = true
	return w, nil
}

func (w *Widget) load() int {
	if w.store == nil {
		return Default
	}
	raw, ok, err := w.store.Get(w.key)
	if err != nil {
		log.Printf("warn: counter: read %q: %v", w.key, err)
		return Default
	}
	if !ok {
		return Default
	}
	return Parse(raw)
}

// Parse reads the leading integer of a stored value. Missing, non-numeric,
// zero or negative values yield Default.
func Parse(raw string) int {
	s := strings.TrimLeft(raw, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return Default
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return Default
	}
	return n
}

func (w *Widget) Value() int    { return w.value }
func (w *Widget) Enabled() bool { return w.enabled }

// Increment bumps the count, persists it, updates the text and pulses the
// display for PulseDuration.
func (w *Widget) Increment() {
	if !w.enabled {
		return
	}
	w.value++
	w.persist()
	w.display.SetScale(PulseScale)
	w.display.SetText(strconv.Itoa(w.value))
	if w.after == nil {
		w.display.SetScale(1)
	} else {
		w.after(PulseDuration, func() { w.display.SetScale(1) })
	}
	log.Printf("counter: value %d", w.value)
}

// Reset writes Default back to the store and display.
func (w *Widget) Reset() {
	if w.display == nil {
		return
	}
	w.value = Default
	w.persist()
	w.display.SetText(strconv.Itoa(w.value))
}

func (w *Widget) persist() {
	if w.store == nil {
		return
	}
	if err := w.store.Set(w.key, strconv.Itoa(w.value)); err != nil {
		log.Printf("warn: counter: persist %d: %v", w.value, err)
	}
}
