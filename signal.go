package reveal

import (
	"net/url"
	"strings"
)

// SignalSource delivers section identifiers from an external navigation
// surface. Subscribe returns a function that removes the subscription.
type SignalSource interface {
	Subscribe(fn func(section string)) (cancel func())
}

// CurrentSource is a SignalSource that also reports the section it points
// at right now, such as the fragment a page was opened with.
type CurrentSource interface {
	SignalSource
	Current() string
}

type signalHandler struct {
	id uint32
	fn func(string)
}

// FragmentSource is an in-process SignalSource fed with URL-fragment style
// navigation ("#pricing", "/docs#pricing", "pricing"). Every Navigate call
// is delivered, changed or not, like a coarse hash-change event.
type FragmentSource struct {
	handlers []signalHandler
	nextID   uint32
	fragment string
}

// NewFragmentSource creates a source with an empty fragment.
func NewFragmentSource() *FragmentSource {
	return &FragmentSource{}
}

// Subscribe registers fn for every navigation.
func (f *FragmentSource) Subscribe(fn func(section string)) (cancel func()) {
	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, signalHandler{id: id, fn: fn})
	return func() { f.remove(id) }
}

func (f *FragmentSource) remove(id uint32) {
	for i := range f.handlers {
		if f.handlers[i].id == id {
			copy(f.handlers[i:], f.handlers[i+1:])
			f.handlers[len(f.handlers)-1] = signalHandler{}
			f.handlers = f.handlers[:len(f.handlers)-1]
			return
		}
	}
}

// Navigate records a new location and notifies subscribers with its
// fragment.
func (f *FragmentSource) Navigate(location string) {
	f.fragment = ParseFragment(location)
	// Copy so handlers may unsubscribe while being notified.
	handlers := append([]signalHandler(nil), f.handlers...)
	for _, h := range handlers {
		h.fn(f.fragment)
	}
}

// Fragment returns the most recent fragment.
func (f *FragmentSource) Fragment() string {
	return f.fragment
}

// Current returns the most recent fragment.
func (f *FragmentSource) Current() string { return f.fragment }

// ParseFragment extracts the section identifier from a location. Text after
// '#' wins; a location without '#' is taken as the identifier itself.
// Percent-escapes are decoded.
func ParseFragment(location string) string {
	location = strings.TrimSpace(location)
	if !strings.Contains(location, "#") {
		return location
	}
	if u, err := url.Parse(location); err == nil {
		return u.Fragment
	}
	frag := location[strings.IndexByte(location, '#')+1:]
	if dec, err := url.PathUnescape(frag); err == nil {
		return dec
	}
	return frag
}
