// Package nav keeps the in-memory page/payload state in step with a
// browser-style history of derived paths. The payload is never encoded
// into the path: reloading from a path alone loses drill-down context,
// which is an accepted limitation of the design.
package nav

import "sync"

// Entry is one visited page.
type Entry struct {
	Page    string
	Path    string
	Payload interface{}
}

// PathFor derives the history path for a page name. The home page maps
// to "/", everything else to "/<page>".
func PathFor(page string) string {
	if page == "home" {
		return "/"
	}
	return "/" + page
}

// Navigator holds the current page and a pushed history of entries.
type Navigator struct {
	mu       sync.Mutex
	current  Entry
	history  []Entry
	onChange func(Entry)
}

// New returns a Navigator positioned on the home page. onChange, when
// set, runs after each navigation (the presentation layer hooks its
// scroll-to-top equivalent here); it may be nil.
func New(onChange func(Entry)) *Navigator {
	n := &Navigator{onChange: onChange}
	n.current = Entry{Page: "home", Path: PathFor("home")}
	return n
}

func (n *Navigator) Navigate(page string, payload interface{}) {
	entry := Entry{Page: page, Path: PathFor(page), Payload: payload}
	n.mu.Lock()
	n.current = entry
	n.history = append(n.history, entry)
	n.mu.Unlock()
	if n.onChange != nil {
		n.onChange(entry)
	}
}

func (n *Navigator) Current() Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// History returns a copy of the pushed entries, oldest first.
func (n *Navigator) History() []Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Entry, len(n.history))
	copy(out, n.history)
	return out
}
