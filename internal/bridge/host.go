package bridge

import "log/slog"

// Element is a located DOM element.
type Element interface {
	// Attribute returns the named attribute, e.g. "data-flags".
	Attribute(name string) (string, bool)
}

// Dialog is a <dialog> element.
type Dialog interface {
	Open() bool
	ShowModal()
	Close()
	// OnClose registers fn for the next native close event, whatever
	// triggered it (Close, the escape key, a form submit).
	OnClose(fn func())
}

// ClassList is the mutable class set of an element.
type ClassList interface {
	Add(class string)
	Remove(class string)
	Contains(class string) bool
}

// Document is the subset of the DOM the bridge reads.
type Document interface {
	ElementByID(id string) (Element, bool)
	DialogByID(id string) (Dialog, bool)
	// Body returns the class list of the document body.
	Body() ClassList
}

// Clipboard writes to the system clipboard. Writes are fire-and-forget;
// the host does not report failures.
type Clipboard interface {
	WriteText(text string)
}

// History manipulates the session history without navigating.
type History interface {
	ReplaceState(path string)
}

// Host bundles the page capabilities the bridge drives.
type Host struct {
	Document  Document
	Clipboard Clipboard
	History   History
	Logger    *slog.Logger
}

// App is a running application instance as seen by the bridge.
type App interface {
	// Subscribe attaches handler to port. It returns false when the
	// application does not expose the port; the compiler drops ports
	// that are never used.
	Subscribe(port Port, handler func(Event)) bool
}

// Initializer constructs the application on node with the decoded flags.
type Initializer func(node Element, flags any) (App, error)
