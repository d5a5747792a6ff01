// Package bridge connects a compiled front-end application to the page it
// runs in. It initializes the application from the root element's flags and
// turns the application's port invocations into DOM, clipboard and history
// side effects.
//
// The package is host-neutral: the browser implementation of Host lives in
// bridge/dom and only builds for js/wasm.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KarpelesLab/pjson"
)

// DOM identifiers and classes the page template provides.
const (
	RootID         = "elm"
	FlagsAttribute = "data-flags"
	ModalID        = "modal"
	NoScrollClass  = "noscroll"
	RootPath       = "/"
)

var (
	// ErrElementNotFound is returned when the root element is absent.
	ErrElementNotFound = errors.New("element not found")
	// ErrMalformedFlags is returned when data-flags is missing or not JSON.
	ErrMalformedFlags = errors.New("malformed flags")
	// ErrModalNotFound is returned by toggleModal when no dialog appears.
	ErrModalNotFound = errors.New("no modal")
	// ErrUnknownPort is returned when dispatching a port that is not enabled.
	ErrUnknownPort = errors.New("unknown port")
)

// Init locates the root element, decodes its flags and constructs the
// application exactly once.
func Init(doc Document, initialize Initializer) (App, error) {
	node, ok := doc.ElementByID(RootID)
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, RootID)
	}
	flags, err := DecodeFlags(node)
	if err != nil {
		return nil, err
	}
	app, err := initialize(node, flags)
	if err != nil {
		return nil, fmt.Errorf("initializing application: %w", err)
	}
	return app, nil
}

// DecodeFlags parses the JSON carried in node's data-flags attribute.
func DecodeFlags(node Element) (any, error) {
	raw, ok := node.Attribute(FlagsAttribute)
	if !ok {
		return nil, fmt.Errorf("%w: #%s has no %s attribute", ErrMalformedFlags, RootID, FlagsAttribute)
	}
	var flags any
	if err := pjson.Unmarshal([]byte(raw), &flags); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFlags, err)
	}
	return flags, nil
}

// Lookup selects how toggleModal locates the dialog.
type Lookup int

const (
	// LookupPoll retries until the dialog appears or the poller's deadline
	// passes, for pages that insert the dialog after load.
	LookupPoll Lookup = iota
	// LookupImmediate fails at once when the dialog is absent.
	LookupImmediate
)

// CopyTarget selects what copyToClipboard does with its text.
type CopyTarget int

const (
	// CopyClipboard writes the text to the system clipboard.
	CopyClipboard CopyTarget = iota
	// CopyDiagnostic logs the text instead.
	CopyDiagnostic
)

// Options selects a bridge variant. The zero value subscribes every port,
// polls for the modal and writes to the clipboard.
type Options struct {
	// Ports limits which ports are subscribed. Nil means AllPorts.
	Ports  []Port
	Lookup Lookup
	Copy   CopyTarget
	Poller Poller
}

// Bridge dispatches port events to the host.
type Bridge struct {
	host    Host
	enabled map[Port]bool
	order   []Port
	lookup  Lookup
	copy    CopyTarget
	poller  Poller
	log     *slog.Logger
}

// New returns a bridge driving host.
func New(host Host, opts Options) (*Bridge, error) {
	ports := opts.Ports
	if ports == nil {
		ports = AllPorts
	}
	b := &Bridge{
		host:    host,
		enabled: make(map[Port]bool, len(ports)),
		lookup:  opts.Lookup,
		copy:    opts.Copy,
		poller:  opts.Poller.withDefaults(),
		log:     host.Logger,
	}
	if b.log == nil {
		b.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, p := range ports {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrUnknownPort, p)
		}
		if b.enabled[p] {
			continue
		}
		b.enabled[p] = true
		b.order = append(b.order, p)
	}
	return b, nil
}

// Subscribe attaches the bridge to every enabled port app exposes and
// returns the ports it attached to. Dispatch failures are logged; nothing
// is reported back to the application.
func (b *Bridge) Subscribe(app App) []Port {
	var attached []Port
	for _, p := range b.order {
		ok := app.Subscribe(p, func(ev Event) {
			if err := b.Dispatch(ev); err != nil {
				b.log.Error("port handler failed", "port", ev.Port.String(), "err", err)
			}
		})
		if !ok {
			b.log.Debug("application does not expose port", "port", p.String())
			continue
		}
		attached = append(attached, p)
	}
	return attached
}

// Dispatch performs the side effect for one port invocation.
func (b *Bridge) Dispatch(ev Event) error {
	if !b.enabled[ev.Port] {
		return fmt.Errorf("%w: %v", ErrUnknownPort, ev.Port)
	}
	switch ev.Port {
	case PortCopyToClipboard:
		b.copyText(ev.Text)
		return nil
	case PortToggleModal:
		return b.toggleModal()
	case PortClearPath:
		b.host.History.ReplaceState(RootPath)
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownPort, ev.Port)
	}
}

func (b *Bridge) copyText(text string) {
	if b.copy == CopyDiagnostic {
		b.log.Info("copyToClipboard", "text", text)
		return
	}
	b.host.Clipboard.WriteText(text)
}

func (b *Bridge) findModal() (Dialog, error) {
	lookup := func() (Dialog, bool) { return b.host.Document.DialogByID(ModalID) }
	if b.lookup == LookupImmediate {
		if d, ok := lookup(); ok {
			return d, nil
		}
		return nil, fmt.Errorf("%w: #%s", ErrModalNotFound, ModalID)
	}
	d, err := Find(b.poller, lookup)
	if err != nil {
		return nil, fmt.Errorf("%w: #%s after %s: %w", ErrModalNotFound, ModalID, b.poller.Timeout, err)
	}
	return d, nil
}

// toggleModal flips the dialog and the body's scroll lock together. The
// lock is also released whenever the dialog closes on its own.
func (b *Bridge) toggleModal() error {
	modal, err := b.findModal()
	if err != nil {
		return err
	}
	body := b.host.Document.Body()
	if modal.Open() {
		body.Remove(NoScrollClass)
		modal.Close()
	} else {
		body.Add(NoScrollClass)
		modal.ShowModal()
	}
	modal.OnClose(func() { body.Remove(NoScrollClass) })
	return nil
}
