package bridge

import (
	"time"
)

// fakeElement is an element with a fixed attribute set.
type fakeElement struct {
	attrs map[string]string
}

func (e *fakeElement) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// fakeDialog mimics <dialog>: close events fire only when the test
// delivers them, and each listener fires once.
type fakeDialog struct {
	open      bool
	shows     int
	closes    int
	listeners []func()
}

func (d *fakeDialog) Open() bool { return d.open }
func (d *fakeDialog) ShowModal() { d.open = true; d.shows++ }
func (d *fakeDialog) Close()     { d.open = false; d.closes++ }
func (d *fakeDialog) OnClose(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// fireClose delivers the queued native close event.
func (d *fakeDialog) fireClose() {
	ls := d.listeners
	d.listeners = nil
	for _, fn := range ls {
		fn()
	}
}

type fakeClassList map[string]bool

func (c fakeClassList) Add(class string)           { c[class] = true }
func (c fakeClassList) Remove(class string)        { delete(c, class) }
func (c fakeClassList) Contains(class string) bool { return c[class] }

// fakeDocument serves elements by id. appearAt delays the modal until the
// clock reaches that instant.
type fakeDocument struct {
	elements map[string]*fakeElement
	modal    *fakeDialog
	body     fakeClassList
	clock    *fakeClock
	appearAt time.Time
	lookups  int
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{
		elements: map[string]*fakeElement{},
		body:     fakeClassList{},
	}
}

func (d *fakeDocument) ElementByID(id string) (Element, bool) {
	e, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return e, true
}

func (d *fakeDocument) DialogByID(id string) (Dialog, bool) {
	d.lookups++
	if id != ModalID || d.modal == nil {
		return nil, false
	}
	if d.clock != nil && d.clock.now.Before(d.appearAt) {
		return nil, false
	}
	return d.modal, true
}

func (d *fakeDocument) Body() ClassList { return d.body }

type fakeClipboard struct {
	writes []string
}

func (c *fakeClipboard) WriteText(text string) { c.writes = append(c.writes, text) }

type fakeHistory struct {
	replaced []string
}

func (h *fakeHistory) ReplaceState(path string) { h.replaced = append(h.replaced, path) }

// fakeClock advances only when slept on.
type fakeClock struct {
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps++
	c.now = c.now.Add(d)
}

func (c *fakeClock) poller() Poller {
	return Poller{Now: c.Now, Sleep: c.Sleep, Timeout: 2000 * time.Millisecond, Interval: 100 * time.Millisecond}
}

// fakeApp exposes a fixed set of ports and records subscriptions.
type fakeApp struct {
	exposed  map[Port]bool
	handlers map[Port][]func(Event)
}

func newFakeApp(ports ...Port) *fakeApp {
	a := &fakeApp{exposed: map[Port]bool{}, handlers: map[Port][]func(Event){}}
	for _, p := range ports {
		a.exposed[p] = true
	}
	return a
}

func (a *fakeApp) Subscribe(port Port, handler func(Event)) bool {
	if !a.exposed[port] {
		return false
	}
	a.handlers[port] = append(a.handlers[port], handler)
	return true
}

// send invokes port the way the application would.
func (a *fakeApp) send(port Port, text string) {
	for _, h := range a.handlers[port] {
		h(Event{Port: port, Text: text})
	}
}

type fixture struct {
	doc       *fakeDocument
	clipboard *fakeClipboard
	history   *fakeHistory
	clock     *fakeClock
}

func newFixture() *fixture {
	f := &fixture{
		doc:       newFakeDocument(),
		clipboard: &fakeClipboard{},
		history:   &fakeHistory{},
		clock:     newFakeClock(),
	}
	f.doc.clock = f.clock
	f.doc.appearAt = f.clock.now
	f.doc.modal = &fakeDialog{}
	return f
}

func (f *fixture) host() Host {
	return Host{Document: f.doc, Clipboard: f.clipboard, History: f.history}
}

func (f *fixture) bridge(opts Options) *Bridge {
	if opts.Poller.Now == nil {
		opts.Poller = f.clock.poller()
	}
	b, err := New(f.host(), opts)
	if err != nil {
		panic(err)
	}
	return b
}
