package bridge

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestInit_ConstructsOnce(t *testing.T) {
	doc := newFakeDocument()
	doc.elements[RootID] = &fakeElement{attrs: map[string]string{FlagsAttribute: `{"user":"ada","count":3,"tags":["a"]}`}}

	calls := 0
	var gotNode Element
	var gotFlags any
	app, err := Init(doc, func(node Element, flags any) (App, error) {
		calls++
		gotNode, gotFlags = node, flags
		return newFakeApp(), nil
	})
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if app == nil {
		t.Fatal("Init() returned nil app")
	}
	if calls != 1 {
		t.Errorf("initializer called %d times, want 1", calls)
	}
	if gotNode != Element(doc.elements[RootID]) {
		t.Error("initializer should receive the root element")
	}
	want := map[string]any{"user": "ada", "count": float64(3), "tags": []any{"a"}}
	if !reflect.DeepEqual(gotFlags, want) {
		t.Errorf("flags = %#v, want %#v", gotFlags, want)
	}
}

func TestInit_MissingRoot(t *testing.T) {
	called := false
	_, err := Init(newFakeDocument(), func(Element, any) (App, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Init() error = %v, want ErrElementNotFound", err)
	}
	if called {
		t.Error("initializer must not run without a root element")
	}
}

func TestInit_MalformedFlags(t *testing.T) {
	tests := map[string]map[string]string{
		"missing attribute": {},
		"not json":          {FlagsAttribute: `{user: ada}`},
		"empty":             {FlagsAttribute: ``},
	}
	for name, attrs := range tests {
		t.Run(name, func(t *testing.T) {
			doc := newFakeDocument()
			doc.elements[RootID] = &fakeElement{attrs: attrs}
			_, err := Init(doc, func(Element, any) (App, error) {
				t.Fatal("initializer must not run with malformed flags")
				return nil, nil
			})
			if !errors.Is(err, ErrMalformedFlags) {
				t.Errorf("Init() error = %v, want ErrMalformedFlags", err)
			}
		})
	}
}

func TestInit_NullFlags(t *testing.T) {
	doc := newFakeDocument()
	doc.elements[RootID] = &fakeElement{attrs: map[string]string{FlagsAttribute: `null`}}
	_, err := Init(doc, func(_ Element, flags any) (App, error) {
		if flags != nil {
			t.Errorf("flags = %#v, want nil", flags)
		}
		return newFakeApp(), nil
	})
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
}

func TestInit_InitializerError(t *testing.T) {
	doc := newFakeDocument()
	doc.elements[RootID] = &fakeElement{attrs: map[string]string{FlagsAttribute: `{}`}}
	boom := errors.New("boom")
	_, err := Init(doc, func(Element, any) (App, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Init() error = %v, want wrapped boom", err)
	}
}

func TestNew_RejectsUnknownPort(t *testing.T) {
	f := newFixture()
	if _, err := New(f.host(), Options{Ports: []Port{Port(42)}}); !errors.Is(err, ErrUnknownPort) {
		t.Errorf("New() error = %v, want ErrUnknownPort", err)
	}
}

func TestSubscribe_SkipsPortsTheAppLacks(t *testing.T) {
	f := newFixture()
	b := f.bridge(Options{})
	app := newFakeApp(PortCopyToClipboard, PortToggleModal)

	got := b.Subscribe(app)
	want := []Port{PortCopyToClipboard, PortToggleModal}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subscribe() = %v, want %v", got, want)
	}
}

func TestSubscribe_OnlyEnabledPorts(t *testing.T) {
	f := newFixture()
	b := f.bridge(Options{Ports: []Port{PortCopyToClipboard, PortCopyToClipboard}})
	app := newFakeApp(AllPorts...)

	got := b.Subscribe(app)
	if !reflect.DeepEqual(got, []Port{PortCopyToClipboard}) {
		t.Errorf("Subscribe() = %v, want [copyToClipboard]", got)
	}
	if len(app.handlers[PortCopyToClipboard]) != 1 {
		t.Error("duplicate ports in Options must subscribe once")
	}
	if err := b.Dispatch(Event{Port: PortToggleModal}); !errors.Is(err, ErrUnknownPort) {
		t.Errorf("Dispatch(disabled) = %v, want ErrUnknownPort", err)
	}
}

func TestCopyToClipboard_OneWritePerCall(t *testing.T) {
	f := newFixture()
	b := f.bridge(Options{})
	app := newFakeApp(AllPorts...)
	b.Subscribe(app)

	inputs := []string{"first", "", "first", "ünïcødé"}
	for i, s := range inputs {
		app.send(PortCopyToClipboard, s)
		if len(f.clipboard.writes) != i+1 {
			t.Fatalf("after %d calls: %d writes", i+1, len(f.clipboard.writes))
		}
		if got := f.clipboard.writes[i]; got != s {
			t.Errorf("write %d = %q, want %q", i, got, s)
		}
	}
}

func TestCopyToClipboard_DiagnosticVariant(t *testing.T) {
	f := newFixture()
	var logs bytes.Buffer
	host := f.host()
	host.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	b, err := New(host, Options{Copy: CopyDiagnostic, Poller: f.clock.poller()})
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Dispatch(Event{Port: PortCopyToClipboard, Text: "hello"}); err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if len(f.clipboard.writes) != 0 {
		t.Error("diagnostic variant must not touch the clipboard")
	}
	if !strings.Contains(logs.String(), "text=hello") {
		t.Errorf("diagnostic output = %q, want text=hello", logs.String())
	}
}

func TestToggleModal_OpenThenClose(t *testing.T) {
	f := newFixture()
	b := f.bridge(Options{})
	modal := f.doc.modal

	if err := b.Dispatch(Event{Port: PortToggleModal}); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !modal.open || modal.shows != 1 {
		t.Error("first toggle should showModal")
	}
	if !f.doc.body.Contains(NoScrollClass) {
		t.Error("open modal should lock scrolling")
	}

	if err := b.Dispatch(Event{Port: PortToggleModal}); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if modal.open || modal.closes != 1 {
		t.Error("second toggle should close")
	}
	modal.fireClose()
	if f.doc.body.Contains(NoScrollClass) {
		t.Error("close event should release the scroll lock")
	}
}

func TestToggleModal_ParityProperty(t *testing.T) {
	for n := 1; n <= 6; n++ {
		f := newFixture()
		b := f.bridge(Options{})
		for i := 0; i < n; i++ {
			if err := b.Dispatch(Event{Port: PortToggleModal}); err != nil {
				t.Fatalf("toggle %d: %v", i, err)
			}
			if !f.doc.modal.open {
				f.doc.modal.fireClose()
			}
		}
		locked := f.doc.body.Contains(NoScrollClass)
		if odd := n%2 == 1; locked != odd {
			t.Errorf("after %d toggles: noscroll = %v, want %v", n, locked, odd)
		}
	}
}

func TestToggleModal_NativeCloseReleasesLock(t *testing.T) {
	f := newFixture()
	b := f.bridge(Options{})
	if err := b.Dispatch(Event{Port: PortToggleModal}); err != nil {
		t.Fatal(err)
	}

	// Escape key: the dialog closes without the application asking.
	f.doc.modal.open = false
	f.doc.modal.fireClose()
	if f.doc.body.Contains(NoScrollClass) {
		t.Error("native close should release the scroll lock")
	}
}

func TestToggleModal_PollsUntilModalAppears(t *testing.T) {
	f := newFixture()
	f.doc.appearAt = f.clock.now.Add(1500 * time.Millisecond)
	b := f.bridge(Options{})

	if err := b.Dispatch(Event{Port: PortToggleModal}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !f.doc.modal.open {
		t.Error("modal should open once it appears")
	}
	if f.clock.sleeps != 15 {
		t.Errorf("slept %d times, want 15", f.clock.sleeps)
	}
}

func TestToggleModal_PollTimeoutMutatesNothing(t *testing.T) {
	f := newFixture()
	f.doc.appearAt = f.clock.now.Add(2100 * time.Millisecond)
	b := f.bridge(Options{})

	err := b.Dispatch(Event{Port: PortToggleModal})
	if !errors.Is(err, ErrModalNotFound) || !errors.Is(err, ErrDeadlineExceeded) {
		t.Fatalf("toggle error = %v, want ErrModalNotFound wrapping ErrDeadlineExceeded", err)
	}
	if f.doc.modal.shows != 0 || f.doc.modal.closes != 0 {
		t.Error("timed-out toggle must not touch the dialog")
	}
	if f.doc.body.Contains(NoScrollClass) {
		t.Error("timed-out toggle must not touch the body")
	}
	if f.doc.lookups != 21 {
		t.Errorf("lookups = %d, want 21 (t=0..2000ms every 100ms)", f.doc.lookups)
	}
}

func TestToggleModal_ImmediateVariant(t *testing.T) {
	f := newFixture()
	f.doc.appearAt = f.clock.now.Add(100 * time.Millisecond)
	b := f.bridge(Options{Lookup: LookupImmediate})

	if err := b.Dispatch(Event{Port: PortToggleModal}); !errors.Is(err, ErrModalNotFound) {
		t.Fatalf("toggle error = %v, want ErrModalNotFound", err)
	}
	if f.clock.sleeps != 0 || f.doc.lookups != 1 {
		t.Errorf("immediate lookup slept %d times over %d lookups, want 0 over 1", f.clock.sleeps, f.doc.lookups)
	}
}

func TestClearPath(t *testing.T) {
	f := newFixture()
	b := f.bridge(Options{})
	app := newFakeApp(AllPorts...)
	b.Subscribe(app)

	app.send(PortClearPath, "")
	if !reflect.DeepEqual(f.history.replaced, []string{"/"}) {
		t.Errorf("history = %v, want [/]", f.history.replaced)
	}
}

func TestSubscribe_LogsDispatchFailures(t *testing.T) {
	f := newFixture()
	f.doc.modal = nil
	var logs bytes.Buffer
	host := f.host()
	host.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	b, err := New(host, Options{Lookup: LookupImmediate})
	if err != nil {
		t.Fatal(err)
	}
	app := newFakeApp(AllPorts...)
	b.Subscribe(app)

	app.send(PortToggleModal, "")
	if !strings.Contains(logs.String(), "port handler failed") || !strings.Contains(logs.String(), "no modal") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}
}

func TestPortString(t *testing.T) {
	want := map[Port]string{
		PortCopyToClipboard: "copyToClipboard",
		PortToggleModal:     "toggleModal",
		PortClearPath:       "clearPath",
		Port(0):             "Port(0)",
	}
	for p, s := range want {
		if got := p.String(); got != s {
			t.Errorf("Port(%d).String() = %q, want %q", int(p), got, s)
		}
	}
	if !PortCopyToClipboard.HasPayload() || PortToggleModal.HasPayload() || PortClearPath.HasPayload() {
		t.Error("only copyToClipboard carries a payload")
	}
}
