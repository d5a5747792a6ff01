//go:build js && wasm

// Package dom implements the bridge host on top of syscall/js.
package dom

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/julianknutsen/elmassets/internal/bridge"
)

// NewHost returns a bridge.Host backed by the page's globals. Log output
// goes to stdout, which the wasm runtime forwards to console.log.
func NewHost() bridge.Host {
	global := js.Global()
	return bridge.Host{
		Document:  &Document{v: global.Get("document")},
		Clipboard: &Clipboard{v: global.Get("navigator").Get("clipboard")},
		History:   &History{v: global.Get("history")},
		Logger:    slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

// present reports whether v holds an object.
func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

// Element wraps an HTMLElement.
type Element struct {
	v js.Value
}

// Value returns the underlying JS object.
func (e *Element) Value() js.Value { return e.v }

// Attribute implements bridge.Element.
func (e *Element) Attribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

// Dialog wraps an HTMLDialogElement.
type Dialog struct {
	v js.Value
}

// Open implements bridge.Dialog.
func (d *Dialog) Open() bool { return d.v.Get("open").Truthy() }

// ShowModal implements bridge.Dialog.
func (d *Dialog) ShowModal() { d.v.Call("showModal") }

// Close implements bridge.Dialog.
func (d *Dialog) Close() { d.v.Call("close") }

// OnClose implements bridge.Dialog. The listener removes itself after one
// event so repeated toggles do not pile up handlers.
func (d *Dialog) OnClose(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		cb.Release()
		return nil
	})
	d.v.Call("addEventListener", "close", cb, map[string]any{"once": true})
}

// ClassList wraps a DOMTokenList.
type ClassList struct {
	v js.Value
}

// Add implements bridge.ClassList.
func (c *ClassList) Add(class string) { c.v.Call("add", class) }

// Remove implements bridge.ClassList.
func (c *ClassList) Remove(class string) { c.v.Call("remove", class) }

// Contains implements bridge.ClassList.
func (c *ClassList) Contains(class string) bool { return c.v.Call("contains", class).Bool() }

// Document wraps window.document.
type Document struct {
	v js.Value
}

// ElementByID implements bridge.Document.
func (d *Document) ElementByID(id string) (bridge.Element, bool) {
	el := d.v.Call("getElementById", id)
	if !present(el) {
		return nil, false
	}
	return &Element{v: el}, true
}

// DialogByID implements bridge.Document.
func (d *Document) DialogByID(id string) (bridge.Dialog, bool) {
	el := d.v.Call("getElementById", id)
	if !present(el) {
		return nil, false
	}
	return &Dialog{v: el}, true
}

// Body implements bridge.Document.
func (d *Document) Body() bridge.ClassList {
	return &ClassList{v: d.v.Get("body").Get("classList")}
}

// Clipboard wraps navigator.clipboard.
type Clipboard struct {
	v js.Value
}

// WriteText implements bridge.Clipboard. The returned promise is dropped;
// a rejected write surfaces only as an unhandled rejection in the console.
func (c *Clipboard) WriteText(text string) {
	c.v.Call("writeText", text)
}

// History wraps window.history.
type History struct {
	v js.Value
}

// ReplaceState implements bridge.History.
func (h *History) ReplaceState(path string) {
	h.v.Call("replaceState", map[string]any{}, "", path)
}
