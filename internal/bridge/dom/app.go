//go:build js && wasm

package dom

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/julianknutsen/elmassets/internal/bridge"
)

// ErrNoProgram is returned when the compiled program is not on the page.
var ErrNoProgram = errors.New("elm program not loaded: window.Elm.Main is undefined")

// App wraps the object returned by Elm.Main.init.
type App struct {
	v     js.Value
	funcs []js.Func
}

// Init is a bridge.Initializer calling Elm.Main.init({node, flags}).
func Init(node bridge.Element, flags any) (bridge.App, error) {
	el, ok := node.(*Element)
	if !ok {
		return nil, fmt.Errorf("init: node is %T, want *dom.Element", node)
	}
	main := js.Global().Get("Elm")
	if !present(main) || !present(main.Get("Main")) {
		return nil, ErrNoProgram
	}
	v := main.Get("Main").Call("init", map[string]any{
		"node":  el.Value(),
		"flags": js.ValueOf(flags),
	})
	return &App{v: v}, nil
}

// Subscribe implements bridge.App. The handler runs on its own goroutine:
// the bridge may sleep while polling for the modal, and the JS callback
// must return to the event loop first.
func (a *App) Subscribe(port bridge.Port, handler func(bridge.Event)) bool {
	ports := a.v.Get("ports")
	if !present(ports) {
		return false
	}
	p := ports.Get(port.String())
	if !present(p) {
		return false
	}
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := bridge.Event{Port: port}
		if port.HasPayload() && len(args) > 0 {
			ev.Text = args[0].String()
		}
		go handler(ev)
		return nil
	})
	a.funcs = append(a.funcs, fn)
	p.Call("subscribe", fn)
	return true
}
