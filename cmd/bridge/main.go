//go:build js && wasm

// bridge boots the compiled Elm program on the page and serves its ports.
// Build with GOOS=js GOARCH=wasm and load after the program's script.
package main

import (
	"github.com/julianknutsen/elmassets/internal/bridge"
	"github.com/julianknutsen/elmassets/internal/bridge/dom"
)

func main() {
	host := dom.NewHost()

	app, err := bridge.Init(host.Document, dom.Init)
	if err != nil {
		panic(err)
	}

	b, err := bridge.New(host, bridge.Options{})
	if err != nil {
		panic(err)
	}
	ports := b.Subscribe(app)
	host.Logger.Debug("bridge ready", "ports", len(ports))

	// Keep the runtime alive so port callbacks stay valid.
	select {}
}
