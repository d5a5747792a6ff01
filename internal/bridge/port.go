package bridge

import "fmt"

// Port identifies one of the outbound channels the application uses to
// request a side effect from the page.
type Port int

const (
	// PortCopyToClipboard carries text to place on the system clipboard.
	PortCopyToClipboard Port = iota + 1
	// PortToggleModal opens or closes the modal dialog.
	PortToggleModal
	// PortClearPath replaces the current history entry with the root path.
	PortClearPath
)

// AllPorts lists every port the bridge understands, in subscription order.
var AllPorts = []Port{PortClearPath, PortCopyToClipboard, PortToggleModal}

// String returns the port name as declared by the application.
func (p Port) String() string {
	switch p {
	case PortCopyToClipboard:
		return "copyToClipboard"
	case PortToggleModal:
		return "toggleModal"
	case PortClearPath:
		return "clearPath"
	default:
		return fmt.Sprintf("Port(%d)", int(p))
	}
}

// HasPayload reports whether the port delivers a value.
func (p Port) HasPayload() bool { return p == PortCopyToClipboard }

// Valid reports whether p is a known port.
func (p Port) Valid() bool {
	return p >= PortCopyToClipboard && p <= PortClearPath
}

// Event is one invocation of a port by the application.
type Event struct {
	Port Port
	// Text is the payload of PortCopyToClipboard; empty otherwise.
	Text string
}
