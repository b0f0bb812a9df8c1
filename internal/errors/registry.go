package errors

import (
	stderrors "errors"
	"sort"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/remote"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Render errors (VT001-VT009)
	"VT001": {
		Category:   CategoryRender,
		Message:    "Unknown element tag",
		Detail:     "The view produced an element whose tag the host does not know. Nothing after the failing position was patched and the previous tree stays committed.",
		Suggestion: "Use one of the vdom.Tag constants.",
	},
	"VT002": {
		Category:   CategoryRender,
		Message:    "Host operation failed during patch",
		Detail:     "A live tree operation failed part way through a cycle. The live tree may be partially updated.",
		Suggestion: "Check that nothing else mutates the container between cycles.",
	},
	"VT003": {
		Category:   CategoryRender,
		Message:    "Event attribute is not a handler",
		Detail:     "An attribute starting with \"on\" must hold a vdom.Handler, a func(vdom.Event) or a func().",
		Suggestion: "Bind listeners with Dispatcher.On or Dispatcher.OnValue.",
	},

	// Protocol errors (VT010-VT019)
	"VT010": {
		Category:   CategoryProtocol,
		Message:    "Protocol frame could not be decoded",
		Detail:     "A frame was truncated, oversized or exceeded a decoding limit.",
		Suggestion: "Make sure client and server speak the same protocol version.",
	},
	"VT011": {
		Category:   CategoryProtocol,
		Message:    "Patch frame out of order",
		Detail:     "A patch frame did not follow the last applied sequence number.",
		Suggestion: "Reconnect to receive a fresh snapshot.",
	},

	// Configuration errors (VT020-VT029)
	"VT020": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check vtree.json or vtree.yaml against the documented sections.",
	},
	"VT021": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create vtree.json, or run without --config to use defaults.",
	},

	// Storage errors (VT030-VT039)
	"VT030": {
		Category:   CategoryStorage,
		Message:    "Snapshot store failure",
		Detail:     "A snapshot could not be written or read.",
		Suggestion: "Check the snapshot backend settings and credentials.",
	},
}

// Classify maps err to the registered code of its cause. Errors that are
// already *Error are returned as is; unrecognized errors get no code.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}

	code := ""
	switch {
	case stderrors.Is(err, dom.ErrUnknownTag):
		code = "VT001"
	case stderrors.Is(err, reconcile.ErrNotHandler):
		code = "VT003"
	case stderrors.Is(err, dom.ErrIndexOutOfRange),
		stderrors.Is(err, dom.ErrNotElement),
		stderrors.Is(err, dom.ErrNilNode),
		stderrors.Is(err, dom.ErrCycle),
		stderrors.Is(err, reconcile.ErrAbsentNode),
		stderrors.Is(err, reconcile.ErrReorderUnsupported):
		code = "VT002"
	case stderrors.Is(err, remote.ErrOutOfOrder):
		code = "VT011"
	case stderrors.Is(err, protocol.ErrFrameTooLarge),
		stderrors.Is(err, protocol.ErrInvalidFrameType),
		stderrors.Is(err, protocol.ErrMaxDepthExceeded),
		stderrors.Is(err, protocol.ErrAllocationTooLarge),
		stderrors.Is(err, protocol.ErrCollectionTooLarge),
		stderrors.Is(err, protocol.ErrTrailingBytes):
		code = "VT010"
	case stderrors.Is(err, snapshot.ErrNotFound),
		stderrors.Is(err, snapshot.ErrInvalidKey):
		code = "VT030"
	}
	if code == "" {
		return &Error{Category: CategoryCLI, Message: err.Error()}
	}
	return New(code).Wrap(err)
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
