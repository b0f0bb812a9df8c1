// Package errors provides coded, actionable error messages for the vtree
// command line.
//
// Library packages return plain Go errors. At the edge the CLI turns them
// into an *Error with a code from the registry:
//
//	VT001  unknown element tag
//	VT002  host operation failed during patch
//	VT003  event attribute is not a handler
//	VT010  protocol frame could not be decoded
//	VT011  patch frame out of order
//	VT020  invalid configuration
//	VT021  configuration file not found
//	VT030  snapshot store failure
//
// # Usage
//
//	if err := a.Mount(ctx); err != nil {
//	    errors.PrintError(os.Stderr, errors.Classify(err))
//	}
//
//	// ERROR VT001: Unknown element tag
//	//
//	//   The view produced an element whose tag the host does not know.
//	//
//	//   Hint: Use one of the vdom.Tag constants.
//	//
//	//   Cause: app: cycle 1 (mount): dom: unknown element tag: blink
//
// Colors are used only when the output is a terminal.
package errors
