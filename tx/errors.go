package tx

import (
	"fmt"

	"github.com/ores-network/gores/abi"
	"github.com/ores-network/gores/common"
)

// Argument coercion errors. Each carries the zero-based parameter index and
// the declared type it was coerced against.

// MissingArgumentError reports that fewer raw arguments were supplied than
// the callee declares parameters.
type MissingArgumentError struct {
	Index int
	Type  abi.Type
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("tx: missing argument %d of type %s", e.Index, e.Type)
}

// ParseArgumentError reports that a raw argument was rejected by the declared
// type's textual grammar.
type ParseArgumentError struct {
	Index int
	Type  abi.Type
	Raw   string
	Err   error
}

func (e *ParseArgumentError) Error() string {
	return fmt.Sprintf("tx: argument %d: cannot parse %q as %s: %v", e.Index, e.Raw, e.Type, e.Err)
}

func (e *ParseArgumentError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a declared parameter type the compiler cannot
// materialize from a string.
type UnsupportedTypeError struct {
	Index int
	Type  abi.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("tx: argument %d: unsupported parameter type %s", e.Index, e.Type)
}

// Build errors. Every builder call that can fail records one of these instead
// of raising it; Build surfaces the first one recorded.

// ExportFunctionABIError reports that a package or blueprint could not be
// introspected for a function call.
type ExportFunctionABIError struct {
	Package   common.Address
	Blueprint string
	Function  string
	Err       error
}

func (e *ExportFunctionABIError) Error() string {
	return fmt.Sprintf("tx: failed to export abi of %s %q for function %q: %v",
		e.Package, e.Blueprint, e.Function, e.Err)
}

func (e *ExportFunctionABIError) Unwrap() error { return e.Err }

// ExportMethodABIError reports that a component could not be introspected for
// a method call.
type ExportMethodABIError struct {
	Component common.Address
	Method    string
	Err       error
}

func (e *ExportMethodABIError) Error() string {
	return fmt.Sprintf("tx: failed to export abi of component %s for method %q: %v",
		e.Component, e.Method, e.Err)
}

func (e *ExportMethodABIError) Unwrap() error { return e.Err }

// FunctionNotFoundError reports a function name absent from the blueprint.
type FunctionNotFoundError struct {
	Name string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("tx: function %q not found", e.Name)
}

// MethodNotFoundError reports a method name absent from the blueprint.
type MethodNotFoundError struct {
	Name string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("tx: method %q not found", e.Name)
}

// BuildArgsError wraps an argument coercion failure for one call.
type BuildArgsError struct {
	Err error
}

func (e *BuildArgsError) Error() string {
	return fmt.Sprintf("tx: failed to build call arguments: %v", e.Err)
}

func (e *BuildArgsError) Unwrap() error { return e.Err }
