// Package errors provides structured error types for cadcopilot.
// These errors carry the failed operation and a category so the panel can
// decide how to surface them.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindBridge
	KindExecution
	KindClipboard
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindBridge:
		return "bridge error"
	case KindExecution:
		return "execution error"
	case KindClipboard:
		return "clipboard error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type.
type Error struct {
	Op      Op
	Kind    Kind
	Err     error
	Context string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error from any mix of Op, Kind, string (context) and error.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Bridge errors
func BridgeCallFailed(method string, err error) error {
	return E(Op("bridge."+method), KindBridge, fmt.Sprintf("%s call failed", method), err)
}

func BridgeTimeout(method string, err error) error {
	return E(Op("bridge."+method), KindTimeout, fmt.Sprintf("%s call timed out", method), err)
}

func BridgeMalformed(method, reason string) error {
	return E(Op("bridge."+method), KindBridge, fmt.Sprintf("malformed %s response: %s", method, reason))
}

// Settings errors
func SettingsLoadFailed(location string, err error) error {
	return E(Op("settings.Load"), KindIO, fmt.Sprintf("failed to load settings from %s", location), err)
}

func SettingsSaveFailed(location string, err error) error {
	return E(Op("settings.Save"), KindIO, fmt.Sprintf("failed to save settings to %s", location), err)
}

// Config errors
func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}

// Clipboard errors
func ClipboardFailed(err error) error {
	return E(Op("clipboard.WriteText"), KindClipboard, "failed to write clipboard", err)
}
