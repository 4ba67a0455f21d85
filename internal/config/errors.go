package config

import (
	"errors"
	"fmt"
)

// ErrorKind classifies configuration failures that are reported to the user.
type ErrorKind int

const (
	FileNotFound ErrorKind = iota + 1
	NoProfileSpecified
	ProfileNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case NoProfileSpecified:
		return "no profile specified"
	case ProfileNotFound:
		return "profile not found"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against an *Error.
var (
	ErrFileNotFound       = errors.New("config file not found")
	ErrNoProfileSpecified = errors.New("no profile specified")
	ErrProfileNotFound    = errors.New("profile not found")
)

// Error is a user-facing configuration error. Its message is a single line
// suitable for printing to stderr as is.
type Error struct {
	Kind    ErrorKind
	Path    string
	Profile string
}

func (e *Error) Error() string {
	switch e.Kind {
	case FileNotFound:
		return fmt.Sprintf("No config file %s", e.Path)
	case NoProfileSpecified:
		return fmt.Sprintf("No profile supplied, or default profile set in %s", e.Path)
	case ProfileNotFound:
		return fmt.Sprintf("Missing profile %s in %s", e.Profile, e.Path)
	default:
		return fmt.Sprintf("config error in %s", e.Path)
	}
}

// Is lets errors.Is match an *Error against the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFileNotFound:
		return e.Kind == FileNotFound
	case ErrNoProfileSpecified:
		return e.Kind == NoProfileSpecified
	case ErrProfileNotFound:
		return e.Kind == ProfileNotFound
	}
	return false
}
