package fanlog

import "strings"

// Flag is a single-bit severity marker. Every event carries exactly one
// flag; sink masks select an arbitrary subset of flags, so a mask is not
// restricted to a contiguous threshold.
type Flag uint

const (
	// FlagError marks error events.
	FlagError Flag = 1 << iota
	// FlagWarn marks warning events.
	FlagWarn
	// FlagInfo marks informational events.
	FlagInfo
	// FlagDebug marks debug events.
	FlagDebug
	// FlagVerbose marks verbose trace events.
	FlagVerbose
)

// String returns the flag's display name.
func (f Flag) String() string {
	switch f {
	case FlagError:
		return "ERROR"
	case FlagWarn:
		return "WARN"
	case FlagInfo:
		return "INFO"
	case FlagDebug:
		return "DEBUG"
	case FlagVerbose:
		return "VERBOSE"
	default:
		return "LOG"
	}
}

// Level is a severity mask: the bitwise union of the flags a sink wants to
// receive. The threshold-style constants below are unions of all flags at
// or above a severity, but any flag combination is a valid Level.
type Level uint

const (
	// LevelOff selects nothing.
	LevelOff Level = 0
	// LevelError selects only errors.
	LevelError Level = Level(FlagError)
	// LevelWarn selects warnings and errors.
	LevelWarn Level = LevelError | Level(FlagWarn)
	// LevelInfo selects info, warnings and errors.
	LevelInfo Level = LevelWarn | Level(FlagInfo)
	// LevelDebug selects debug and above.
	LevelDebug Level = LevelInfo | Level(FlagDebug)
	// LevelVerbose selects verbose and above.
	LevelVerbose Level = LevelDebug | Level(FlagVerbose)
	// LevelAll selects every flag, including caller-defined ones.
	LevelAll Level = ^LevelOff
)

// Contains reports whether the mask intersects the flag. This is the
// qualification test the dispatcher applies per binding per event.
func (l Level) Contains(f Flag) bool {
	return l&Level(f) != 0
}

// String returns the level's display name. Threshold levels get their
// conventional names; arbitrary masks list their flags.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "OFF"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelVerbose:
		return "VERBOSE"
	case LevelAll:
		return "ALL"
	}

	var parts []string
	for _, f := range []Flag{FlagError, FlagWarn, FlagInfo, FlagDebug, FlagVerbose} {
		if l.Contains(f) {
			parts = append(parts, f.String())
		}
	}
	if len(parts) == 0 {
		return "CUSTOM"
	}
	return strings.Join(parts, "|")
}
