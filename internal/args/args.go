// Package args parses the generate command's option lists.
//
// A token equal to a known option ID starts that option's list; every other
// token is appended to the list of the most recent option.
package args

import (
	"fmt"
	"strings"
)

// Kind identifies one of the recognized options.
type Kind int

const (
	TracksTopLevelFolders Kind = iota
	PriorityTopLevelFolders
	ExcludedCrates
	CrateFilesDestination
)

// Kinds lists every option in declaration order.
var Kinds = []Kind{TracksTopLevelFolders, PriorityTopLevelFolders, ExcludedCrates, CrateFilesDestination}

// ID returns the command-line identifier of the option.
func (k Kind) ID() string {
	switch k {
	case TracksTopLevelFolders:
		return "-tracks-top-level-folders"
	case PriorityTopLevelFolders:
		return "-priority-top-level-folders"
	case ExcludedCrates:
		return "-excluded-crates"
	case CrateFilesDestination:
		return "-crate-files-destination"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Required reports whether the option must have at least one value.
func (k Kind) Required() bool {
	switch k {
	case TracksTopLevelFolders, CrateFilesDestination:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return k.ID() }

// KindFromID maps an identifier to its option.
func KindFromID(id string) (Kind, bool) {
	switch id {
	case "-tracks-top-level-folders":
		return TracksTopLevelFolders, true
	case "-priority-top-level-folders":
		return PriorityTopLevelFolders, true
	case "-excluded-crates":
		return ExcludedCrates, true
	case "-crate-files-destination":
		return CrateFilesDestination, true
	default:
		return 0, false
	}
}

// ConfigError reports unusable command-line input.
type ConfigError struct {
	Msg     string
	Missing []Kind
}

func (e *ConfigError) Error() string { return e.Msg }

// Set holds the values given for every option.
type Set struct {
	values map[Kind][]string
}

// Get returns a copy of the values given for k, in input order.
func (s Set) Get(k Kind) []string {
	v := s.values[k]
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// Destination returns the single destination value. Only meaningful after Validate.
func (s Set) Destination() string {
	if v := s.values[CrateFilesDestination]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Parse splits tokens into option lists. It does not check required options.
func Parse(tokens []string) (Set, error) {
	set := Set{values: make(map[Kind][]string, len(Kinds))}
	for _, k := range Kinds {
		set.values[k] = []string{}
	}

	var current *Kind
	for _, token := range tokens {
		if k, ok := KindFromID(token); ok {
			current = &k
			continue
		}
		if current == nil {
			if strings.HasPrefix(token, "-") {
				return Set{}, &ConfigError{Msg: fmt.Sprintf("Unknown option %q! Known options: %s", token, knownIDs())}
			}
			return Set{}, &ConfigError{Msg: fmt.Sprintf("The first argument has to be an option, got %q! Known options: %s", token, knownIDs())}
		}
		set.values[*current] = append(set.values[*current], token)
	}

	return set, nil
}

// Validate checks that required options have values and that exactly one
// destination was given.
func (s Set) Validate() error {
	var missing []Kind
	for _, k := range Kinds {
		if k.Required() && len(s.values[k]) == 0 {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		ids := make([]string, len(missing))
		for i, k := range missing {
			ids[i] = k.ID()
		}
		return &ConfigError{
			Msg:     "Following arguments are not provided: " + strings.Join(ids, ", "),
			Missing: missing,
		}
	}

	if n := len(s.values[CrateFilesDestination]); n != 1 {
		return &ConfigError{Msg: fmt.Sprintf("The argument %s only supports one value, got %d!", CrateFilesDestination.ID(), n)}
	}
	return nil
}

// ParseAndValidate runs Parse followed by Validate.
func ParseAndValidate(tokens []string) (Set, error) {
	set, err := Parse(tokens)
	if err != nil {
		return Set{}, err
	}
	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}

func knownIDs() string {
	ids := make([]string, len(Kinds))
	for i, k := range Kinds {
		ids[i] = k.ID()
	}
	return strings.Join(ids, ", ")
}
