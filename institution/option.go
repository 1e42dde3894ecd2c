package institution

import (
	"fmt"

	"github.com/pkg/errors"
)

// Option requests optional data be included in an institution response
type Option int

const (
	// IncludeOptionalMetadata returns an institution's logo, brand color, and URL.
	// When available, the logo is a base64 encoded 152x152 PNG and the brand color is hexadecimal.
	IncludeOptionalMetadata Option = iota + 1
	// IncludeStatus returns status information about the institution. Not available in the Sandbox environment.
	IncludeStatus
)

var optionNames = map[Option]string{
	IncludeOptionalMetadata: "include_optional_metadata",
	IncludeStatus:           "include_status",
}

// Options lists every known Option
func Options() []Option {
	return []Option{IncludeOptionalMetadata, IncludeStatus}
}

// ParseOption returns the Option with the given wire name
func ParseOption(name string) (Option, error) {
	for option, optionName := range optionNames {
		if optionName == name {
			return option, nil
		}
	}
	return 0, errors.Errorf("Unknown institution option: '%s'", name)
}

// String returns the option's wire name
func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Option(%d)", int(o))
}

// EncodeOptions converts requested options to the wire mapping of option name to true.
// Options not requested are left out rather than set false.
func EncodeOptions(options []Option) (map[string]bool, error) {
	encoded := make(map[string]bool, len(options))
	for _, option := range options {
		name, ok := optionNames[option]
		if !ok {
			return nil, errors.Errorf("Unknown institution option: %d", int(option))
		}
		encoded[name] = true
	}
	return encoded, nil
}
