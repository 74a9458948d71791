package dtmi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/birkland/modelsrepo/fspath"
)

// Scheme is the URI scheme every DTMI starts with
const Scheme = "dtmi"

var pattern = regexp.MustCompile(
	`^dtmi:[A-Za-z](?:[A-Za-z0-9_]*[A-Za-z0-9])?(?::[A-Za-z](?:[A-Za-z0-9_]*[A-Za-z0-9])?)+;([1-9][0-9]{0,8})$`)

// Dtmi is a validated model identifier.  The zero value is not a valid
// identifier.  Dtmi values are comparable and may be used as map keys.
type Dtmi struct {
	id      string
	version int
}

// FormatError is returned when text is not a well formed DTMI.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid DTMI format %q", e.Input)
}

// Parse validates the given text and returns the identifier it denotes.
func Parse(text string) (Dtmi, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Dtmi{}, &FormatError{Input: text}
	}

	v, err := strconv.Atoi(m[1])
	if err != nil {
		return Dtmi{}, &FormatError{Input: text}
	}

	return Dtmi{id: text, version: v}, nil
}

// MustParse is like Parse, but panics on malformed input.  Intended for
// identifiers known at compile time.
func MustParse(text string) Dtmi {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValid reports whether the given text is a well formed DTMI
func IsValid(text string) bool {
	return pattern.MatchString(text)
}

// String returns the identifier exactly as it was parsed
func (d Dtmi) String() string {
	return d.id
}

// IsZero reports whether d is the zero value
func (d Dtmi) IsZero() bool {
	return d.id == ""
}

// Version returns the identifier's version number
func (d Dtmi) Version() int {
	return d.version
}

// Segments returns the path segments between the scheme and the version,
// e.g. [com example Thermostat] for dtmi:com:example:Thermostat;1
func (d Dtmi) Segments() []string {
	if d.id == "" {
		return nil
	}
	body := strings.TrimPrefix(d.id[:strings.IndexByte(d.id, ';')], Scheme+":")
	return strings.Split(body, ":")
}

// Path returns the repository relative, solidus delimited path of the
// model file for this identifier.  With expanded set, the path of the
// precomputed dependency bundle is returned instead.
func (d Dtmi) Path(expanded bool) string {
	if expanded {
		return fspath.Expanded.Generate(d.id)
	}
	return fspath.Standard.Generate(d.id)
}

// EqualFold reports whether d and other differ at most in letter case
func (d Dtmi) EqualFold(other string) bool {
	return strings.EqualFold(d.id, other)
}
