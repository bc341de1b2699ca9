package firmware

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// MCU_NAME_x.y.z, the answer of the BlueMS firmware: L476_BLUEMICROSYSTEM2_2.0.1
	boardUnderscorePattern = regexp.MustCompile(`^([^_\s/]+)_(\S+)_(\d+)\.(\d+)\.(\d+)$`)

	// NAME x.y.z or NAME/MCU x.y.z
	boardSpacePattern = regexp.MustCompile(`^([^\s/]+)(?:/(\S+))?\s+v?(\d+)\.(\d+)\.(\d+)$`)

	// x.y.z, the patch level of the BLE stack may be a letter: 7.2.c
	blePattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+|[a-z])$`)
)

// Version is a firmware version reported by a board.
// Versions are ordered by Major, Minor and Patch; Name and McuType do not
// take part in the ordering.
type Version struct {
	Name    string
	McuType string
	Major   int
	Minor   int
	Patch   int
}

// ParseBoardVersion parses the answer to a board firmware version query.
// Leading and trailing spaces are ignored.
//
// Accepted formats:
//
//	L476_BLUEMICROSYSTEM2_2.0.1
//	BLUEMICROSYSTEM2 2.0.1
//	BLUEMICROSYSTEM2/L476 2.0.1
func ParseBoardVersion(text string) (*Version, error) {
	s := strings.TrimSpace(text)

	if m := boardUnderscorePattern.FindStringSubmatch(s); m != nil {
		return newVersion(m[2], m[1], m[3:6], s, "board")
	}
	if m := boardSpacePattern.FindStringSubmatch(s); m != nil {
		return newVersion(m[1], m[2], m[3:6], s, "board")
	}
	return nil, &FormatError{Kind: "board", Text: text}
}

// ParseBleVersion parses the answer to a BLE stack version query, a bare
// major.minor.patch triple. A letter patch level maps to its position in the
// alphabet starting from zero, so "7.2.c" is 7.2.2.
func ParseBleVersion(text string) (*Version, error) {
	s := strings.TrimSpace(text)

	m := blePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, &FormatError{Kind: "ble", Text: text}
	}
	if c := m[3][0]; c >= 'a' && c <= 'z' {
		m[3] = strconv.Itoa(int(c - 'a'))
	}
	return newVersion("", "", m[1:4], s, "ble")
}

// NewRequirement builds a minimum version for a CompatibilityTable from a
// firmware name, an optional MCU type and a major.minor.patch string.
func NewRequirement(name, mcuType, version string) (Version, error) {
	m := blePattern.FindStringSubmatch(strings.TrimSpace(version))
	if m == nil || name == "" {
		return Version{}, &FormatError{Kind: "minimum", Text: name + " " + version}
	}
	v, err := newVersion(name, mcuType, m[1:4], version, "minimum")
	if err != nil {
		return Version{}, err
	}
	return *v, nil
}

func newVersion(name, mcu string, numbers []string, text, kind string) (*Version, error) {
	var n [3]int
	for i, s := range numbers {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, &FormatError{Kind: kind, Text: text}
		}
		n[i] = v
	}
	return &Version{Name: name, McuType: mcu, Major: n[0], Minor: n[1], Patch: n[2]}, nil
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal to
// or newer than o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return sign(v.Major - o.Major)
	case v.Minor != o.Minor:
		return sign(v.Minor - o.Minor)
	default:
		return sign(v.Patch - o.Patch)
	}
}

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func (v Version) String() string {
	switch {
	case v.McuType != "":
		return fmt.Sprintf("%s_%s_%d.%d.%d", v.McuType, v.Name, v.Major, v.Minor, v.Patch)
	case v.Name != "":
		return fmt.Sprintf("%s %d.%d.%d", v.Name, v.Major, v.Minor, v.Patch)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
