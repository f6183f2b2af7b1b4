// Package platform defines the closed set of platforms a collection entry can
// belong to and maps free-text platform names onto it.
package platform

import (
	"fmt"
	"strings"
)

// Platform is one of the seven supported collection platforms.
type Platform string

const (
	PS5      Platform = "PS5"
	PS4      Platform = "PS4"
	PS3      Platform = "PS3"
	PS2      Platform = "PS2"
	PS1      Platform = "PS1"
	Nintendo Platform = "Nintendo"
	PC       Platform = "PC"
)

// All lists every platform in classifier precedence order.
var All = []Platform{PS5, PS4, PS3, PS2, PS1, Nintendo, PC}

var displayNames = map[Platform]string{
	PS5:      "PlayStation 5",
	PS4:      "PlayStation 4",
	PS3:      "PlayStation 3",
	PS2:      "PlayStation 2",
	PS1:      "PlayStation",
	Nintendo: "Nintendo",
	PC:       "PC",
}

var aliases = map[string]Platform{
	"playstation 5": PS5,
	"playstation 4": PS4,
	"playstation 3": PS3,
	"playstation 2": PS2,
	"playstation 1": PS1,
	"playstation":   PS1,
	"psx":           PS1,
	"switch":        Nintendo,
	"windows":       PC,
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	_, ok := displayNames[p]
	return ok
}

// DisplayName returns a human readable name suitable for search queries.
func (p Platform) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

func (p Platform) String() string {
	return string(p)
}

// Parse converts user input into a Platform. Matching is case-insensitive and
// accepts a few common aliases ("switch", "windows", "playstation 4", ...).
func Parse(value string) (Platform, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	for _, p := range All {
		if strings.ToLower(string(p)) == trimmed {
			return p, nil
		}
	}
	if p, ok := aliases[trimmed]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q (valid: %s)", value, strings.Join(Names(), ", "))
}

// Names returns the string value of every platform.
func Names() []string {
	names := make([]string, len(All))
	for i, p := range All {
		names[i] = string(p)
	}
	return names
}
