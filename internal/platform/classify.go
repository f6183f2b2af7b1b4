package platform

import "strings"

// rule maps a set of lowercase substrings to a platform. Rules are evaluated
// in slice order and the first hit wins.
type rule struct {
	platform Platform
	keywords []string
}

// rules is ordered most specific first. "playstation" on its own only means
// PS1 once every numbered PlayStation has been ruled out, so PS1 has to stay
// below PS2..PS5.
var rules = []rule{
	{PS5, []string{"playstation 5", "ps5"}},
	{PS4, []string{"playstation 4", "ps4"}},
	{PS3, []string{"playstation 3", "ps3"}},
	{PS2, []string{"playstation 2", "ps2"}},
	{PS1, []string{"playstation 1", "ps1", "psone", "psx", "playstation"}},
	{Nintendo, []string{"nintendo", "switch", "wii", "gamecube", "3ds", "nintendo ds", "game boy", "gameboy", "ds"}},
	{PC, []string{"pc", "windows", "linux", "mac"}},
}

// Infer classifies free-text platform names (as reported by a metadata
// source) into a Platform. The second return value is false when no rule
// matches.
func Infer(names []string) (Platform, bool) {
	joined := strings.ToLower(strings.Join(names, " "))
	if strings.TrimSpace(joined) == "" {
		return "", false
	}

	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(joined, keyword) {
				return r.platform, true
			}
		}
	}

	return "", false
}

// Keywords returns the recognizable substrings for p, used to match a known
// platform against unstructured platform or category text.
func Keywords(p Platform) []string {
	for _, r := range rules {
		if r.platform == p {
			out := make([]string, len(r.keywords))
			copy(out, r.keywords)
			return out
		}
	}
	return nil
}
