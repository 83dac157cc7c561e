package config

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// displayName derives an English edition name from a language code, for
// languages added in config without an explicit name.
func displayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
