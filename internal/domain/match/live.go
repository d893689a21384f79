// Package match finds literal patterns on source lines that are not
// commented out. A line counts as commented when its trimmed form starts
// with "//". Block comments are not recognised.
package match

import "strings"

// IsCommented reports whether line is a line comment.
func IsCommented(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// IsLive reports whether pattern occurs on at least one non-commented line
// of text.
func IsLive(text, pattern string) bool {
	found := false
	eachLiveLine(text, func(line string) bool {
		if strings.Contains(line, pattern) {
			found = true
			return false
		}
		return true
	})
	return found
}

// CountLive counts the non-commented lines of text containing pattern.
// A line with several occurrences counts once.
func CountLive(text, pattern string) int {
	n := 0
	eachLiveLine(text, func(line string) bool {
		if strings.Contains(line, pattern) {
			n++
		}
		return true
	})
	return n
}

// CountLiveWithout counts the non-commented lines of text containing
// pattern and none of excludes.
func CountLiveWithout(text, pattern string, excludes ...string) int {
	n := 0
	eachLiveLine(text, func(line string) bool {
		if !strings.Contains(line, pattern) {
			return true
		}
		for _, ex := range excludes {
			if strings.Contains(line, ex) {
				return true
			}
		}
		n++
		return true
	})
	return n
}

func eachLiveLine(text string, fn func(string) bool) {
	for text != "" {
		line := text
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			text = ""
		}
		if IsCommented(line) {
			continue
		}
		if !fn(line) {
			return
		}
	}
}
