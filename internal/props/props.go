// Package props parses the key=value properties format used by the
// installation configuration file. Only the subset the finder needs is
// supported: one key=value pair per line, '#' and '!' comment lines, and
// whitespace trimming around keys and values.
package props

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads properties from r. Later occurrences of a key win. Lines that
// are blank or start with a comment marker are skipped; a non-comment line
// without a separator is a parse error.
func Parse(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			return nil, fmt.Errorf("props: line %d: missing separator in %q", lineNo, line)
		}

		key := strings.TrimSpace(line[:sep])
		if key == "" {
			return nil, fmt.Errorf("props: line %d: empty key", lineNo)
		}
		out[key] = strings.TrimSpace(line[sep+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("props: read: %w", err)
	}

	return out, nil
}
