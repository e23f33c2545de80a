package utils

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ReadNonEmptyLines returns all non-empty, trimmed lines of r.
// Lines consisting only of whitespace or starting with # (comments) are ignored.
func ReadNonEmptyLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadNonEmptyLinesFile is ReadNonEmptyLines over a file. A path of "-"
// reads standard input.
func ReadNonEmptyLinesFile(path string) ([]string, error) {
	if path == "-" {
		return ReadNonEmptyLines(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadNonEmptyLines(f)
}
