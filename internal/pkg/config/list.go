package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ListSource reports where LoadList found its entries.
type ListSource string

const (
	ListSourceEnv  ListSource = "env"
	ListSourceFile ListSource = "file"
	ListSourceNone ListSource = "none"
)

// LoadList reads a list of non-empty entries.
//
// When envKey is set it wins: its value is split on newlines if it contains
// any, otherwise on ';'. Otherwise fileName is read one entry per line, with
// blank lines and lines starting with '#' skipped. A missing file yields an
// empty list and ListSourceNone. Entries are trimmed of surrounding whitespace.
func LoadList(fileName, envKey string) ([]string, ListSource, error) {
	if raw, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(raw) != "" {
		sep := ";"
		if strings.Contains(raw, "\n") {
			sep = "\n"
		}
		var items []string
		for _, part := range strings.Split(raw, sep) {
			if item := strings.TrimSpace(part); item != "" {
				items = append(items, item)
			}
		}
		return items, ListSourceEnv, nil
	}

	f, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ListSourceNone, nil
		}
		return nil, ListSourceNone, fmt.Errorf("open %s: %w", fileName, err)
	}
	defer func() { _ = f.Close() }()

	var items []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, ListSourceFile, fmt.Errorf("read %s: %w", fileName, err)
	}
	return items, ListSourceFile, nil
}
