// Package preset reads and writes label presets: the option list a wheel
// starts with.
package preset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSON-backed presets. A file holds either a bare array of labels or an
// object with an "items" array, the shape generation answers in. Files
// ending in .txt hold one label per line.

const DefaultFileName = "spinwin.json"

type document struct {
	Items []string `json:"items"`
}

// DefaultPath is spinwin.json in the working directory.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}

// Load reads labels from path. Blank labels are dropped.
func Load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	labels, err := parse(path, b)
	if err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", filepath.Base(path), err)
	}
	return labels, nil
}

// LoadDefault reads the default preset. A missing file yields no labels.
func LoadDefault() ([]string, error) {
	p, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	labels, err := Load(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return labels, err
}

func parse(path string, b []byte) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		var out []string
		sc := bufio.NewScanner(bytes.NewReader(b))
		for sc.Scan() {
			out = append(out, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return compact(out), nil
	}

	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var labels []string
		if err := json.Unmarshal(b, &labels); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
		return compact(labels), nil
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return compact(doc.Items), nil
}

func compact(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Save writes labels to path as {"items": [...]}.
func Save(path string, labels []string) error {
	b, err := json.MarshalIndent(document{Items: labels}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
