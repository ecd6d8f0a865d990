package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Shortcut is a user-defined palette entry from palette.yaml.
//
//	shortcuts:
//	  - label: Open CRM
//	    category: shortcut
//	    keywords: [hubspot, crm]
//	    run: xdg-open https://app.hubspot.com
//	  - label: Sync calendar
//	    run: [ironlung-sync, --calendar]
type Shortcut struct {
	Label    string   `yaml:"label"`
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
	Run      Argv     `yaml:"run"`
}

// Argv is a command line. In YAML it is either a sequence of arguments or a
// single string split on whitespace.
type Argv []string

// UnmarshalYAML accepts a scalar or a sequence.
func (a *Argv) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = strings.Fields(node.Value)
		return nil
	case yaml.SequenceNode:
		var args []string
		if err := node.Decode(&args); err != nil {
			return err
		}
		*a = args
		return nil
	default:
		return fmt.Errorf("line %d: run must be a string or a list", node.Line)
	}
}

type shortcutFile struct {
	Shortcuts []Shortcut `yaml:"shortcuts"`
}

// LoadShortcuts reads palette.yaml. A missing file yields no shortcuts.
// Entries without a label or command are rejected; an empty category
// becomes "shortcut".
func LoadShortcuts(path string) ([]Shortcut, error) {
	//nolint:gosec // path comes from ResolvePaths
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read shortcuts %s: %w", path, err)
	}

	var file shortcutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse shortcuts %s: %w", path, err)
	}

	for i := range file.Shortcuts {
		s := &file.Shortcuts[i]
		if strings.TrimSpace(s.Label) == "" {
			return nil, fmt.Errorf("shortcuts %s: entry %d has no label", path, i+1)
		}
		if len(s.Run) == 0 {
			return nil, fmt.Errorf("shortcuts %s: %q has no run command", path, s.Label)
		}
		if s.Category == "" {
			s.Category = "shortcut"
		}
	}
	return file.Shortcuts, nil
}
