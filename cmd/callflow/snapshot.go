package main

import (
	"fmt"
	"io"
	"os"

	"callflow-studio/internal/callrouting"

	"gopkg.in/yaml.v3"
)

// readSnapshot decodes a YAML or JSON snapshot. An empty path yields the default.
// "-" reads stdin.
func readSnapshot(path string, stdin io.Reader, d callrouting.Defaults) (callrouting.Snapshot, error) {
	if path == "" {
		return callrouting.DefaultSnapshot(d), nil
	}
	raw, err := readInput(path, stdin)
	if err != nil {
		return callrouting.Snapshot{}, err
	}
	var s callrouting.Snapshot
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return callrouting.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return s, nil
}

func readDefaults(path string) (callrouting.Defaults, error) {
	if path == "" {
		return callrouting.DemoDefaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return callrouting.Defaults{}, err
	}
	var d callrouting.Defaults
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return callrouting.Defaults{}, fmt.Errorf("parse defaults %s: %w", path, err)
	}
	return d, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
