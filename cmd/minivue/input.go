package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/minivue/internal/errors"
)

// readTemplate returns the template from --expr, a file argument, or stdin
// when the argument is "-".
func readTemplate(stdin io.Reader, args []string, expr string) (string, error) {
	switch {
	case expr != "":
		return expr, nil
	case len(args) == 0:
		return "", errors.New("X001")
	case args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.New("X001").Wrap(err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.New("X001").WithDetail(err.Error())
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// readBindings loads a JSON or YAML object of template bindings.
func readBindings(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("X002").WithDetail(err.Error())
	}

	var out map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, errors.New("X002").WithDetailf("%s: %v", path, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// parseKeys parses "1,2,3" into a key list. Numeric keys become ints.
func parseKeys(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	keys := make([]any, 0, len(parts))
	seen := make(map[any]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.New("X003").WithDetailf("empty key in %q", s)
		}
		var key any = p
		if n, err := strconv.Atoi(p); err == nil {
			key = n
		}
		if seen[key] {
			return nil, errors.New("X003").WithDetailf("duplicate key %v", key)
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys, nil
}
