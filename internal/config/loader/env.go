package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// Each known setting path "section.key" is read from the variable
// PREFIX_SECTION_KEY; aliases map extra variable names to paths.
type EnvLoader struct {
	prefix  string            // e.g. "MDPAD_"
	mapping map[string]string // env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for the given setting paths. The prefix
// should include the trailing underscore.
func NewEnvLoader(prefix string, paths []string) *EnvLoader {
	l := &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string, len(paths)),
		lookup:  os.LookupEnv,
	}
	for _, p := range paths {
		l.mapping[l.PathToEnv(p)] = p
	}
	return l
}

// AddMapping maps an extra environment variable to a config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// PathToEnv converts editor.indent_unit to PREFIX_EDITOR_INDENT_UNIT.
func (l *EnvLoader) PathToEnv(path string) string {
	return l.prefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// Load reads the mapped variables. Empty values are values, not unset.
// When an alias and a canonical name are both set, the canonical name
// wins.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if l.PathToEnv(path) == env {
			continue
		}
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	for env, path := range l.mapping {
		if l.PathToEnv(path) != env {
			continue
		}
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// parseValue converts a variable's text to a bool, integer or float when
// it reads as one, and leaves it a string otherwise.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
