package finder

import (
	"os"
	"strings"
)

// EnvPropertyReader reads process properties from environment variables.
// A key is tried verbatim first, then in the conventional environment
// mangling: upper-cased with runs of non-alphanumeric characters replaced
// by underscores ("client.builder" becomes "CLIENT_BUILDER").
type EnvPropertyReader struct{}

// LookupProperty implements types.PropertyReader. It never errors; the
// environment is always readable in-process.
func (EnvPropertyReader) LookupProperty(key string) (string, bool, error) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true, nil
	}
	if v, ok := os.LookupEnv(mangleEnvKey(key)); ok {
		return v, true, nil
	}
	return "", false, nil
}

// mangleEnvKey converts a dotted property key to environment naming.
func mangleEnvKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// StaticPropertyReader serves properties from a fixed map. It is the
// substitutable fake used by deterministic tests and by configurations
// that pin their collaborator state.
type StaticPropertyReader map[string]string

// LookupProperty implements types.PropertyReader.
func (r StaticPropertyReader) LookupProperty(key string) (string, bool, error) {
	v, ok := r[key]
	return v, ok, nil
}
