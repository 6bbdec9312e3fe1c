package builder

import (
	"fmt"
	"os"
	"sort"
)

type Env map[string]string

func Environment() Env {
	return map[string]string{
		// Alternative target description file replacing the built-in one.
		"SRPC_TARGETS": getenv("SRPC_TARGETS", ""),
		// Default chip or series when the declaration names none.
		"SRPC_TARGET": getenv("SRPC_TARGET", ""),
		// Package name of the generated binding.
		"SRPC_PACKAGE": getenv("SRPC_PACKAGE", ""),
	}
}

func (e Env) Value(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return ""
}

// List returns the variables as sorted KEY=VALUE pairs.
func (e Env) List() []string {
	var result []string
	for key, value := range e {
		result = append(result, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(result)
	return result
}

func getenv(key, _default string) (value string) {
	value = os.Getenv(key)
	if len(value) == 0 {
		value = _default
	}
	return value
}
