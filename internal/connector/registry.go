package connector

import (
	"fmt"
	"sort"
)

// Constructor builds a fresh Connector for one provider.
type Constructor func() Connector

var providers = map[string]Constructor{}

// Register makes a provider available by name. Called from provider
// package init functions; duplicate names are a programming error.
func Register(name string, ctor Constructor) {
	if _, dup := providers[name]; dup {
		panic("connector: duplicate provider " + name)
	}
	providers[name] = ctor
}

// Get looks up the constructor for a provider name.
func Get(name string) (Constructor, error) {
	ctor, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown connector provider: %s", name)
	}
	return ctor, nil
}

// Providers lists registered provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
