// Package dataset loads trip datasets, derives calendar fields, and filters rows.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/bikeshare/internal/config"
)

// Registry maps city keys to dataset sources. It is immutable once built and
// safe to share across queries.
type Registry struct {
	cities  []string
	sources map[string]string
}

// NewRegistry builds a registry from city -> source entries. Relative sources
// resolve against dir. City keys are normalized to lower case; when two keys
// normalize alike, the one that sorts first wins.
func NewRegistry(dir string, entries map[string]string) *Registry {
	r := &Registry{
		cities:  make([]string, 0, len(entries)),
		sources: make(map[string]string, len(entries)),
	}
	raw := make([]string, 0, len(entries))
	for city := range entries {
		raw = append(raw, city)
	}
	sort.Strings(raw)
	for _, city := range raw {
		key := normalize(city)
		if key == "" {
			continue
		}
		if _, ok := r.sources[key]; ok {
			continue
		}
		r.cities = append(r.cities, key)
		r.sources[key] = config.ResolveSource(dir, entries[city])
	}
	sort.Strings(r.cities)
	return r
}

// Cities returns the ordered city keys.
func (r *Registry) Cities() []string {
	return append([]string(nil), r.cities...)
}

// Source returns the dataset source for a city.
func (r *Registry) Source(city string) (string, error) {
	src, ok := r.sources[normalize(city)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return src, nil
}

// ParseCity validates raw user text against the registry keys.
func (r *Registry) ParseCity(input string) (string, error) {
	key := normalize(input)
	if _, ok := r.sources[key]; !ok {
		return "", fmt.Errorf("%w: %q (choose from %s)", ErrUnknownCity, input, strings.Join(r.cities, ", "))
	}
	return key, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
