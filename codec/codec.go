// Package codec selects the serialization of exported run reports.
//
// Reports are JSON. The codecs differ in speed and layout only: go-json is
// the fast default, json uses encoding/json, json-indent pretty-prints for
// reports meant to be read by people. Any codec decodes what another wrote.
package codec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknown is returned by Parse for a name no codec is registered under.
var ErrUnknown = errors.New("codec: unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var builtin = map[string]Codec{
	"json":        JSON{},
	"json-indent": JSON{Indent: "  "},
	"go-json":     GoJSON{},
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Parse is ByName with an error listing the valid names. The empty name
// selects Default.
func Parse(name string) (Codec, error) {
	if name == "" {
		return Default, nil
	}
	if c, ok := builtin[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

// Names returns the sorted names of the built-in codecs.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
