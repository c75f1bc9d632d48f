package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Score    float64  `json:"score"`
	Features []string `json:"features"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "json-indent", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default, c)

	c, err = Parse("json-indent")
	require.NoError(t, err)
	assert.Equal(t, JSON{Indent: "  "}, c)

	_, err = Parse("msgpack")
	require.ErrorIs(t, err, ErrUnknown)
	assert.ErrorContains(t, err, "go-json, json, json-indent")

	assert.Equal(t, []string{"go-json", "json", "json-indent"}, Names())
}

func TestCodecsAgree(t *testing.T) {
	in := record{Score: 0.72, Features: []string{"A", "B"}}

	a, err := JSON{}.Marshal(in)
	require.NoError(t, err)
	b, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	var out record
	require.NoError(t, GoJSON{}.Unmarshal(a, &out))
	assert.Equal(t, in, out)
}

func TestJSONIndent(t *testing.T) {
	b, err := JSON{Indent: "  "}.Marshal(record{Score: 1})
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"score\": 1")
}

func TestMustMarshal(t *testing.T) {
	assert.NotEmpty(t, MustMarshal(nil, record{}))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}

func BenchmarkMarshal(b *testing.B) {
	in := record{Score: 0.5, Features: []string{"f01", "f02", "f03", "f04", "f05", "f06"}}
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Marshal(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
