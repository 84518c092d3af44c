package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestExtract_PresentValues(t *testing.T) {
	source := decode(t, `{
		"name": {"common": "Germany", "official": "Federal Republic of Germany"},
		"capital": ["Berlin"],
		"population": 83240525,
		"area": 357114.5
	}`)

	assert.Equal(t, "Germany", Extract(source, []any{"name", "common"}, "not available"))
	assert.Equal(t, "Berlin", Extract(source, []any{"capital", 0}, "not available"))
	assert.Equal(t, "83240525", Extract(source, []any{"population"}, "not available"))
	assert.Equal(t, "357114.5", Extract(source, []any{"area"}, "not available"))
}

func TestExtract_AbsentAndMalformed(t *testing.T) {
	source := decode(t, `{"name": {"common": "Germany"}, "empty": "", "nil": null, "list": []}`)

	tests := []struct {
		name string
		path []any
	}{
		{name: "missing key", path: []any{"gini"}},
		{name: "missing nested key", path: []any{"name", "nickname"}},
		{name: "index into map", path: []any{"name", 0}},
		{name: "key into scalar", path: []any{"name", "common", "deep"}},
		{name: "index out of range", path: []any{"list", 3}},
		{name: "negative index", path: []any{"list", -1}},
		{name: "empty terminal string", path: []any{"empty"}},
		{name: "null terminal", path: []any{"nil"}},
		{name: "map terminal", path: []any{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "not available", Extract(source, tt.path, "not available"))
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	source := decode(t, `{"a": {"b": "value"}}`)
	path := []any{"a", "b"}

	first := Extract(source, path, "not available")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(source, path, "not available"))
	}
}

func TestExtractJoined(t *testing.T) {
	source := decode(t, `{
		"continents": ["Europe", "Asia"],
		"languages": {"deu": "German", "fra": "French"},
		"empty": [],
		"scalar": 5
	}`)

	assert.Equal(t, "Europe, Asia", ExtractJoined(source, []any{"continents"}, "not available"))
	assert.Equal(t, "German, French", ExtractJoined(source, []any{"languages"}, "not available"))
	assert.Equal(t, "not available", ExtractJoined(source, []any{"empty"}, "not available"))
	assert.Equal(t, "not available", ExtractJoined(source, []any{"scalar"}, "not available"))
	assert.Equal(t, "not available", ExtractJoined(source, []any{"missing"}, "not available"))
}

func TestExtractDecimal(t *testing.T) {
	source := decode(t, `{
		"diameter": 123.4567,
		"velocity": "7.891234",
		"distance": 0.1234567,
		"word": "abc"
	}`)

	assert.Equal(t, "123.46", ExtractDecimal(source, []any{"diameter"}, 2, "not available"))
	assert.Equal(t, "7.89", ExtractDecimal(source, []any{"velocity"}, 2, "not available"))
	assert.Equal(t, "0.123", ExtractDecimal(source, []any{"distance"}, 3, "not available"))
	assert.Equal(t, "not available", ExtractDecimal(source, []any{"word"}, 2, "not available"))
	assert.Equal(t, "not available", ExtractDecimal(source, []any{"missing"}, 2, "not available"))
}

func TestExtractYesNo(t *testing.T) {
	source := decode(t, `{"unMember": true, "landlocked": false, "name": "Germany"}`)

	assert.Equal(t, "Yes.", ExtractYesNo(source, []any{"unMember"}, "not available"))
	assert.Equal(t, "No.", ExtractYesNo(source, []any{"landlocked"}, "not available"))
	assert.Equal(t, "not available", ExtractYesNo(source, []any{"name"}, "not available"))
	assert.Equal(t, "not available", ExtractYesNo(source, []any{"missing"}, "not available"))
}

func TestExtractMapValue(t *testing.T) {
	source := decode(t, `{"gini": {"2016": 31.9}, "empty": {}, "list": [1]}`)

	assert.Equal(t, "31.9", ExtractMapValue(source, []any{"gini"}, "not available"))
	assert.Equal(t, "not available", ExtractMapValue(source, []any{"empty"}, "not available"))
	assert.Equal(t, "not available", ExtractMapValue(source, []any{"list"}, "not available"))
	assert.Equal(t, "not available", ExtractMapValue(source, []any{"missing"}, "not available"))
}
