package jsonfilter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRemovesKeysAtEveryDepth(t *testing.T) {
	raw := `{
		"resourceType": "Patient",
		"id": "1",
		"link": [{"other": {"reference": "Patient/2"}}],
		"name": [{"text": "Budi", "link": "x"}],
		"contact": {"other": "y", "phone": "123"}
	}`

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	filtered := Filter(doc, KeySet("other", "link")).(map[string]interface{})

	assert.NotContains(t, filtered, "link")
	assert.Equal(t, "Patient", filtered["resourceType"])
	assert.Equal(t, "1", filtered["id"])

	name := filtered["name"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Budi", name["text"])
	assert.NotContains(t, name, "link")

	contact := filtered["contact"].(map[string]interface{})
	assert.Equal(t, "123", contact["phone"])
	assert.NotContains(t, contact, "other")
}

func TestFilterLeavesScalarsUnchanged(t *testing.T) {
	keys := KeySet("other")

	assert.Equal(t, "abc", Filter("abc", keys))
	assert.Equal(t, float64(42), Filter(float64(42), keys))
	assert.Equal(t, true, Filter(true, keys))
	assert.Nil(t, Filter(nil, keys))
}

func TestFilterPreservesSequenceLength(t *testing.T) {
	in := []interface{}{
		map[string]interface{}{"other": 1, "keep": 2},
		"scalar",
		nil,
	}

	out := Filter(in, KeySet("other")).([]interface{})
	require.Len(t, out, 3)
	assert.Equal(t, map[string]interface{}{"keep": 2}, out[0])
	assert.Equal(t, "scalar", out[1])
	assert.Nil(t, out[2])
}

func TestFilterIsIdempotent(t *testing.T) {
	raw := `{"a":{"other":1,"b":[{"link":2,"c":3}]},"link":4}`

	var doc interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	keys := KeySet("other", "link")
	once := Filter(doc, keys)
	twice := Filter(once, keys)

	assert.Equal(t, once, twice)
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	doc := map[string]interface{}{
		"other": 1,
		"nested": map[string]interface{}{"link": 2, "keep": 3},
	}

	Filter(doc, KeySet("other", "link"))

	assert.Contains(t, doc, "other")
	assert.Contains(t, doc["nested"], "link")
}

func TestFilterWithEmptyKeySetCopiesStructure(t *testing.T) {
	doc := map[string]interface{}{"a": []interface{}{"b", "c"}}

	out := Filter(doc, KeySet())

	assert.Equal(t, doc, out)
}
