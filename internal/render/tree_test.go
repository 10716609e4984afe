package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

func sampleStore() *kvstore.Map {
	s := kvstore.New()
	kvstore.Merge(s, kvstore.Fragment("configs.user.ini", "user::general", "language",
		kvstore.Entry{Value: "french", Comment: "the language reported to the app/game"}))
	kvstore.Merge(s, kvstore.Fragment("configs.main.ini", "main::general", "steam_deck",
		kvstore.Entry{Value: "1", Comment: "pretend the app is running on a steam deck"}))
	kvstore.Merge(s, kvstore.Fragment("configs.main.ini", "main::general", "enable_account_avatar",
		kvstore.Entry{Value: "0"}))
	return s
}

func TestJSON_Ordered(t *testing.T) {
	data, err := json.MarshalIndent(Tree{Map: sampleStore()}, "", "  ")
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "configs.user.ini"), strings.Index(out, "configs.main.ini"))
	assert.Less(t, strings.Index(out, "steam_deck"), strings.Index(out, "enable_account_avatar"))
	assert.NotContains(t, out, "steam deck", "comments are not part of JSON")

	var decoded map[string]map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "0", decoded["configs.main.ini"]["main::general"]["enable_account_avatar"])
}

func TestJSON_Empty(t *testing.T) {
	data, err := json.Marshal(Tree{Map: kvstore.New()})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestJSON_Nested(t *testing.T) {
	data, err := json.Marshal(map[string]any{"store": Tree{Map: sampleStore()}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"language":"french"`)
}

func TestYAML_OrderedWithComments(t *testing.T) {
	data, err := yaml.Marshal(Tree{Map: sampleStore()})
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "configs.user.ini"), strings.Index(out, "configs.main.ini"))
	assert.Contains(t, out, "# pretend the app is running on a steam deck\n")
	assert.Less(t, strings.Index(out, "# pretend the app"), strings.Index(out, "steam_deck:"))

	var decoded map[string]map[string]map[string]string
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "1", decoded["configs.main.ini"]["main::general"]["steam_deck"])
	assert.Equal(t, "0", decoded["configs.main.ini"]["main::general"]["enable_account_avatar"])
}

func TestYAML_ValuesStayStrings(t *testing.T) {
	s := kvstore.New()
	s.Child("sec").Set("flag", kvstore.Entry{Value: "true"})
	s.Child("sec").Set("port", kvstore.Entry{Value: "47584"})

	data, err := yaml.Marshal(Tree{Map: s})
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &node))
	sec := node.Content[0].Content[1]
	for i := 1; i < len(sec.Content); i += 2 {
		assert.Equal(t, "!!str", sec.Content[i].Tag, sec.Content[i-1].Value)
	}
}
