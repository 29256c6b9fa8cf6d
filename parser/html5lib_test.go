package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type html5libTokenizerTest struct {
	Description       string        `json:"description"`
	Input             string        `json:"input"`
	Output            []interface{} `json:"output"`
	ContentModelFlags []string      `json:"contentModelFlags"`
	LastStartTag      string        `json:"lastStartTag"`
}

type html5libTokenizerFile struct {
	Tests []html5libTokenizerTest `json:"tests"`
}

// normalizeHTML5Lib merges adjacent Character entries, which the test format
// allows to be split anywhere.
func normalizeHTML5Lib(output []interface{}) []interface{} {
	var merged []interface{}
	for _, entry := range output {
		if cur, ok := characterEntry(entry); ok && len(merged) > 0 {
			if prev, ok := characterEntry(merged[len(merged)-1]); ok {
				merged[len(merged)-1] = []interface{}{"Character", prev + cur}
				continue
			}
		}
		merged = append(merged, entry)
	}
	return merged
}

func characterEntry(entry interface{}) (string, bool) {
	arr, ok := entry.([]interface{})
	if !ok || len(arr) != 2 || arr[0] != "Character" {
		return "", false
	}
	s, ok := arr[1].(string)
	return s, ok
}

// html5libOutput renders tokens the way the fixtures spell them, going
// through JSON so both sides share the same dynamic types.
func html5libOutput(t *testing.T, tokens []*Token) []interface{} {
	t.Helper()
	var rendered []interface{}
	for _, tok := range tokens {
		if v := tok.HTML5Lib(); v != nil {
			rendered = append(rendered, v)
		}
	}
	buf, err := json.Marshal(rendered)
	require.NoError(t, err)
	var out []interface{}
	require.NoError(t, json.Unmarshal(buf, &out))
	return out
}

func TestHTML5LibTokenizer(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "tokenizer", "*.test"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		buf, err := os.ReadFile(file)
		require.NoError(t, err)
		var suite html5libTokenizerFile
		require.NoError(t, json.Unmarshal(buf, &suite), file)

		name := strings.TrimSuffix(filepath.Base(file), ".test")
		for _, tt := range suite.Tests {
			tt := tt
			flags := tt.ContentModelFlags
			if len(flags) == 0 {
				flags = []string{"PCDATA"}
			}
			for _, flag := range flags {
				flag := flag
				t.Run(name+"/"+tt.Description+"/"+flag, func(t *testing.T) {
					t.Parallel()
					cm, err := ParseContentModel(flag)
					require.NoError(t, err)
					want := normalizeHTML5Lib(tt.Output)

					for _, disable := range []bool{false, true} {
						cfg := Config{
							InitialContentModel: cm,
							LastStartTag:        tt.LastStartTag,
							DisableCoalescing:   disable,
						}
						got := normalizeHTML5Lib(html5libOutput(t, tokenize(t, tt.Input, cfg)))
						if diff := cmp.Diff(want, got); diff != "" {
							t.Errorf("input %q, coalescing disabled %t (-want +got):\n%s", tt.Input, disable, diff)
						}
					}
				})
			}
		}
	}
}
