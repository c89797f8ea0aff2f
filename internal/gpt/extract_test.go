package gpt

import (
	"encoding/json"
	"strings"
	"testing"
)

func decodeTree(t *testing.T, raw string) any {
	t.Helper()
	var tree any
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return tree
}

// TestExtractTextMessageShape verifies the responses-shape walk.
func TestExtractTextMessageShape(t *testing.T) {
	tree := decodeTree(t, `{"output":[{"type":"message","content":[{"type":"output_text","text":"Привет, мир"}]}]}`)
	if got := ExtractText(tree); got != "Привет, мир" {
		t.Fatalf("ExtractText = %q, want %q", got, "Привет, мир")
	}
}

// TestExtractTextValueEncoding verifies the {value: string} text encoding.
func TestExtractTextValueEncoding(t *testing.T) {
	tree := decodeTree(t, `{"output":[{"type":"message","content":[{"type":"output_text","text":{"value":"Столица Франции — Париж."}}]}]}`)
	if got := ExtractText(tree); got != "Столица Франции — Париж." {
		t.Fatalf("ExtractText = %q", got)
	}
}

// TestExtractTextJoinsMessageParts verifies blank-line joining across
// content items.
func TestExtractTextJoinsMessageParts(t *testing.T) {
	tree := decodeTree(t, `{"output":[{"type":"message","content":[
		{"type":"output_text","text":"First part."},
		{"type":"output_text","text":"Second part."}]}]}`)
	want := "First part.\n\nSecond part."
	if got := ExtractText(tree); got != want {
		t.Fatalf("ExtractText = %q, want %q", got, want)
	}
}

// TestExtractTextChoicesShape verifies the legacy fallback path.
func TestExtractTextChoicesShape(t *testing.T) {
	tree := decodeTree(t, `{"choices":[{"message":{"content":"Hello there."}}]}`)
	if got := ExtractText(tree); got != "Hello there." {
		t.Fatalf("ExtractText = %q, want %q", got, "Hello there.")
	}
}

// TestExtractTextSkipsIdentifiers verifies identifier-shaped leaves are
// never surfaced when real text exists anywhere in the tree.
func TestExtractTextSkipsIdentifiers(t *testing.T) {
	tree := decodeTree(t, `{
		"id": "resp_0123456789abcdef",
		"trace": "rs_deadbeefcafe",
		"digest": "a1b2c3d4e5f60718",
		"weird": {"nested": [{"deep": "Ответ на твой вопрос: сорок два."}]}
	}`)
	got := ExtractText(tree)
	if got != "Ответ на твой вопрос: сорок два." {
		t.Fatalf("ExtractText = %q", got)
	}
}

// TestExtractTextPrefersProse verifies natural-language leaves win over
// longer opaque ones.
func TestExtractTextPrefersProse(t *testing.T) {
	tree := decodeTree(t, `{
		"a": "this_is_a_rather_long_single_ascii_token_with_no_spaces_at_all_in_it_ok",
		"b": "Короткий ответ."
	}`)
	if got := ExtractText(tree); got != "Короткий ответ." {
		t.Fatalf("ExtractText = %q", got)
	}
}

// TestExtractTextMalformedNodes verifies odd shapes are skipped, not
// raised.
func TestExtractTextMalformedNodes(t *testing.T) {
	fixtures := []string{
		`null`,
		`42`,
		`"just a string"`,
		`{"output": "not a list"}`,
		`{"output":[{"type":"message","content":"not a list"}]}`,
		`{"output":[null, 17, {"content":[{"type":"output_text","text":{"value":12}}]}]}`,
		`{"choices":[{"message":"not a map"}]}`,
		`{"choices":[]}`,
	}
	for _, raw := range fixtures {
		tree := decodeTree(t, raw)
		got := ExtractText(tree)
		if strings.HasPrefix(got, "rs_") || strings.HasPrefix(got, "resp_") {
			t.Fatalf("fixture %s produced identifier %q", raw, got)
		}
	}
}

// TestExtractTextEmptyTree verifies nothing found returns "".
func TestExtractTextEmptyTree(t *testing.T) {
	tree := decodeTree(t, `{"id":"resp_aaaabbbbcccc","status":"completed"}`)
	if got := ExtractText(tree); got != "" {
		t.Fatalf("ExtractText = %q, want empty", got)
	}
}

// TestExtractTextBoundedDepth verifies deeply nested input returns
// without blowing the stack.
func TestExtractTextBoundedDepth(t *testing.T) {
	var tree any = "Настоящий ответ находится слишком глубоко."
	for i := 0; i < 500; i++ {
		tree = map[string]any{"wrap": tree}
	}
	// The leaf sits beyond the depth bound; the call must still return.
	if got := ExtractText(tree); got != "" {
		t.Fatalf("ExtractText beyond depth bound = %q, want empty", got)
	}
}

// TestLooksLikeIdentifier spot-checks the opaque-token heuristic.
func TestLooksLikeIdentifier(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"rs_deadbeef", true},
		{"resp_0123456789abcdef", true},
		{"chatcmpl-8HqS2abc", true},
		{"a1b2c3d4e5f60718", true},
		{"completed", true},
		{"gpt-5-mini", true},
		{"Hello there.", false},
		{"Привет", false},
		{"столица Франции", false},
	}
	for _, tc := range tests {
		if got := looksLikeIdentifier(tc.value); got != tc.want {
			t.Errorf("looksLikeIdentifier(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
