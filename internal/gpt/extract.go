package gpt

import (
	"strings"
	"unicode"
)

// maxExtractDepth bounds the fallback tree walk so cyclic or deeply
// nested inputs cannot recurse unboundedly.
const maxExtractDepth = 32

// ExtractText returns the best-effort human-readable answer from a
// decoded response tree, or "" when nothing usable is found. The
// provider does not guarantee a stable response schema across model
// families, so the tree is treated as untyped: known shapes are tried
// in priority order and a defensive depth-first search runs last.
// Malformed nodes are skipped, never raised.
func ExtractText(tree any) string {
	if text := messageOutputText(tree); text != "" {
		return text
	}
	if text := firstChoiceContent(tree); text != "" {
		return text
	}
	return bestStringLeaf(tree)
}

// messageOutputText walks the responses-shape tree: top-level output
// items tagged as messages, each holding content items tagged as
// output text. Text payloads appear either as a plain string or as a
// {value: string} object depending on provider version.
func messageOutputText(tree any) string {
	root, ok := tree.(map[string]any)
	if !ok {
		return ""
	}
	items, ok := root["output"].([]any)
	if !ok {
		items, ok = root["outputs"].([]any)
		if !ok {
			return ""
		}
	}
	var parts []string
	for _, item := range items {
		node, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if tag, _ := node["type"].(string); tag != "" && tag != "message" {
			continue
		}
		content, ok := node["content"].([]any)
		if !ok {
			continue
		}
		for _, entry := range content {
			part, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			tag, _ := part["type"].(string)
			if tag != "output_text" && tag != "text" {
				continue
			}
			if text := textPayload(part["text"]); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// textPayload accepts both text encodings.
func textPayload(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if s, ok := v["value"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstChoiceContent reads the flatter legacy shape:
// choices[0].message.content.
func firstChoiceContent(tree any) string {
	root, ok := tree.(map[string]any)
	if !ok {
		return ""
	}
	choices, ok := root["choices"].([]any)
	if !ok || len(choices) == 0 {
		return ""
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return ""
	}
	message, ok := choice["message"].(map[string]any)
	if !ok {
		return ""
	}
	content, _ := message["content"].(string)
	return strings.TrimSpace(content)
}

// bestStringLeaf collects every string leaf in the tree, discards
// identifier-shaped tokens, and prefers a leaf that reads like natural
// language; failing that, the longest survivor wins.
func bestStringLeaf(tree any) string {
	var leaves []string
	collectStringLeaves(tree, 0, &leaves)

	var best, bestProse string
	for _, leaf := range leaves {
		if looksLikeIdentifier(leaf) {
			continue
		}
		if looksLikeProse(leaf) && len(leaf) > len(bestProse) {
			bestProse = leaf
		}
		if len(leaf) > len(best) {
			best = leaf
		}
	}
	if bestProse != "" {
		return bestProse
	}
	return best
}

func collectStringLeaves(node any, depth int, out *[]string) {
	if depth > maxExtractDepth {
		return
	}
	switch v := node.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			*out = append(*out, s)
		}
	case map[string]any:
		for _, child := range v {
			collectStringLeaves(child, depth+1, out)
		}
	case []any:
		for _, child := range v {
			collectStringLeaves(child, depth+1, out)
		}
	}
}

// identifierPrefixes are correlation-id shapes providers embed in
// responses. They superficially look like short answers and must never
// be surfaced to the user.
var identifierPrefixes = []string{"rs_", "resp_", "msg_", "req_", "call_", "chatcmpl-"}

// looksLikeIdentifier reports whether a string matches the opaque-token
// shape: a known id prefix, a bare hex run, or a single short ASCII
// word. Single words in other scripts are left alone so one-word
// answers survive.
func looksLikeIdentifier(s string) bool {
	lower := strings.ToLower(s)
	for _, prefix := range identifierPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	if len(s) >= 12 && isHex(s) {
		return true
	}
	if len(s) <= 30 && !strings.ContainsAny(s, " \t\n") && isASCIIToken(s) {
		return true
	}
	return false
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}

func isASCIIToken(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.' || r == ':' || r == '/':
		default:
			return false
		}
	}
	return len(s) > 0
}

// looksLikeProse reports whether a string reads like natural language:
// non-ASCII letters (Cyrillic answers included), sentence punctuation,
// enough length, or an interior space in a non-trivial string.
func looksLikeProse(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	if strings.ContainsAny(s, ".!?,;:") {
		return true
	}
	if len(s) >= 80 {
		return true
	}
	return strings.Contains(strings.TrimSpace(s), " ") && len(s) > 5
}
