// file: utils/code_generator_test.go
package utils

import (
	"strings"
	"testing"
)

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := GenerateJoinCode(6)
		if len(code) != 6 {
			t.Fatalf("expected 6-char code, got %q", code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(charset, ch) {
				t.Fatalf("code %q contains character outside charset", code)
			}
		}
		seen[code] = true
	}
	// 1000 次生成全部撞车的概率可以忽略不计
	if len(seen) < 2 {
		t.Fatalf("generator produced no variety: %d distinct codes", len(seen))
	}
}

func TestGenerateObjectKey(t *testing.T) {
	key := GenerateObjectKey("receipt.png")
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected original extension to be kept, got %q", key)
	}
	if key == GenerateObjectKey("receipt.png") {
		t.Fatalf("object keys must not repeat")
	}
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		t.Fatalf("object key %q must not contain path separators", key)
	}
}
