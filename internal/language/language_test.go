package language

import "testing"

func TestLookupKnownCodes(t *testing.T) {
	for _, code := range Codes() {
		info, ok := Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%q) returned not found", code)
		}
		if info.Code != code {
			t.Fatalf("Lookup(%q) returned code %q", code, info.Code)
		}
		if info.Name == "" || info.Context == "" {
			t.Fatalf("registry entry %q missing name or context", code)
		}
		if info.Tag().IsRoot() {
			t.Fatalf("registry entry %q has no parsed tag", code)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	info, ok := Lookup("ZH-cn")
	if !ok {
		t.Fatal("expected zh-CN lookup to succeed regardless of case")
	}
	if info.Code != "zh-CN" {
		t.Fatalf("unexpected code %q", info.Code)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("xx"); ok {
		t.Fatal("expected unknown code to fail lookup")
	}
	if Supported("") {
		t.Fatal("empty code must not be supported")
	}
}

func TestCodesOrderStable(t *testing.T) {
	codes := Codes()
	if len(codes) != 14 {
		t.Fatalf("expected 14 registered languages, got %d", len(codes))
	}
	if codes[0] != "ja" || codes[1] != "en" {
		t.Fatalf("registry order changed: %v", codes[:2])
	}
}
