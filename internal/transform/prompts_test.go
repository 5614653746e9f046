package transform

import (
	"strings"
	"testing"
)

func TestBuildPrompt_BuiltInIntents(t *testing.T) {
	for _, intent := range []Intent{IntentExpand, IntentSummarize, IntentPoetic} {
		out, err := buildPrompt(intent, "", "the note text")
		if err != nil {
			t.Errorf("buildPrompt(%s): %v", intent, err)
			continue
		}
		if !strings.Contains(out, "the note text") {
			t.Errorf("%s prompt missing content:\n%s", intent, out)
		}
	}
}

func TestBuildPrompt_CustomUsesInstruction(t *testing.T) {
	out, err := buildPrompt(IntentCustom, "Translate to pirate speak", "ahoy")
	if err != nil {
		t.Fatalf("buildPrompt: %v", err)
	}
	if !strings.Contains(out, "Translate to pirate speak") || !strings.Contains(out, "ahoy") {
		t.Errorf("prompt = %q", out)
	}
}

func TestBuildPrompt_UnknownIntent(t *testing.T) {
	if _, err := buildPrompt(Intent("levitate"), "", "x"); err == nil {
		t.Error("expected error for unknown intent")
	}
}

func TestCapContent_TrimsMiddle(t *testing.T) {
	head := strings.Repeat("a", 600)
	tail := strings.Repeat("z", 600)
	out := capContent(head+tail, 1000)
	if len(out) >= 1200 {
		t.Errorf("len(out) = %d, not trimmed", len(out))
	}
	if !strings.HasPrefix(out, "aaaa") || !strings.HasSuffix(out, "zzzz") {
		t.Error("trim did not keep head and tail")
	}
	if !strings.Contains(out, "trimmed") {
		t.Error("no trim marker")
	}
}

func TestCapContent_SmallInputUntouched(t *testing.T) {
	if out := capContent("short", 1000); out != "short" {
		t.Errorf("out = %q", out)
	}
}
