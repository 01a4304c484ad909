package main

import "testing"

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"name=v1", "location=eu-west", "note=a=b"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got["name"] != "v1" || got["location"] != "eu-west" {
		t.Fatalf("unexpected args: %v", got)
	}
	// Only the first '=' splits; the rest belongs to the value.
	if got["note"] != "a=b" {
		t.Fatalf("expected value to keep embedded '=', got %q", got["note"])
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	for _, bad := range []string{"novalue", "=v", "  =v"} {
		if _, err := parseArgs([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseArgs_Empty(t *testing.T) {
	got, err := parseArgs(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty args, got %v %v", got, err)
	}
}
