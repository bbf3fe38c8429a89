package guestname

import (
	"strconv"
	"strings"
	"testing"

	"campuswordle/internal/validation"
)

func TestGenerateShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		name := Generate()
		parts := strings.Split(name, "_")
		if len(parts) != 2 {
			t.Fatalf("Generate() = %q, want adjective_animal", name)
		}
		if parts[0] == "" || parts[1] == "" {
			t.Fatalf("Generate() = %q has an empty part", name)
		}
	}
}

func TestGenerateIsValidUsername(t *testing.T) {
	for i := 0; i < 100; i++ {
		name := Generate()
		if err := validation.ValidateUsername(name); err != nil {
			t.Fatalf("Generate() = %q fails username validation: %v", name, err)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	for i := 0; i < 100; i++ {
		name := WithSuffix("happy_otter")
		if !strings.HasPrefix(name, "happy_otter_") {
			t.Fatalf("WithSuffix() = %q, want happy_otter_N", name)
		}
		suffix := strings.TrimPrefix(name, "happy_otter_")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			t.Fatalf("suffix %q is not numeric", suffix)
		}
		if n < 0 || n > 999 {
			t.Fatalf("suffix %d out of range", n)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[Generate()] = true
	}
	if len(seen) < 2 {
		t.Error("Generate() returned the same name every time")
	}
}
