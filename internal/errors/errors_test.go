package errors

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(errors.New("db down")); got != "Error: db down" {
		t.Errorf("Format = %q, want %q", got, "Error: db down")
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("task %s not found", "t1")
	if got != "Error: task t1 not found" {
		t.Errorf("Formatf = %q, want %q", got, "Error: task t1 not found")
	}
}
