package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("invalid toast type: %s", "info")

	if err.Category != CategoryValidation {
		t.Errorf("expected category %q, got %q", CategoryValidation, err.Category)
	}
	if err.Error() != "invalid toast type: info" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !IsInvalidArgument(err) {
		t.Error("IsInvalidArgument returned false for a validation error")
	}
}

func TestIsInvalidArgumentWrapped(t *testing.T) {
	inner := InvalidArgument("bad value")
	wrapped := fmt.Errorf("running script: %w", inner)

	if !IsInvalidArgument(wrapped) {
		t.Error("IsInvalidArgument should see through fmt.Errorf wrapping")
	}
}

func TestIsInvalidArgumentOtherCategories(t *testing.T) {
	for _, cat := range []Category{CategoryProtocol, CategoryRuntime, CategoryConfig} {
		err := Newf(cat, "boom")
		if IsInvalidArgument(err) {
			t.Errorf("category %q should not be invalid-argument", cat)
		}
	}
	if IsInvalidArgument(errors.New("plain")) {
		t.Error("plain errors are not invalid-argument")
	}
	if IsInvalidArgument(nil) {
		t.Error("nil is not invalid-argument")
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := Newf(CategoryRuntime, "outer").Wrap(sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
}
