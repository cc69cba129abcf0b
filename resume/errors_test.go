package resume

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindValidation, "bad input", nil), errorslib.CategoryValidation, "validation"},
		{NewError(KindParse, "bad json", nil), errorslib.CategoryValidation, "parse"},
		{NewError(KindNotFound, "missing", nil), errorslib.CategoryNotFound, "not_found"},
		{NewError(KindFetch, "offline", nil), errorslib.CategoryOperation, "fetch"},
		{ErrExportInProgress, errorslib.CategoryOperation, "busy"},
		{context.DeadlineExceeded, errorslib.CategoryOperation, "timeout"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{NewError(KindInternal, "boom", nil), errorslib.CategoryInternal, "internal"},
		{errors.New("plain"), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestKindFromError_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewError(KindParse, "decode", errors.New("eof")))
	if KindFromError(err) != KindParse {
		t.Fatalf("expected parse kind, got %v", KindFromError(err))
	}
	if KindFromError(nil) != "" {
		t.Fatalf("expected empty kind for nil")
	}
	wrappedCtx := NewError(KindExport, "export failed", context.DeadlineExceeded)
	if KindFromError(wrappedCtx) != KindTimeout {
		t.Fatalf("expected timeout to win over wrapped kind")
	}
}

func TestError_Message(t *testing.T) {
	if got := NewError(KindFetch, "fetch", errors.New("refused")).Error(); got != "fetch: refused" {
		t.Fatalf("unexpected message %q", got)
	}
	if AsGoError(nil) != nil {
		t.Fatalf("expected nil mapping")
	}
}
