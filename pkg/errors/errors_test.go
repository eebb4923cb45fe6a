package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code      Code
		status    int
		retryable bool
	}{
		{CodeValidation, http.StatusBadRequest, false},
		{CodeNotFound, http.StatusNotFound, false},
		{CodeConflict, http.StatusConflict, false},
		{CodeStateConflict, http.StatusUnprocessableEntity, false},
		{CodeInternal, http.StatusInternalServerError, true},
		{CodeDependency, http.StatusServiceUnavailable, true},
	}
	for _, tc := range cases {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.Retryable != tc.retryable {
			t.Fatalf("%s: expected retryable=%v", tc.code, tc.retryable)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("MYSTERY"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatal("nil error must not be retryable")
	}
	if IsRetryable(New(CodeValidation, "bad input")) {
		t.Fatal("validation must not be retryable")
	}
	if !IsRetryable(New(CodeDependency, "store unavailable")) {
		t.Fatal("dependency failures must be retryable")
	}
	if !IsRetryable(stdErrors.New("raw network failure")) {
		t.Fatal("untyped errors must default to retryable")
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "stock missing")
	wrapped := fmt.Errorf("looking up sku: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error through fmt wrapping")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
}

func TestWrapKeepsCauseChain(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := Wrap(CodeDependency, cause, "patching record")
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if Wrap(CodeInternal, nil, "no cause").Unwrap() != nil {
		t.Fatal("wrapping nil must not fabricate a cause")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "quantity exceeds available").
		WithDetails(map[string]any{"requested": 10, "available": 4})
	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatal("expected details map")
	}
	if details["requested"] != 10 || details["available"] != 4 {
		t.Fatalf("unexpected details: %v", details)
	}
}

type fakeStoreErr struct{ status int }

func (e *fakeStoreErr) Error() string   { return fmt.Sprintf("store returned %d", e.status) }
func (e *fakeStoreErr) HTTPStatus() int { return e.status }

func TestDumpWalksChainAndStoreStatus(t *testing.T) {
	storeErr := &fakeStoreErr{status: 503}
	err := Wrap(CodeDependency, storeErr, "listing stocks")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("unexpected code: %s", d.Code)
	}
	if d.StoreStatus != 503 {
		t.Fatalf("unexpected store status: %d", d.StoreStatus)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}
	if Dump(nil).TopMessage != "" {
		t.Fatal("expected empty dump for nil error")
	}
}
