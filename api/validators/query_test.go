package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
)

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/stocks?refresh=true", nil)
	value, err := ParseQueryBool(r, "refresh", false)
	if err != nil || !value {
		t.Fatalf("expected true, got %v err=%v", value, err)
	}

	r = httptest.NewRequest("GET", "/stocks", nil)
	value, err = ParseQueryBool(r, "refresh", false)
	if err != nil || value {
		t.Fatalf("expected default false, got %v err=%v", value, err)
	}

	r = httptest.NewRequest("GET", "/stocks?refresh=maybe", nil)
	_, err = ParseQueryBool(r, "refresh", false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?limit=25", nil)
	value, err := ParseQueryInt(r, "limit", 10, 1, 100)
	if err != nil || value != 25 {
		t.Fatalf("expected 25, got %d err=%v", value, err)
	}

	r = httptest.NewRequest("GET", "/orders", nil)
	value, err = ParseQueryInt(r, "limit", 10, 1, 100)
	if err != nil || value != 10 {
		t.Fatalf("expected default 10, got %d err=%v", value, err)
	}

	r = httptest.NewRequest("GET", "/orders?limit=500", nil)
	if _, err := ParseQueryInt(r, "limit", 10, 1, 100); pkgerrors.As(err) == nil {
		t.Fatal("expected range error")
	}
}
