package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("bad id"), want: http.StatusBadRequest},
		{name: "unauthenticated", err: Unauthenticated("missing token"), want: http.StatusUnauthorized},
		{name: "forbidden", err: Forbidden("admin only"), want: http.StatusForbidden},
		{name: "not_found", err: NotFound("no such product"), want: http.StatusNotFound},
		{name: "conflict", err: Conflict("sku taken"), want: http.StatusConflict},
		{name: "internal", err: Internal(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "plain_error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("outer: %w", NotFound("gone")), want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Fatalf("StatusOf(%v)=%d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Conflict("dup")); got != "conflict" {
		t.Fatalf("CodeOf=%q, want conflict", got)
	}
	if got := CodeOf(errors.New("boom")); got != "internal" {
		t.Fatalf("CodeOf=%q, want internal", got)
	}
}
