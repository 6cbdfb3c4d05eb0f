package identity

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"

	"grocery.GO/core/apperr"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		want error
		msg  string
	}{
		{&googleapi.Error{Code: http.StatusBadRequest, Message: "EMAIL_EXISTS"}, apperr.ErrValidation, "Email already in use"},
		{&googleapi.Error{Code: http.StatusBadRequest, Message: "WEAK_PASSWORD : Password should be at least 6 characters"}, apperr.ErrValidation, "Password should be at least 6 characters"},
		{&googleapi.Error{Code: http.StatusBadRequest, Message: "INVALID_LOGIN_CREDENTIALS"}, apperr.ErrUnauthenticated, "Invalid email or password"},
		{&googleapi.Error{Code: http.StatusInternalServerError, Message: "BACKEND_ERROR"}, apperr.ErrTransport, ""},
		{errors.New("dial tcp: refused"), apperr.ErrTransport, ""},
	}
	for _, tc := range cases {
		got := mapError("op", tc.err)
		if !errors.Is(got, tc.want) {
			t.Errorf("mapError(%v) = %v, want %v", tc.err, got, tc.want)
		}
		if m := apperr.MessageOf(got, ""); m != tc.msg {
			t.Errorf("message = %q, want %q", m, tc.msg)
		}
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.SignUp(ctx, "a@x.io", "123"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("weak password err = %v", err)
	}
	ident, err := m.SignUp(ctx, "A@x.io", "secret1")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if ident.Email != "a@x.io" || ident.IDToken == "" {
		t.Errorf("identity = %+v", ident)
	}
	if _, err := m.SignUp(ctx, "a@x.io", "secret1"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("duplicate err = %v", err)
	}
	if _, err := m.SignIn(ctx, "a@x.io", "wrong"); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("bad password err = %v", err)
	}
	in, err := m.SignIn(ctx, "a@x.io", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	restored, err := m.Restore(ctx, in.IDToken)
	if err != nil || restored.Email != "a@x.io" {
		t.Errorf("Restore = %+v, %v", restored, err)
	}
	m.SignOut(ctx, in)
	if _, err := m.Restore(ctx, in.IDToken); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("restore after sign out err = %v", err)
	}
}
