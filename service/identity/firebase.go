package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
)

// Firebase talks to the Identity Toolkit REST API with a web API key.
type Firebase struct {
	svc *identitytoolkit.Service
}

func NewFirebase(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Firebase, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("identity: AUTH_API_KEY is not set")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	return &Firebase{svc: svc}, nil
}

func (f *Firebase) SignUp(ctx context.Context, email, password string) (entity.Identity, error) {
	resp, err := f.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return entity.Identity{}, mapError("identity.SignUp", err)
	}
	return entity.Identity{
		UID:          resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (entity.Identity, error) {
	resp, err := f.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return entity.Identity{}, mapError("identity.SignIn", err)
	}
	return entity.Identity{
		UID:          resp.LocalId,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// SignOut is local: id tokens expire on their own.
func (f *Firebase) SignOut(context.Context, entity.Identity) error {
	return nil
}

func (f *Firebase) Restore(ctx context.Context, idToken string) (entity.Identity, error) {
	resp, err := f.svc.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return entity.Identity{}, mapError("identity.Restore", err)
	}
	if len(resp.Users) == 0 {
		return entity.Identity{}, apperr.Unauthenticated("identity.Restore", "Session expired")
	}
	u := resp.Users[0]
	return entity.Identity{UID: u.LocalId, Email: u.Email, DisplayName: u.DisplayName, IDToken: idToken}, nil
}

var providerMessages = map[string]struct {
	kind    apperr.Kind
	message string
}{
	"EMAIL_EXISTS":              {apperr.KindValidation, "Email already in use"},
	"INVALID_EMAIL":             {apperr.KindValidation, "Invalid email address"},
	"WEAK_PASSWORD":             {apperr.KindValidation, "Password should be at least 6 characters"},
	"MISSING_PASSWORD":          {apperr.KindValidation, "Password is required"},
	"EMAIL_NOT_FOUND":           {apperr.KindUnauthenticated, "Invalid email or password"},
	"INVALID_PASSWORD":          {apperr.KindUnauthenticated, "Invalid email or password"},
	"INVALID_LOGIN_CREDENTIALS": {apperr.KindUnauthenticated, "Invalid email or password"},
	"USER_DISABLED":             {apperr.KindUnauthenticated, "This account has been disabled"},
	"INVALID_ID_TOKEN":          {apperr.KindUnauthenticated, "Session expired"},
	"TOKEN_EXPIRED":             {apperr.KindUnauthenticated, "Session expired"},
}

// mapError turns Identity Toolkit error codes ("WEAK_PASSWORD : ...") into
// user-facing failures. Anything else is a transport failure.
func mapError(op string, err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return apperr.Transport(op, err)
	}
	code := gerr.Message
	if i := strings.Index(code, " "); i > 0 {
		code = code[:i]
	}
	if m, ok := providerMessages[code]; ok {
		return &apperr.Error{Op: op, Kind: m.kind, Message: m.message, Err: err}
	}
	return apperr.Transport(op, err)
}
