// Package account runs the signup, login and logout flows. It is the only
// writer of a session's identity.
package account

import (
	"context"
	"io"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"grocery.GO/core/apperr"
	"grocery.GO/core/notify"
	"grocery.GO/core/session"
	"grocery.GO/model/entity"
	"grocery.GO/service/identity"
	"grocery.GO/service/upload"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	Create(ctx context.Context, p entity.UserProfile) (string, error)
}

type Service struct {
	provider identity.Provider
	uploader upload.Uploader
	users    UserStore
	log      *zap.Logger
}

// New builds the account flows. uploader may be nil, in which case avatars are
// rejected.
func New(p identity.Provider, u upload.Uploader, users UserStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: p, uploader: u, users: users, log: log}
}

type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	DeliveryAddress *entity.DeliveryAddress
	// Avatar is optional.
	Avatar     io.Reader
	AvatarName string
}

func validateSignup(req SignupRequest) error {
	const op = "account.Signup"
	if strings.TrimSpace(req.Name) == "" {
		return apperr.Validation(op, "Name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperr.Validation(op, "Email is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperr.Validation(op, "Invalid email address")
	}
	if req.Password == "" {
		return apperr.Validation(op, "Password is required")
	}
	if req.Password != req.ConfirmPassword {
		return apperr.Validation(op, "Passwords do not match")
	}
	return nil
}

// Signup creates the provider account, signs the session in and records the
// profile. A profile write failure leaves the user signed in.
func (s *Service) Signup(ctx context.Context, l *session.Listener, n notify.Notifier, req SignupRequest) (*entity.UserProfile, error) {
	if err := validateSignup(req); err != nil {
		n.Notify(notify.FromError("signup", err, ""))
		return nil, err
	}

	var pic *string
	if req.Avatar != nil {
		if s.uploader == nil {
			err := apperr.Validation("account.Signup", "Profile pictures are not supported")
			n.Notify(notify.FromError("signup", err, ""))
			return nil, err
		}
		u, err := s.uploader.Upload(ctx, req.AvatarName, req.Avatar)
		if err != nil {
			n.Notify(notify.FromError("signup", err, "Could not upload profile picture"))
			return nil, err
		}
		pic = &u
	}

	email := strings.TrimSpace(req.Email)
	ident, err := s.provider.SignUp(ctx, email, req.Password)
	if err != nil {
		n.Notify(notify.FromError("signup", err, "Could not create your account"))
		return nil, err
	}
	ident.DisplayName = strings.TrimSpace(req.Name)
	if err := l.Authenticated(ctx, ident); err != nil {
		s.log.Warn("session not persisted", zap.String("email", ident.Email), zap.Error(err))
	}

	profile := entity.UserProfile{
		Email:           ident.Email,
		Name:            ident.DisplayName,
		ProfilePic:      pic,
		DeliveryAddress: req.DeliveryAddress,
	}
	id, err := s.users.Create(ctx, profile)
	if err != nil {
		n.Notify(notify.FromError("signup", err, "Account created, but your profile could not be saved"))
		return nil, err
	}
	profile.ID = id
	n.Notify(notify.Success("signup", "Account created successfully"))
	return &profile, nil
}

func (s *Service) Login(ctx context.Context, l *session.Listener, n notify.Notifier, email, password string) (entity.Identity, error) {
	const op = "account.Login"
	if strings.TrimSpace(email) == "" || password == "" {
		err := apperr.Validation(op, "Email and password are required")
		n.Notify(notify.FromError("login", err, ""))
		return entity.Identity{}, err
	}
	ident, err := s.provider.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		n.Notify(notify.FromError("login", err, "Could not sign you in"))
		return entity.Identity{}, err
	}
	if p, err := s.users.FindByEmail(ctx, ident.Email); err == nil && p != nil && ident.DisplayName == "" {
		ident.DisplayName = p.Name
	}
	if err := l.Authenticated(ctx, ident); err != nil {
		s.log.Warn("session not persisted", zap.String("email", ident.Email), zap.Error(err))
	}
	n.Notify(notify.Success("login", "Logged in successfully"))
	return ident, nil
}

func (s *Service) Logout(ctx context.Context, sess *session.Session, l *session.Listener, n notify.Notifier) error {
	if ident, ok := sess.Identity(); ok {
		if err := s.provider.SignOut(ctx, ident); err != nil {
			s.log.Warn("provider sign out failed", zap.Error(err))
		}
	}
	if err := l.SignedOut(ctx); err != nil {
		n.Notify(notify.FromError("logout", err, "Could not sign you out"))
		return err
	}
	n.Notify(notify.Success("logout", "Logged out"))
	return nil
}

// Restore re-validates a stored identity with the provider and clears it if
// the provider no longer accepts it. Transport failures keep the session.
func (s *Service) Restore(ctx context.Context, sess *session.Session, l *session.Listener) error {
	ident, ok := sess.Identity()
	if !ok || ident.IDToken == "" {
		return nil
	}
	fresh, err := s.provider.Restore(ctx, ident.IDToken)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthenticated {
			return l.SignedOut(ctx)
		}
		return err
	}
	if fresh.DisplayName == "" {
		fresh.DisplayName = ident.DisplayName
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = ident.RefreshToken
	}
	return l.Authenticated(ctx, fresh)
}

// Profile returns the signed-in user's profile, or an unauthenticated error.
func (s *Service) Profile(ctx context.Context, sess *session.Session) (*entity.UserProfile, error) {
	email := sess.Email()
	if email == "" {
		return nil, apperr.Unauthenticated("account.Profile", "Please log in")
	}
	p, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		ident, _ := sess.Identity()
		return &entity.UserProfile{Email: email, Name: ident.DisplayName}, nil
	}
	return p, nil
}
