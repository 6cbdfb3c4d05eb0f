package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
	"grocery.GO/model/repository/rest"
)

type UserRepository struct {
	c *rest.Client
}

func NewUserRepository(c *rest.Client) *UserRepository {
	return &UserRepository{c: c}
}

// FindByEmail returns nil when no profile exists. The backend answers either
// with a single document or with a filtered array.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	var raw json.RawMessage
	err := r.c.Get(ctx, "/users", url.Values{"email": {email}}, &raw)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw, email)
}

func (r *UserRepository) Create(ctx context.Context, p entity.UserProfile) (string, error) {
	var res rest.WriteResult
	if err := r.c.Post(ctx, "/users", p, &res); err != nil {
		return "", err
	}
	return res.InsertedID, nil
}

func decodeProfile(raw json.RawMessage, email string) (*entity.UserProfile, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []entity.UserProfile
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, apperr.Transport("user.FindByEmail", err)
		}
		for i := range list {
			if strings.EqualFold(list[i].Email, email) {
				return &list[i], nil
			}
		}
		return nil, nil
	}
	var p entity.UserProfile
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, apperr.Transport("user.FindByEmail", err)
	}
	if p.Email == "" {
		return nil, nil
	}
	return &p, nil
}
