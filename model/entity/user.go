package entity

import "encoding/json"

// UserProfile is the backend's record of a customer.
type UserProfile struct {
	ID              string           `json:"_id,omitempty"`
	Email           string           `json:"email"`
	Name            string           `json:"name"`
	ProfilePic      *string          `json:"profilePic"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
}

func (u *UserProfile) UnmarshalJSON(data []byte) error {
	type alias UserProfile
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = wireID(u.ID, aux.AltID)
	return nil
}

// Identity is what the authentication provider hands back after signup,
// login or session restore. Only Email is relied on by the storefront.
type Identity struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName,omitempty"`
	IDToken      string `json:"idToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
