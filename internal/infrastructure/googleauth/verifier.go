// Package googleauth validates Google ID tokens for social sign-in.
package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

func (v *Verifier) Verify(ctx context.Context, token string) (*usecase.GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google id token: %w", err)
	}

	profile := &usecase.GoogleProfile{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		profile.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		profile.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		profile.Picture = picture
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google id token has no email claim")
	}
	return profile, nil
}
