package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v4"

	"github.com/minetheflag/mtf/models"
	"github.com/minetheflag/mtf/store"
)

// DecodeSubject extracts the sub claim from a bearer token without
// verifying its signature. Decoded claims are advisory only: every
// privileged call re-sends the token to the backend, which validates
// it there. They must never gate an authorization decision locally.
func DecodeSubject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token carries no sub claim")
	}
	return sub, nil
}

// CurrentMember resolves the logged-in participant by matching the
// stored token's subject against the member list. An absent, corrupt,
// or unmatched token resolves to ErrNoSession rather than a raw parse
// failure.
func (c *Client) CurrentMember(ctx context.Context) (*models.Member, error) {
	token, ok := c.store.Token(store.Participant)
	if !ok {
		return nil, ErrNoSession
	}

	usn, err := DecodeSubject(token)
	if err != nil {
		c.logger.Debug("stored participant token is not decodable", slog.Any("error", err))
		return nil, ErrNoSession
	}

	members, err := c.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current member: %w", err)
	}
	for i := range members {
		if members[i].USN == usn {
			return &members[i], nil
		}
	}
	return nil, ErrNoSession
}
