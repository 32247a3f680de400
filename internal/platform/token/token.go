// Package token issues and parses the JWT session tokens carried by the
// boundary layer. Claims carry the user ID plus the role and raw scope
// columns so handlers can authorize without a user lookup on every request.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pobimgroup/election-dashboard/internal/domain"
	"github.com/pobimgroup/election-dashboard/internal/rbac"
)

type Claims struct {
	UserID     string    `json:"user_id"`
	CitizenID  string    `json:"citizen_id,omitempty"`
	Name       string    `json:"name"`
	Role       rbac.Role `json:"role"`
	RegionID   string    `json:"region_id,omitempty"`
	ProvinceID string    `json:"province_id,omitempty"`
	DistrictID string    `json:"district_id,omitempty"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) Issuer {
	return Issuer{secret: []byte(secret), ttl: ttl}
}

func (i Issuer) Generate(u domain.User, now time.Time) (string, error) {
	claims := &Claims{
		UserID: string(u.ID),
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if u.CitizenID != nil {
		claims.CitizenID = *u.CitizenID
	}
	if u.ScopeRegionID != nil {
		claims.RegionID = string(*u.ScopeRegionID)
	}
	if u.ScopeProvinceID != nil {
		claims.ProvinceID = string(*u.ScopeProvinceID)
	}
	if u.ScopeDistrictID != nil {
		claims.DistrictID = string(*u.ScopeDistrictID)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

func (i Issuer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthenticated)
	}

	claims, ok := t.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("%w: malformed claims", domain.ErrUnauthenticated)
	}
	return claims, nil
}

// User reconstructs the domain user the claims were issued for.
func (c *Claims) User() domain.User {
	u := domain.User{
		ID:   domain.UserID(c.UserID),
		Name: c.Name,
		Role: c.Role,
	}
	if c.CitizenID != "" {
		cid := c.CitizenID
		u.CitizenID = &cid
	}
	if c.RegionID != "" {
		id := domain.RegionID(c.RegionID)
		u.ScopeRegionID = &id
	}
	if c.ProvinceID != "" {
		id := domain.ProvinceID(c.ProvinceID)
		u.ScopeProvinceID = &id
	}
	if c.DistrictID != "" {
		id := domain.DistrictID(c.DistrictID)
		u.ScopeDistrictID = &id
	}
	return u
}
