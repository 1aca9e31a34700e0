package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "beautify/pkg/errors"
	httputil "beautify/pkg/http"
	"beautify/pkg/logger"
	"beautify/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const identityKey contextKey = "identity"

// RoleChecker answers whether an email holds the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type Gate struct {
	tokens *TokenIssuer
	roles  RoleChecker
	log    *logger.Logger
}

func NewGate(tokens *TokenIssuer, roles RoleChecker, log *logger.Logger) *Gate {
	return &Gate{
		tokens: tokens,
		roles:  roles,
		log:    log,
	}
}

// Authenticate resolves the bearer credential on r.
func (g *Gate) Authenticate(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, apperrors.Unauthenticated("Unauthorized access")
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Identity{}, apperrors.Unauthenticated("Unauthorized access")
	}

	return g.tokens.Verify(strings.TrimSpace(token))
}

// RequireAdmin performs one role read for email.
func (g *Gate) RequireAdmin(ctx context.Context, email string) error {
	isAdmin, err := g.roles.IsAdmin(ctx, email)
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.StorageUnavailable("failed to load requester role", err)
	}
	if !isAdmin {
		return apperrors.Forbidden("Forbidden access")
	}
	return nil
}

// RequireSelf fails unless the caller owns the resource. The mismatch is a
// Forbidden answered with 401, the status the patient booking listing uses.
func RequireSelf(identity Identity, ownerEmail string) error {
	if identity.Email == "" || identity.Email != sanitizer.NormalizeEmail(ownerEmail) {
		return apperrors.Forbidden("Unauthorized access").WithStatus(http.StatusUnauthorized)
	}
	return nil
}

// Authenticated runs h only for requests carrying a valid credential. The
// identity is available to h through IdentityFromContext.
func (g *Gate) Authenticated(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, err := g.Authenticate(r)
		if err != nil {
			g.deny(w, r, err)
			return
		}
		h(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
	}
}

// Admin is Authenticated followed by RequireAdmin.
func (g *Gate) Admin(h httprouter.Handle) httprouter.Handle {
	return g.Authenticated(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, _ := IdentityFromContext(r.Context())
		if err := g.RequireAdmin(r.Context(), identity.Email); err != nil {
			g.deny(w, r, err)
			return
		}
		h(w, r, ps)
	})
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.Code == apperrors.CodeStorage {
		g.log.Error("Access check failed", "path", r.URL.Path, "error", err)
	} else {
		g.log.Warn("Access denied", "path", r.URL.Path, "code", appErr.Code)
	}
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		g.log.Error("failed to write error response", "handler", "Gate", "operation", "WriteError", "error", writeErr)
	}
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
