// Package auth decides whether an authenticated administrator may act on
// an establishment. The decision is made fresh on every request.
package auth

import (
	"errors"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
)

// ErrForbidden means the administrator is authenticated but does not own
// the target establishment. Distinct from an authentication failure so
// clients can tell "log in again" apart from "you lack permission".
var ErrForbidden = errors.New("access denied")

// ErrUnauthenticated means no administrator identity reached the guard.
var ErrUnauthenticated = errors.New("authentication required")

// Guard enforces the ownership rule between administrators and
// establishments
type Guard struct {
	establishments *store.EstablishmentStore
}

// NewGuard creates an ownership guard backed by the establishment store
func NewGuard(establishments *store.EstablishmentStore) *Guard {
	return &Guard{establishments: establishments}
}

// Authorize loads the target establishment and decides whether the
// administrator may act on it. The superadmin role allows any
// establishment; everyone else must own the record. Returns the loaded
// record on allow so callers do not fetch it twice.
func (g *Guard) Authorize(admin *model.Administrator, establishmentID uint) (*model.Establishment, error) {
	est, err := g.establishments.FindByID(establishmentID)
	if err != nil {
		return nil, err
	}
	if admin.IsElevated() {
		return est, nil
	}
	if est.OwnerID != admin.ID {
		return nil, ErrForbidden
	}
	return est, nil
}
