package service

import (
	"catalog-service/constant"
	"time"
)

// Identity is the authenticated caller, resolved from the bearer token by the
// HTTP layer and passed explicitly into every operation that needs it.
type Identity struct {
	UserID    uint
	Role      constant.Role
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) Can(c constant.Capability) bool {
	return i.Role.Can(c)
}

// actsFor reports whether the caller may read or write data owned by userID.
func (i Identity) actsFor(userID uint) bool {
	return i.UserID == userID || i.Can(constant.CapTrackAnyUser)
}
