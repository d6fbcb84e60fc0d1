package constant

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSubscriber Role = "subscriber"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSubscriber:
		return Role(s), true
	}
	return "", false
}

type Capability string

const (
	CapManageCatalog       Capability = "catalog:manage"
	CapManageSubscriptions Capability = "subscriptions:manage"
	CapManageSettings      Capability = "settings:manage"
	CapEngage              Capability = "content:engage"
	CapTrackProgress       Capability = "progress:track"
	CapTrackAnyUser        Capability = "progress:any_user"
	CapCheckout            Capability = "checkout"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleAdmin: {
		CapManageCatalog:       {},
		CapManageSubscriptions: {},
		CapManageSettings:      {},
		CapTrackProgress:       {},
		CapTrackAnyUser:        {},
	},
	RoleSubscriber: {
		CapEngage:        {},
		CapTrackProgress: {},
		CapCheckout:      {},
	},
}

func (r Role) Can(c Capability) bool {
	_, ok := roleCapabilities[r][c]
	return ok
}
