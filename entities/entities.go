package entities

// All returns every model owned by the service, in migration order.
func All() []any {
	return []any{
		&User{},
		&Genre{},
		&Content{},
		&ProgressEvent{},
		&DeviceProgress{},
		&History{},
		&Like{},
		&Wishlist{},
		&Subscription{},
		&Job{},
	}
}
