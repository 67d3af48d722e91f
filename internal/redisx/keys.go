package redisx

import "time"

const (
	// Idempotent checkout: idem:checkout:{buyer_id}:{idempotency_key} -> order_id
	KeyIdemCheckout = "idem:checkout:%s:%s"

	// Seller notification feed cache: notif:seller:{seller_id}:{limit} -> JSON array.
	// The limit is part of the key so differently sized reads never share a slot.
	KeyNotifFeed = "notif:seller:%s:%d"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLNotifFeed   = 30 * time.Second
	TTLDedup       = 48 * time.Hour
)
