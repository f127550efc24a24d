package handlers

import (
	"time"

	"railbooking/internal/domain"
	"railbooking/internal/repositories"
	"railbooking/internal/services"
)

// DefaultPayTimeout bounds the wait on the payment gateway; hitting it
// counts as a gateway failure and returns the reservation to SeatsHeld.
const DefaultPayTimeout = 30 * time.Second

// API bundles the services the HTTP surface wraps. It adds no
// semantics of its own; every operation is a workflow transition or a
// read accessor.
type API struct {
	Workflow   *services.WorkflowService
	Catalog    domain.Catalog
	Inventory  *services.InventoryService
	Docs       services.DocsService
	Users      repositories.UserStore
	JWTSecret  []byte
	PayTimeout time.Duration
}

func (a *API) payTimeout() time.Duration {
	if a.PayTimeout > 0 {
		return a.PayTimeout
	}
	return DefaultPayTimeout
}
