package adminclient

import (
	"context"
	"errors"
	"sync"
)

// ErrConfirmationDeclined is returned by Remove when the confirmation
// hook rejects the deletion. Nothing was sent to the server.
var ErrConfirmationDeclined = errors.New("removal not confirmed")

// catalogAPI is the slice of the API client the catalog store needs.
type catalogAPI interface {
	ListServices(ctx context.Context) ([]Service, error)
	CreateService(ctx context.Context, fields ServiceFields, token string) (*Service, error)
	UpdateService(ctx context.Context, id string, fields ServiceFields, token string) (*Service, error)
	DeleteService(ctx context.Context, id, token string) error
	ReorderServices(ctx context.Context, orderedIDs []string, token string) error
}

// tokenSource supplies the bearer token for mutating calls.
type tokenSource interface {
	Token() string
}

// Catalog owns the client-side copy of the ordered service list. All
// mutations go through the API client and are reconciled by re-fetching;
// the server's order is always authoritative.
type Catalog struct {
	api    catalogAPI
	tokens tokenSource

	mu       sync.Mutex
	services []Service
	lastErr  string
	loading  bool
	seq      uint64

	// submitMu serializes reorder submissions so overlapping moves reach
	// the server in application order.
	submitMu sync.Mutex
}

// NewCatalog creates an empty catalog store. Call Refresh to populate it.
func NewCatalog(api catalogAPI, tokens tokenSource) *Catalog {
	return &Catalog{api: api, tokens: tokens}
}

// Refresh replaces the local list with the server's order verbatim. On
// failure the previous list is kept and the error is recorded, so a
// transient fetch error stays distinguishable from an empty catalog.
// Responses from superseded refreshes are discarded.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.mu.Unlock()

	services, err := c.api.ListServices(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer refresh is in flight or already resolved.
		return nil
	}
	c.loading = false
	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.services = services
	c.lastErr = ""
	return nil
}

// Services returns a copy of the current ordered list.
func (c *Catalog) Services() []Service {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// OrderedIDs returns the current order as the full id permutation.
func (c *Catalog) OrderedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderedIDsLocked()
}

// Err returns the last recorded error message, or empty.
func (c *Catalog) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Loading reports whether a refresh is in flight.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Add validates client-side, creates the service, then refreshes. The new
// item is never spliced in locally: the server assigns its id and
// position.
func (c *Catalog) Add(ctx context.Context, fields ServiceFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if _, err := c.api.CreateService(ctx, fields, c.tokens.Token()); err != nil {
		c.recordErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// Edit validates client-side, updates the service's fields, then
// refreshes. The order is unchanged.
func (c *Catalog) Edit(ctx context.Context, id string, fields ServiceFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if _, err := c.api.UpdateService(ctx, id, fields, c.tokens.Token()); err != nil {
		c.recordErr(err)
		return err
	}
	return c.Refresh(ctx)
}

// Remove deletes a service after the confirmation hook approves it, then
// refreshes. A nil hook skips confirmation.
func (c *Catalog) Remove(ctx context.Context, id string, confirm func(Service) bool) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return &APIError{Kind: KindNotFound, Message: "service not found in the current list"}
	}
	svc := c.services[idx]
	c.mu.Unlock()

	if confirm != nil && !confirm(svc) {
		return ErrConfirmationDeclined
	}

	if err := c.api.DeleteService(ctx, id, c.tokens.Token()); err != nil {
		c.recordErr(err)
		return err
	}
	return c.Refresh(ctx)
}

func (c *Catalog) indexLocked(id string) int {
	for i := range c.services {
		if c.services[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) orderedIDsLocked() []string {
	ids := make([]string, len(c.services))
	for i := range c.services {
		ids[i] = c.services[i].ID
	}
	return ids
}

func (c *Catalog) recordErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err.Error()
}
