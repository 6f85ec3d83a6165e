package adminclient

import "context"

// Direction selects which way Move shifts an item.
type Direction int

const (
	Up Direction = iota
	Down
)

// MoveUp shifts the service one position towards the front.
func (c *Catalog) MoveUp(ctx context.Context, id string) error {
	return c.Move(ctx, id, Up)
}

// MoveDown shifts the service one position towards the back.
func (c *Catalog) MoveDown(ctx context.Context, id string) error {
	return c.Move(ctx, id, Down)
}

// Move shifts a service by one position, applies the new order locally
// before the network call resolves, and submits the full id permutation.
// An unknown id, the first item moved up, and the last item moved down
// are all no-ops with no network call. On a rejected submission the
// catalog reconciles by refreshing from the server rather than undoing
// the local change.
func (c *Catalog) Move(ctx context.Context, id string, dir Direction) error {
	// Overlapping moves queue here and reach the server in call order.
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	delta := -1
	if dir == Down {
		delta = 1
	}

	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}
	target := idx + delta
	if target < 0 || target >= len(c.services) {
		c.mu.Unlock()
		return nil
	}

	// Removing at idx and reinserting at idx±1 is an adjacent swap.
	// Readers see the new order from this point on.
	c.services[idx], c.services[target] = c.services[target], c.services[idx]
	ids := c.orderedIDsLocked()
	c.mu.Unlock()

	if err := c.api.ReorderServices(ctx, ids, c.tokens.Token()); err != nil {
		// Local order may no longer match the server. Re-fetch instead of
		// undoing the swap by hand. The rejection is recorded after the
		// refresh resolves so a clean re-fetch cannot blank it out.
		_ = c.Refresh(ctx)
		c.recordErr(err)
		return err
	}

	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
	return nil
}
