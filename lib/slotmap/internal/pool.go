package internal

// --------------------------------------------------------------------------
// Node Pool
// --------------------------------------------------------------------------

// defaultPoolCap bounds how many recycled nodes a shard keeps around.
// Beyond this the nodes are left to the garbage collector.
const defaultPoolCap = 1024

// node is the heap cell a stored value lives in. Keeping values behind a
// stable pointer lets a shard hand out in-place references to callbacks and
// recycle the cell after removal.
type node[V any] struct {
	val V
}

// nodePool is a free list of entry nodes private to one shard. It is only
// ever touched while the owning shard's write lock is held, so it needs no
// synchronization of its own. A pool with capacity zero is disabled: Get
// always allocates and Put always drops.
type nodePool[V any] struct {
	free []*node[V]
	cap  int
}

func newNodePool[V any](capacity int) nodePool[V] {
	return nodePool[V]{cap: capacity}
}

// Get returns a recycled node if one is available, otherwise a fresh one.
func (p *nodePool[V]) Get() *node[V] {
	if n := len(p.free); n > 0 {
		nd := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return nd
	}
	return new(node[V])
}

// Put zeroes a node and returns it to the free list. The zeroing is required
// so a recycled node does not keep the removed value alive.
func (p *nodePool[V]) Put(nd *node[V]) {
	var zero V
	nd.val = zero
	if len(p.free) >= p.cap {
		return
	}
	p.free = append(p.free, nd)
}

// Len reports how many nodes are currently parked in the free list.
func (p *nodePool[V]) Len() int {
	return len(p.free)
}
