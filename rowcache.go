package listview

import "fmt"

// RowCache pools rows per template id.
type RowCache[T any] struct {
	container Container
	renderers map[string]Renderer[T]
	pools     map[string][]*Row

	inTransaction  bool
	pendingRemoval []Node
	pending        map[Node]struct{}
}

// NewRowCache returns a cache building rows in container with renderers.
func NewRowCache[T any](container Container, renderers map[string]Renderer[T]) *RowCache[T] {
	return &RowCache[T]{
		container: container,
		renderers: renderers,
		pools:     make(map[string][]*Row),
		pending:   make(map[Node]struct{}),
	}
}

// Alloc returns a row for templateID. The flag reports that the pooled row's
// node is still attached because its removal was deferred by the current
// transaction.
func (c *RowCache[T]) Alloc(templateID string) (*Row, bool) {
	pool := c.pools[templateID]
	if n := len(pool); n > 0 {
		row := pool[n-1]
		pool[n-1] = nil
		c.pools[templateID] = pool[:n-1]

		_, stale := c.pending[row.Node]
		if stale {
			c.unqueue(row.Node)
		}
		return row, stale
	}

	renderer := c.renderer(templateID)
	node := c.container.NewNode()
	return &Row{Node: node, TemplateID: templateID, Template: renderer.RenderTemplate(node)}, false
}

// Release returns row to its pool and detaches its node, immediately or at
// the end of the current transaction.
func (c *RowCache[T]) Release(row *Row) {
	if row == nil {
		return
	}
	if row.Node != nil {
		if c.inTransaction {
			if _, ok := c.pending[row.Node]; !ok {
				c.pending[row.Node] = struct{}{}
				c.pendingRemoval = append(c.pendingRemoval, row.Node)
			}
		} else {
			c.removeNode(row.Node)
		}
	}
	c.pools[row.TemplateID] = append(c.pools[row.TemplateID], row)
}

// Transact runs fn and defers node removal until fn returns.
func (c *RowCache[T]) Transact(fn func()) {
	if c.inTransaction {
		panic(ErrInTransaction)
	}
	c.inTransaction = true
	defer func() {
		for _, node := range c.pendingRemoval {
			c.removeNode(node)
		}
		c.pendingRemoval = nil
		clear(c.pending)
		c.inTransaction = false
	}()
	fn()
}

// Pooled returns the number of rows waiting in the pool of templateID.
func (c *RowCache[T]) Pooled(templateID string) int {
	return len(c.pools[templateID])
}

// Dispose tears down the template state of every pooled row.
func (c *RowCache[T]) Dispose() {
	for templateID, pool := range c.pools {
		renderer := c.renderer(templateID)
		for _, row := range pool {
			renderer.DisposeTemplate(row.Template)
			row.Template = nil
		}
	}
	clear(c.pools)
	c.pendingRemoval = nil
	clear(c.pending)
}

// renderer returns the renderer of templateID or panics.
func (c *RowCache[T]) renderer(templateID string) Renderer[T] {
	renderer, ok := c.renderers[templateID]
	if !ok {
		panic(fmt.Errorf("%w for %q", ErrNoRenderer, templateID))
	}
	return renderer
}

func (c *RowCache[T]) unqueue(node Node) {
	delete(c.pending, node)
	for i, n := range c.pendingRemoval {
		if n == node {
			c.pendingRemoval = append(c.pendingRemoval[:i], c.pendingRemoval[i+1:]...)
			return
		}
	}
}

func (c *RowCache[T]) removeNode(node Node) {
	if c.container.Contains(node) {
		c.container.Remove(node)
	}
}
