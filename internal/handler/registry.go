package handler

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// binding ties tag names to one registration of a handler.
type binding struct {
	handler Handler
}

// Registry maps tag names to handlers. Several names may share a handler.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]*binding),
	}
}

// Register binds every tag name of h to h, replacing earlier bindings.
func (r *Registry) Register(h Handler) error {
	if h == nil {
		return fmt.Errorf("cannot register nil handler")
	}
	names := h.TagNames()
	if len(names) == 0 {
		return fmt.Errorf("handler %T declares no tag names", h)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b := &binding{handler: h}
	for _, name := range names {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, exists := r.bindings[key]; !exists {
			r.order = append(r.order, key)
		}
		r.bindings[key] = b
	}
	return nil
}

// Lookup returns the handler bound to name, ignoring case.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bindings[normalize(name)]
	if !ok {
		return nil, false
	}
	return b.handler, true
}

// Supports checks if a handler is bound to name.
func (r *Registry) Supports(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Remove unbinds the handler found under name from every tag it serves.
// It reports whether anything was removed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.bindings[normalize(name)]
	if !ok {
		return false
	}

	for key, b := range r.bindings {
		if b == target || sameHandler(b.handler, target.handler) {
			delete(r.bindings, key)
		}
	}
	r.order = slices.DeleteFunc(r.order, func(key string) bool {
		_, kept := r.bindings[key]
		return !kept
	})
	return true
}

// Clear removes all bindings.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings = make(map[string]*binding)
	r.order = nil
}

// SupportedTags returns all bound tag names in registration order.
func (r *Registry) SupportedTags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Count returns the number of bound tag names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Clone returns an independent registry with the same bindings.
// Handlers are shared; they are stateless.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Registry{
		bindings: make(map[string]*binding, len(r.bindings)),
		order:    slices.Clone(r.order),
	}
	copies := make(map[*binding]*binding)
	for key, b := range r.bindings {
		nb, ok := copies[b]
		if !ok {
			nb = &binding{handler: b.handler}
			copies[b] = nb
		}
		c.bindings[key] = nb
	}
	return c
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// sameHandler compares handler values when their dynamic type allows it.
func sameHandler(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
