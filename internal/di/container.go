// Package di provides a small lazy service container used to wire modules.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves registered services by name.
type ServiceRegistry interface {
	Get(name string) any
}

// Container registers services and resolves them on first use.
type Container interface {
	ServiceRegistry
	Register(name string, service any)
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type container struct {
	mu        sync.Mutex
	services  map[string]any
	factories map[string]func(ServiceRegistry) any
	resolving map[string]bool
}

// NewContainer returns an empty container.
func NewContainer() Container {
	return &container{
		services:  make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
		resolving: make(map[string]bool),
	}
}

// Register stores a ready-made service instance.
func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterFactory stores a constructor invoked once on first Get.
func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.services, name)
	c.factories[name] = factory
}

// Get returns the named service, building it from its factory if needed.
// It panics on unknown names and on dependency cycles, both of which are
// wiring bugs.
func (c *container) Get(name string) any {
	c.mu.Lock()
	if svc, ok := c.services[name]; ok {
		c.mu.Unlock()
		return svc
	}
	factory, ok := c.factories[name]
	if !ok {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: service %q not registered", name))
	}
	if c.resolving[name] {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: dependency cycle while resolving %q", name))
	}
	c.resolving[name] = true
	c.mu.Unlock()

	// Factories call back into Get, so the lock is released while building.
	svc := factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolving, name)
	if existing, ok := c.services[name]; ok {
		return existing
	}
	c.services[name] = svc
	return svc
}
