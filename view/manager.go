package view

import (
	"sort"

	"github.com/tsawler/tabledit/model"
)

// Factory creates the surface and grip renderer of a newly seen table
type Factory func(tableID string) (Surface, GripRenderer)

// Manager keeps one View per table. It implements editor.Observer, so
// views follow every dispatched change.
type Manager struct {
	factory Factory
	layout  LayoutHost
	opts    []Option
	views   map[string]*View
}

// NewManager creates a manager. Options are applied to every view.
func NewManager(factory Factory, layout LayoutHost, opts ...Option) *Manager {
	return &Manager{
		factory: factory,
		layout:  layout,
		opts:    opts,
		views:   make(map[string]*View),
	}
}

// View returns the view of a table
func (m *Manager) View(id string) (*View, bool) {
	v, ok := m.views[id]
	return v, ok
}

// IDs returns the ids of all managed tables, sorted
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.views))
	for id := range m.views {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sync brings the managed views in line with tables: every table is
// updated and views of tables no longer present are dropped.
func (m *Manager) Sync(tables []*model.Table) {
	seen := make(map[string]bool, len(tables))
	for _, t := range tables {
		seen[t.ID] = true
		m.TableChanged(t)
	}
	for id := range m.views {
		if !seen[id] {
			m.TableRemoved(id)
		}
	}
}

// TableChanged implements editor.Observer
func (m *Manager) TableChanged(t *model.Table) {
	if t == nil {
		return
	}
	v, ok := m.views[t.ID]
	if !ok {
		surface, grips := m.factory(t.ID)
		v = New(surface, grips, m.layout, m.opts...)
		m.views[t.ID] = v
	}
	v.Update(t)
}

// TableRemoved implements editor.Observer
func (m *Manager) TableRemoved(id string) {
	v, ok := m.views[id]
	if !ok {
		return
	}
	v.reset()
	delete(m.views, id)
}
