// Package navigator is the navigation engine: a state machine that turns a
// parsed database and abstract key events into a bounded, renderable view.
//
// The engine never performs I/O. Renderers feed events through Engine.Step
// (or the pure Step function) and draw the returned ViewModel.
//
//	eng := navigator.New(db, navigator.Config{Width: 120, Height: 40})
//	vm := eng.Step(navigator.SelectTable("movies"))
//	vm = eng.Step(navigator.Next())
package navigator

import "github.com/leapstack-labs/dumpnav/pkg/core"

// Engine holds one navigation session over a database. It is not safe for
// concurrent use; events must be applied one at a time.
type Engine struct {
	db    *core.Database
	cfg   Config
	state State
	view  ViewModel
}

// New starts a session over db.
func New(db *core.Database, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{db: db, cfg: cfg, state: NewState(db, cfg)}
	e.state, e.view = Step(db, cfg, e.state, Event{Kind: EventNone})
	return e
}

// Step applies ev and returns the new view.
func (e *Engine) Step(ev Event) ViewModel {
	e.state, e.view = Step(e.db, e.cfg, e.state, ev)
	return e.view
}

// View returns the current view.
func (e *Engine) View() ViewModel {
	return e.view
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Database returns the database being navigated.
func (e *Engine) Database() *core.Database {
	return e.db
}

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// Done reports whether a Quit event has been applied.
func (e *Engine) Done() bool {
	return e.state.Quit
}
