package scheduler

import (
	"sync"
	"sync/atomic"

	"github.com/kestrelgame/enginecore/bus"
	"github.com/kestrelgame/enginecore/ecs"
	"github.com/kestrelgame/enginecore/globals"
)

// Context is the shared state every system operates on, equivalent to
// the original's EngineContext: the message bus, the global store, and
// the universe, plus the cooperative shutdown flags the controller and
// every worker observe.
type Context struct {
	Bus      *bus.Bus
	Globals  *globals.Store
	Universe *ecs.Universe

	windowEventsMu sync.Mutex
	windowEvents   []any

	shouldRun atomic.Bool
	isRunning atomic.Bool
}

// NewContext returns a fresh, running context.
func NewContext() *Context {
	ec := &Context{
		Bus:      bus.New(),
		Globals:  globals.NewStore(),
		Universe: ecs.NewUniverse(),
	}
	ec.shouldRun.Store(true)
	ec.isRunning.Store(true)

	return ec
}

// PushWindowEvent queues event for delivery to the bus at the next
// end-of-frame boundary. Safe to call from any goroutine.
func (ec *Context) PushWindowEvent(event any) {
	ec.windowEventsMu.Lock()
	defer ec.windowEventsMu.Unlock()

	ec.windowEvents = append(ec.windowEvents, event)
}

// drainWindowEvents empties the queued window events, returning them in
// the order they were pushed. Controller-only.
func (ec *Context) drainWindowEvents() []any {
	ec.windowEventsMu.Lock()
	defer ec.windowEventsMu.Unlock()

	events := ec.windowEvents
	ec.windowEvents = nil

	return events
}

// RequestShutdown asks the controller and every worker to stop after the
// current frame completes. Cooperative: checked only at end-of-frame.
func (ec *Context) RequestShutdown() {
	ec.shouldRun.Store(false)
}

// IsRunning reports whether the engine is still accepting frames.
func (ec *Context) IsRunning() bool {
	return ec.isRunning.Load()
}

// System is the interface every scheduled unit of work implements, same
// method surface as the original's System trait. Embed [NoopSystem] to
// get no-op defaults for any stage a system doesn't need to override —
// Go interfaces have no default methods, so embedding stands in for the
// original trait's default implementations.
type System interface {
	Label() string
	Init(ec *Context)
	FirstFrame(ec *Context)
	FrameInit(ec *Context)
	MainProcess(ec *Context, gs *globals.Store)
	PostProcess(ec *Context)
}

// NoopSystem provides a no-op implementation of every [System] method
// except Label. Embed it in a concrete system and override only the
// stages that system actually uses.
type NoopSystem struct{}

func (NoopSystem) Init(ec *Context)                          {}
func (NoopSystem) FirstFrame(ec *Context)                     {}
func (NoopSystem) FrameInit(ec *Context)                      {}
func (NoopSystem) MainProcess(ec *Context, gs *globals.Store) {}
func (NoopSystem) PostProcess(ec *Context)                    {}
