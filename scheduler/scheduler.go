// Package scheduler runs the three-stage, barrier-synchronized frame
// loop: a controller goroutine paired with one worker goroutine per
// registered system, grounded on the original's engine runner.
package scheduler

import (
	"log"

	"github.com/kestrelgame/enginecore/profiler"
)

// Builder assembles a [Runner]: register systems, then call [Builder.Start].
type Builder struct {
	ctx      *Context
	profiler *profiler.FrameProfiler
	systems  []System
}

// NewBuilder returns a builder around a fresh [Context] and a profiler
// with the default history limit.
func NewBuilder() *Builder {
	return NewBuilderWithProfiler(profiler.New())
}

// NewBuilderWithProfiler is [NewBuilder] with a caller-supplied profiler,
// for callers that need a non-default history limit (e.g. from config).
func NewBuilderWithProfiler(p *profiler.FrameProfiler) *Builder {
	return &Builder{
		ctx:      NewContext(),
		profiler: p,
	}
}

// Context returns the builder's engine context, for registering global
// resources before [Builder.Start].
func (b *Builder) Context() *Context {
	return b.ctx
}

// Profiler returns the frame profiler being assembled.
func (b *Builder) Profiler() *profiler.FrameProfiler {
	return b.profiler
}

// WithSystem registers system to run a worker goroutine of its own. Init
// is called immediately, synchronously, in registration order — the only
// point at which a system may mutate the context directly.
func (b *Builder) WithSystem(system System) *Builder {
	system.Init(b.ctx)
	b.systems = append(b.systems, system)

	return b
}

// Runner owns the running barrier-synchronized frame loop.
type Runner struct {
	ctx      *Context
	profiler *profiler.FrameProfiler
	barrier  *cyclicBarrier
	done     chan struct{}
}

// Start spawns one worker goroutine per registered system plus the
// controller goroutine, and returns immediately with a handle to the
// running [Runner]. The barrier is sized len(systems)+1 and never
// resized for the lifetime of the runner.
func (b *Builder) Start() *Runner {
	barrier := newCyclicBarrier(len(b.systems) + 1)

	r := &Runner{
		ctx:      b.ctx,
		profiler: b.profiler,
		barrier:  barrier,
		done:     make(chan struct{}),
	}

	for _, system := range b.systems {
		sp := b.profiler.AddSystem(system.Label())
		go runSystemWorker(system, sp, b.ctx, barrier)
	}

	go r.runController()

	return r
}

// Wait blocks until the controller loop has exited.
func (r *Runner) Wait() {
	<-r.done
}

func runSystemWorker(system System, sp *profiler.SystemProfiler, ec *Context, barrier *cyclicBarrier) {
	label := system.Label()
	log.Printf("scheduler: starting worker for system %q", label)

	firstFrameCalled := false

	for {
		sp.TimeFrameInit(func() {
			if !firstFrameCalled {
				firstFrameCalled = true
				system.FirstFrame(ec)
			}

			system.FrameInit(ec)
		})
		barrier.Wait() // frame initialization

		sp.TimeMainProcess(func() {
			system.MainProcess(ec, ec.Globals)
		})
		barrier.Wait() // main processing

		sp.TimePostProcess(func() {
			system.PostProcess(ec)
		})
		barrier.Wait() // post processing

		barrier.Wait() // end of frame

		if !ec.IsRunning() {
			log.Printf("scheduler: stopping worker for system %q", label)

			return
		}
	}
}

func (r *Runner) runController() {
	defer close(r.done)

	log.Print("scheduler: starting controller loop")

	for {
		r.profiler.BeginFrame()

		r.barrier.Wait() // frame initialization
		r.barrier.Wait() // main processing
		r.barrier.Wait() // post processing

		for _, event := range r.ctx.drainWindowEvents() {
			r.ctx.Bus.SendDynamic(event)
		}

		r.ctx.Bus.AdvanceGeneration()

		r.profiler.FinishFrame()

		if !r.ctx.shouldRun.Load() {
			log.Print("scheduler: shutting down controller loop")
			r.ctx.isRunning.Store(false)
			r.barrier.Wait() // end of frame

			return
		}

		r.barrier.Wait() // end of frame
	}
}
