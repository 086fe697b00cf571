package simulator

import (
	"sync"

	"simcore/pkg/event"
	"simcore/pkg/scheduler"
	"simcore/pkg/simerrors"
	"simcore/pkg/simlog"
	"simcore/pkg/simtime"
)

// facade is the process-wide access point described for the core: a
// lazily-constructed default Engine over a Map-backed scheduler, mirroring
// ns3::Simulator's GetImpl() singleton.
var facade = struct {
	mu  sync.Mutex
	eng *Engine
}{}

// getOrInit returns the process-wide Engine, constructing a default
// Map-backed one on first use.
func getOrInit() *Engine {
	facade.mu.Lock()
	defer facade.mu.Unlock()
	if facade.eng == nil {
		facade.eng = New(scheduler.NewMapScheduler(), nil)
	}
	return facade.eng
}

// SetImplementation installs eng as the process-wide engine. It is fatal
// to call this after any other façade operation has already lazily
// constructed the default one.
func SetImplementation(eng *Engine) {
	facade.mu.Lock()
	defer facade.mu.Unlock()
	if facade.eng != nil {
		simerrors.Fatal(nil, "simulator.SetImplementation", simerrors.New(simerrors.ThreadUnsafeCall, "an engine implementation is already installed"))
	}
	facade.eng = eng
}

// GetImplementation returns the process-wide Engine, constructing the
// default one if none has been installed yet.
func GetImplementation() *Engine {
	return getOrInit()
}

// Schedule, ScheduleNow, ScheduleWithContext, ScheduleDestroy, Run, Stop,
// StopAt, Now, Cancel, Remove, IsExpired, DelayLeft, Destroy, and
// SetScheduler are the façade's package-level mirror of the Engine's
// methods, each operating on the lazily-constructed default engine.

func Schedule(delay simtime.Value, impl *event.Impl) event.Id {
	return getOrInit().Schedule(delay, impl)
}

func ScheduleNow(impl *event.Impl) event.Id {
	return getOrInit().ScheduleNow(impl)
}

func ScheduleWithContext(ctx uint32, delay simtime.Value, impl *event.Impl) event.Id {
	return getOrInit().ScheduleWithContext(ctx, delay, impl)
}

func ScheduleDestroy(impl *event.Impl) event.Id {
	return getOrInit().ScheduleDestroy(impl)
}

func Run() {
	getOrInit().Run()
}

func Stop() {
	getOrInit().Stop()
}

func StopAt(delay simtime.Value) {
	getOrInit().StopAt(delay)
}

func Now() simtime.Value {
	return getOrInit().Now()
}

func Cancel(id event.Id) {
	getOrInit().Cancel(id)
}

func Remove(id event.Id) {
	getOrInit().Remove(id)
}

func IsExpired(id event.Id) bool {
	return getOrInit().IsExpired(id)
}

func DelayLeft(id event.Id) simtime.Value {
	return getOrInit().DelayLeft(id)
}

func SetScheduler(s scheduler.Scheduler) {
	getOrInit().SetScheduler(s)
}

func SetEventHook(hook func(id event.Id)) {
	getOrInit().SetEventHook(hook)
}

// Destroy invokes destroy-phase events on the process-wide engine, then
// resets façade state so the next operation re-initializes a fresh
// default engine, matching ns3::Simulator::Destroy's contract.
func Destroy() {
	facade.mu.Lock()
	eng := facade.eng
	facade.eng = nil
	facade.mu.Unlock()

	if eng != nil {
		eng.Destroy()
	}
}

// SetLogger installs log on the engine the façade will lazily construct.
// It is fatal to call this once an engine already exists, same as
// SetImplementation.
func SetLogger(log *simlog.Logger) {
	facade.mu.Lock()
	defer facade.mu.Unlock()
	if facade.eng != nil {
		simerrors.Fatal(nil, "simulator.SetLogger", simerrors.New(simerrors.ThreadUnsafeCall, "an engine implementation is already installed"))
	}
	facade.eng = New(scheduler.NewMapScheduler(), log)
}
