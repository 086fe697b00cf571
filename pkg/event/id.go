package event

import "simcore/pkg/simtime"

// Controller is the subset of the Simulator engine's API that an Id needs
// in order to delegate Cancel/Remove/IsExpired to whichever engine
// scheduled it. It exists so this package never imports pkg/simulator
// (which imports this package for Impl/Id): the engine implements
// Controller structurally, and Schedule-family calls stamp it onto the Id
// they return.
type Controller interface {
	CancelID(id Id)
	RemoveID(id Id)
	IsExpiredID(id Id) bool
}

// Id is a stable, copyable, user-facing handle to a scheduled event. It
// does not by itself imply the event is still scheduled; see IsExpired.
type Id struct {
	impl       *Impl
	ts         simtime.Value
	context    uint32
	uid        uint32
	controller Controller
}

// NewID builds an Id; only the scheduling engine that owns impl should
// call this.
func NewID(impl *Impl, ts simtime.Value, context uint32, uid uint32, controller Controller) Id {
	return Id{impl: impl, ts: ts, context: context, uid: uid, controller: controller}
}

// Impl returns the raw payload pointer. Nil for a default Id.
func (id Id) Impl() *Impl { return id.impl }

// Timestamp returns the absolute time at which the event is (or was) scheduled to fire.
func (id Id) Timestamp() simtime.Value { return id.ts }

// Context returns the context the event was scheduled under.
func (id Id) Context() uint32 { return id.context }

// UID returns the event's assigned uid.
func (id Id) UID() uint32 { return id.uid }

// Cancel delegates to the owning engine's CancelID.
func (id Id) Cancel() {
	if id.controller != nil {
		id.controller.CancelID(id)
	}
}

// Remove delegates to the owning engine's RemoveID.
func (id Id) Remove() {
	if id.controller != nil {
		id.controller.RemoveID(id)
	}
}

// IsExpired delegates to the owning engine's IsExpiredID.
func (id Id) IsExpired() bool {
	if id.controller == nil {
		return true
	}
	return id.controller.IsExpiredID(id)
}

// IsPending and IsRunning are both equivalent to !IsExpired.
func (id Id) IsPending() bool { return !id.IsExpired() }
func (id Id) IsRunning() bool { return !id.IsExpired() }
