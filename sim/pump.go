package sim

// PumpState is the per-pump transfer state.
type PumpState string

const (
	PumpIdle         PumpState = "idle"
	PumpTransferring PumpState = "transferring"
	PumpFault        PumpState = "fault"
)

// Pump moves fuel from its Source tank to its Target tank while active.
// The association is explicit; pumps are never matched to tanks by position.
type Pump struct {
	Source TankID
	Target TankID

	active bool
	state  PumpState
}

// NewPump returns an inactive, idle pump linking source to target.
func NewPump(source, target TankID) Pump {
	return Pump{Source: source, Target: target, state: PumpIdle}
}

// Activate switches the pump on. A faulted pump stays in fault until Reset.
func (p *Pump) Activate() {
	if p.state == PumpFault {
		return
	}
	p.active = true
}

// Deactivate switches the pump off.
func (p *Pump) Deactivate() {
	p.active = false
	if p.state == PumpTransferring {
		p.state = PumpIdle
	}
}

func (p *Pump) IsActive() bool { return p.active }

// State returns idle, transferring or fault.
func (p *Pump) State() PumpState {
	if p.state == "" {
		return PumpIdle
	}
	return p.state
}

// Fail puts the pump in fault and switches it off.
func (p *Pump) Fail() {
	p.active = false
	p.state = PumpFault
}

// Reset clears a fault. The pump comes back inactive.
func (p *Pump) Reset() {
	if p.state == PumpFault {
		p.state = PumpIdle
	}
}

// Crossfeed reports whether the pump moves fuel between the left and right groups.
func (p *Pump) Crossfeed() bool {
	return p.Source.Side()*p.Target.Side() < 0
}
