package sim

// Valve is the crossfeed valve between the left and right tank groups. Closed when created.
type Valve struct {
	open bool
}

// NewValve returns a closed valve.
func NewValve() Valve {
	return Valve{}
}

func (v *Valve) Open()        { v.open = true }
func (v *Valve) Close()       { v.open = false }
func (v *Valve) IsOpen() bool { return v.open }
