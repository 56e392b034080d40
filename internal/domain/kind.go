package domain

// BufferKind identifies one of the three buffer streams the instrument sends
// per acquisition cycle. The instrument always transmits them in the fixed
// order power, traces, online; the receiver relies on that order because the
// wire format carries no kind marker.
type BufferKind int

const (
	KindPower BufferKind = iota
	KindTraces
	KindOnline
)

// Kinds lists the buffer kinds in their wire order within a cycle.
var Kinds = [3]BufferKind{KindPower, KindTraces, KindOnline}

// String returns the kind's label.
func (k BufferKind) String() string {
	switch k {
	case KindPower:
		return "power"
	case KindTraces:
		return "traces"
	case KindOnline:
		return "online"
	default:
		return "unknown"
	}
}
