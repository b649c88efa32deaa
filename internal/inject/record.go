package inject

import (
	"fmt"
	"strings"

	"github.com/roach88/qglitch/internal/circuit"
)

// Snapshot captures the state of one op or measurement for audit.
// Exactly one of Op/Measurement is set.
type Snapshot struct {
	Op          *circuit.GateOp      `json:"op,omitempty"`
	Measurement *circuit.Measurement `json:"measurement,omitempty"`
}

// snapOp copies an op into a snapshot.
func snapOp(op circuit.GateOp) *Snapshot {
	clone := op.Clone()
	return &Snapshot{Op: &clone}
}

// snapMeasurement copies a measurement into a snapshot.
func snapMeasurement(m circuit.Measurement) *Snapshot {
	clone := m.Clone()
	return &Snapshot{Measurement: &clone}
}

// Record describes one injected mutation.
//
// Location indexes into the returned circuit's gate sequence (or measurement
// list for KindMeasurementBasisError). Most kinds report one index;
// KindOrderingSwap reports the pair. For KindGateDeletion the index names
// the position the op was removed from.
//
// Before and After capture enough of the pre/post state for exact-match
// assertions. Deletion has no After; insertion has no Before.
type Record struct {
	Kind        Kind      `json:"kind"`
	Location    []int     `json:"location"`
	Description string    `json:"description"`
	Before      *Snapshot `json:"before,omitempty"`
	After       *Snapshot `json:"after,omitempty"`
}

// String renders the record for logs and CLI output.
func (r *Record) String() string {
	locs := make([]string, len(r.Location))
	for i, l := range r.Location {
		locs[i] = fmt.Sprintf("%d", l)
	}
	return fmt.Sprintf("%s @ [%s]: %s", r.Kind, strings.Join(locs, ","), r.Description)
}
