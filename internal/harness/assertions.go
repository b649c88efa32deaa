package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/qglitch/internal/circuit"
	"github.com/roach88/qglitch/internal/inject"
)

// evaluate checks one assertion against the result. Returns an empty string
// when the assertion holds, otherwise a human-readable failure.
func evaluate(a *Assertion, r *Result) string {
	switch a.Type {
	case AssertGateCount:
		if got := r.Final.GateCount(); got != a.Count {
			return fmt.Sprintf("gate_count: want %d, got %d", a.Count, got)
		}
	case AssertMeasurementCount:
		if got := len(r.Final.Measurements); got != a.Count {
			return fmt.Sprintf("measurement_count: want %d, got %d", a.Count, got)
		}
	case AssertValid:
		if got := r.Final.Valid(); got != a.Want {
			return fmt.Sprintf("valid: want %t, got %t (violations: %s)",
				a.Want, got, describeViolations(r.Final.Validate()))
		}
	case AssertViolationCode:
		want := circuit.ViolationCode(strings.ToUpper(a.Code))
		for _, v := range r.Final.Validate() {
			if v.Code == want {
				return ""
			}
		}
		return fmt.Sprintf("violation_code: %s not present (got: %s)",
			want, describeViolations(r.Final.Validate()))
	case AssertViolationCount:
		if got := len(r.Final.Validate()); got != a.Count {
			return fmt.Sprintf("violation_count: want %d, got %d (%s)",
				a.Count, got, describeViolations(r.Final.Validate()))
		}
	case AssertRecordKind:
		rec := r.Records[a.Step]
		if rec == nil {
			return fmt.Sprintf("record_kind: step %d was a no-op", a.Step)
		}
		if want := inject.Kind(a.Kind); rec.Kind != want {
			return fmt.Sprintf("record_kind: step %d produced %s, want %s", a.Step, rec.Kind, want)
		}
	case AssertNoOp:
		if rec := r.Records[a.Step]; rec != nil {
			return fmt.Sprintf("no_op: step %d produced a record: %s", a.Step, rec)
		}
	case AssertFlagPresent:
		for i := range r.Final.Gates {
			if r.Final.Gates[i].HasFlag(a.Flag) {
				return ""
			}
		}
		for i := range r.Final.Measurements {
			if r.Final.Measurements[i].HasFlag(a.Flag) {
				return ""
			}
		}
		return fmt.Sprintf("flag_present: %q not set anywhere", a.Flag)
	}
	return ""
}

func describeViolations(violations []circuit.Violation) string {
	if len(violations) == 0 {
		return "none"
	}
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}
