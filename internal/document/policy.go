package document

// Kind is a section's update policy.
type Kind int

const (
	// Unclassified marks section numbers outside the defined 1..12 range;
	// the merge engine does not process them.
	Unclassified Kind = iota
	// Auto sections are regenerated from data sources on every update.
	Auto
	// Manual sections carry human-edited text and are preserved verbatim.
	Manual
	// AppendOnly sections are preserved; humans prepend new entries over time.
	AppendOnly
)

func (k Kind) String() string {
	switch k {
	case Auto:
		return "AUTO-UPDATED"
	case Manual:
		return "MANUAL"
	case AppendOnly:
		return "APPEND-ONLY"
	default:
		return "UNCLASSIFIED"
	}
}

// Policy maps section numbers to their update policy. It is built once at
// startup and passed into the merge engine; nothing reads it from ambient
// state.
type Policy struct {
	kinds map[int]Kind
}

// DefaultPolicy returns the standard profile layout:
// sections 1-4 auto-updated (overview, delivery, RFC engagement,
// communication), 5-10 manual (values, skills, growth areas), 11-12
// append-only (1:1 notes, evidence log).
func DefaultPolicy() Policy {
	kinds := make(map[int]Kind, MaxSection)
	for n := 1; n <= 4; n++ {
		kinds[n] = Auto
	}
	for n := 5; n <= 10; n++ {
		kinds[n] = Manual
	}
	kinds[11] = AppendOnly
	kinds[12] = AppendOnly
	return Policy{kinds: kinds}
}

// Of returns the policy for a section number. Numbers outside 1..12 are
// Unclassified.
func (p Policy) Of(section int) Kind {
	return p.kinds[section]
}
