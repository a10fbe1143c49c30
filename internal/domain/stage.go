package domain

// Stage enumerates pipeline positions for a shipment.
type Stage string

const (
	StageLead       Stage = "lead"
	StagePricing    Stage = "pricing"
	StageConfirmed  Stage = "confirmed"
	StageOperations Stage = "operations"
	StageCompleted  Stage = "completed"
)

// stageOrder is the canonical pipeline sequence. It includes the legacy
// "confirmed" stage so that ordering comparisons keep working for
// historical shipments that passed through it.
var stageOrder = []Stage{
	StageLead,
	StagePricing,
	StageConfirmed,
	StageOperations,
	StageCompleted,
}

// forwardTransitions maps each stage to its single allowed successor.
// StageCompleted is terminal.
var forwardTransitions = map[Stage]Stage{
	StageLead:       StagePricing,
	StagePricing:    StageConfirmed,
	StageConfirmed:  StageOperations,
	StageOperations: StageCompleted,
}

// ValidStage reports whether s is a known stage value.
func ValidStage(s Stage) bool {
	return stageIndex(s) >= 0
}

// HasReachedStage reports whether current sits at or after target in the
// canonical sequence. It deliberately does not consult the transition
// table: live shipments skip "confirmed", yet still count as having
// reached it once they are in operations.
func HasReachedStage(current, target Stage) bool {
	ci, ti := stageIndex(current), stageIndex(target)
	if ci < 0 || ti < 0 {
		return false
	}
	return ci >= ti
}

// CanTransition reports whether moving from current to next is a valid
// forward transition.
func CanTransition(current, next Stage) bool {
	successor, ok := forwardTransitions[current]
	return ok && successor == next
}

// NextStage returns the forward successor of current, if any.
func NextStage(current Stage) (Stage, bool) {
	successor, ok := forwardTransitions[current]
	return successor, ok
}

// PreviousStage returns the immediate predecessor of current in the
// canonical order. Reverting is always valid at the machine level;
// whether a caller may revert is an authorization concern.
func PreviousStage(current Stage) (Stage, bool) {
	idx := stageIndex(current)
	if idx <= 0 {
		return "", false
	}
	return stageOrder[idx-1], true
}

func stageIndex(s Stage) int {
	for i, candidate := range stageOrder {
		if candidate == s {
			return i
		}
	}
	return -1
}
