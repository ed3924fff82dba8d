package entities

// ActionResult is the outcome a weapon hook reports for an interaction
type ActionResult string

const (
	ActionPass    ActionResult = "pass"    // Not handled, let other logic proceed
	ActionSuccess ActionResult = "success" // Handled, swing the arm
	ActionConsume ActionResult = "consume" // Handled silently
	ActionFail    ActionResult = "fail"    // Blocked, nothing else may handle it
)

// IsAccepted reports whether the interaction was handled
func (r ActionResult) IsAccepted() bool {
	return r == ActionSuccess || r == ActionConsume
}

// Hand identifies which hand triggered an interaction
type Hand string

const (
	HandMain Hand = "main_hand"
	HandOff  Hand = "off_hand"
)
