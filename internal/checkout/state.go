package checkout

// State is a step of one checkout attempt.
type State string

const (
	StateIdle               State = "idle"
	StateValidatingStock    State = "validating_stock"
	StateCreatingOrder      State = "creating_order"
	StateDispatchingPayment State = "dispatching_payment"
	StateSucceeded          State = "succeeded"
	StateFailed             State = "failed"
)

var transitions = map[State][]State{
	StateIdle:               {StateValidatingStock, StateFailed},
	StateValidatingStock:    {StateCreatingOrder, StateFailed},
	StateCreatingOrder:      {StateDispatchingPayment, StateFailed},
	StateDispatchingPayment: {StateSucceeded, StateFailed},
}

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

// CanTransitionTo reports whether the machine may move from one state to another.
// The machine only moves forward; terminal states have no exits.
func CanTransitionTo(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
