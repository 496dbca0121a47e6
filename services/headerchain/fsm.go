package headerchain

import (
	"github.com/looplab/fsm"
)

// Lifecycle states of the service. A chain can be initialized once and then only extended.
const (
	StateUninitialized = "UNINITIALIZED"
	StateReady         = "READY"

	EventInitialize = "INITIALIZE"
)

// NewFiniteStateMachine creates the lifecycle state machine. It starts UNINITIALIZED and moves
// to READY once a chain state exists, either loaded at startup or created by Initialize.
func NewFiniteStateMachine(opts ...func(*fsm.FSM)) *fsm.FSM {
	finiteStateMachine := fsm.NewFSM(
		StateUninitialized,
		fsm.Events{
			{
				Name: EventInitialize,
				Src:  []string{StateUninitialized},
				Dst:  StateReady,
			},
		},
		fsm.Callbacks{},
	)

	for _, opt := range opts {
		opt(finiteStateMachine)
	}

	return finiteStateMachine
}
