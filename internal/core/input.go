package core

// Action represents a semantic player intent, abstracted from physical key presses.
// Drivers translate keys into actions and actions into engine calls.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - steer up
	ActionDown              // S, Down arrow - steer down
	ActionLeft              // A, Left arrow - steer left
	ActionRight             // D, Right arrow - steer right
	ActionStart             // Enter - start moving
	ActionPause             // Space, P - pause/unpause
	ActionAutopilot         // T - toggle autonomous mode
	ActionReset             // R - back to a fresh board
	ActionScoreboard        // Tab - open high scores
	ActionBack              // B, Escape - leave the current screen
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionAutopilot:
		return "Autopilot"
	case ActionReset:
		return "Reset"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Heading returns the direction a steering action asks for.
// ok is false for non-steering actions.
func (a Action) Heading() (Direction, bool) {
	switch a {
	case ActionUp:
		return Up, true
	case ActionDown:
		return Down, true
	case ActionLeft:
		return Left, true
	case ActionRight:
		return Right, true
	default:
		return Direction{}, false
	}
}
