package quiz

// State is a session's position in its lifecycle.
type State int

// Session states. Active, grading and answered always refer to the current
// question index.
const (
	StateConfiguring State = iota
	StateGenerating
	StateActive
	StateGrading
	StateAnswered
	StateComplete
)

var stateNames = [...]string{
	StateConfiguring: "configuring",
	StateGenerating:  "generating",
	StateActive:      "active",
	StateGrading:     "grading",
	StateAnswered:    "answered",
	StateComplete:    "complete",
}

// String returns the state's wire name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
