package game

// Team identifies which half of the rink an athlete defends.
type Team int

const (
	TeamLeft  Team = iota // defends the left goal, attacks right
	TeamRight             // defends the right goal, attacks left
)

func (t Team) String() string {
	switch t {
	case TeamLeft:
		return "left"
	case TeamRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamLeft {
		return TeamRight
	}
	return TeamLeft
}

// labelPrefix is the single letter used in athlete labels ("L0", "R3").
func (t Team) labelPrefix() string {
	if t == TeamLeft {
		return "L"
	}
	return "R"
}

// Role is assigned once from roster slot. It is carried for display and
// reporting only; no transition reads it.
type Role int

const (
	RoleForward Role = iota
	RoleNeutral
	RoleDefender
)

func (r Role) String() string {
	switch r {
	case RoleForward:
		return "Forward"
	case RoleNeutral:
		return "Neutral"
	case RoleDefender:
		return "Defender"
	default:
		return "Unknown"
	}
}

// Initial is the one-letter badge drawn on the athlete.
func (r Role) Initial() string {
	return r.String()[:1]
}

// roleForSlot maps roster slot to role: two forwards, two neutrals, then defenders.
func roleForSlot(i int) Role {
	switch {
	case i < 2:
		return RoleForward
	case i < 4:
		return RoleNeutral
	default:
		return RoleDefender
	}
}

// AthleteState is a behaviour on the athlete's pushdown machine.
type AthleteState int

const (
	StateIdle          AthleteState = iota // facing the puck, waiting for a reason to move
	StatePursuePuck                        // chasing a free puck
	StateAttack                            // own team has the puck
	StateStealPuck                         // opponent has the puck
	StateDefend                            // returning to home position
	StatePatrol                            // loitering at home position
	StateCelebrateGoal                     // held during the post-goal freeze
)

func (s AthleteState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePursuePuck:
		return "pursue"
	case StateAttack:
		return "attack"
	case StateStealPuck:
		return "steal"
	case StateDefend:
		return "defend"
	case StatePatrol:
		return "patrol"
	case StateCelebrateGoal:
		return "celebrate"
	default:
		return "unknown"
	}
}

// allStates lists every behaviour in declaration order, for reports.
var allStates = []AthleteState{
	StateIdle, StatePursuePuck, StateAttack, StateStealPuck,
	StateDefend, StatePatrol, StateCelebrateGoal,
}
