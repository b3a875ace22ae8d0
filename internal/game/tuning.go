package game

import (
	"time"

	"github.com/pkg/errors"
)

// Tuning holds every gameplay constant. DefaultTuning holds the stock
// lab values; tests and tools override individual fields.
type Tuning struct {
	FrameStep float64 // seconds per tick

	// Rosters
	LeftTeamSize  int
	RightTeamSize int
	RosterInset   float64 // x distance of the home line from each end board
	AthleteMass   float64
	AthleteSpeed  float64 // max speed, units per second

	// Behaviour thresholds
	PursueRange         float64 // free puck closer than this draws attention
	PursueGiveUpDist    float64 // non-closest pursuer keeps chasing inside this
	PursueFallbackGap   float64 // closest teammate farther than this lets others chase
	PursueFallbackReach float64
	PursueSoloRange     float64 // chase when nobody on the team is pursuing
	StealRange          float64
	SeparationRadius    float64
	StealSeparation     float64
	AvoidanceRadius     float64
	DefendSlowRadius    float64
	DefendArriveDist    float64 // Defend hands over to Patrol inside this
	PatrolLeash         float64 // Patrol returns to Defend beyond this
	SupportAhead        float64
	SupportSide         float64
	SupportSlowRadius   float64
	FaceSpeed           float64 // token velocity used to face the puck while idle
	ManualSlowRadius    float64
	ManualBrake         float64 // per-frame velocity multiplier when too fast

	// Puck
	PuckRadius   float64
	PuckFriction float64 // per-frame velocity multiplier while free
	PuckAhead    float64 // carry offset along the owner's heading
	StrikeSpeed  float64

	// Contacts
	PickupRadius     float64
	CollisionRadius  float64
	CollisionImpulse float64
	TransferChance   float64

	// Rink
	AthleteMargin float64
	PuckMargin    float64
	GoalWidth     float64
	GoalHeight    float64
	GoalInset     float64 // goal centre distance from the end board

	// Faceoff spawn
	SpawnDepth    float64 // how far from the centre line athletes may spawn
	SpawnBandFrac float64 // vertical spawn band as a fraction of rink height, centred

	CelebrationDuration time.Duration
}

// DefaultTuning returns the stock match constants.
func DefaultTuning() Tuning {
	return Tuning{
		FrameStep: 0.016,

		LeftTeamSize:  5,
		RightTeamSize: 6,
		RosterInset:   200,
		AthleteMass:   1,
		AthleteSpeed:  200,

		PursueRange:         150,
		PursueGiveUpDist:    50,
		PursueFallbackGap:   100,
		PursueFallbackReach: 1000,
		PursueSoloRange:     120,
		StealRange:          150,
		SeparationRadius:    50,
		StealSeparation:     50,
		AvoidanceRadius:     100,
		DefendSlowRadius:    80,
		DefendArriveDist:    5,
		PatrolLeash:         10,
		SupportAhead:        40,
		SupportSide:         30,
		SupportSlowRadius:   30,
		FaceSpeed:           0.01,
		ManualSlowRadius:    50,
		ManualBrake:         0.9,

		PuckRadius:   10,
		PuckFriction: 0.98,
		PuckAhead:    30,
		StrikeSpeed:  160,

		PickupRadius:     20,
		CollisionRadius:  30,
		CollisionImpulse: 2,
		TransferChance:   0.3,

		AthleteMargin: 20,
		PuckMargin:    10,
		GoalWidth:     10,
		GoalHeight:    60,
		GoalInset:     5,

		SpawnDepth:    100,
		SpawnBandFrac: 0.4,

		CelebrationDuration: 2 * time.Second,
	}
}

// frameDuration converts FrameStep to a time.Duration.
func (t Tuning) frameDuration() time.Duration {
	return time.Duration(t.FrameStep * float64(time.Second))
}

// validate rejects setup-time contract violations.
func (t Tuning) validate() error {
	if t.LeftTeamSize <= 0 || t.RightTeamSize <= 0 {
		return errors.Wrapf(ErrInvalidRoster, "team sizes left=%d right=%d", t.LeftTeamSize, t.RightTeamSize)
	}
	if t.AthleteMass <= 0 {
		return errors.Errorf("athlete mass must be > 0, got %v", t.AthleteMass)
	}
	if t.FrameStep <= 0 {
		return errors.Errorf("frame step must be > 0, got %v", t.FrameStep)
	}
	if t.PuckFriction <= 0 || t.PuckFriction >= 1 {
		return errors.Errorf("puck friction must be in (0,1), got %v", t.PuckFriction)
	}
	if t.GoalWidth <= 0 || t.GoalHeight <= 0 {
		return errors.Errorf("goal must have positive size, got %vx%v", t.GoalWidth, t.GoalHeight)
	}
	return nil
}
