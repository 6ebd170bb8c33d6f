package world

// State is the run state seen by the presentation layer.
type State string

const (
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateGameOver State = "game_over"
)

// Event is a named trigger for the audio layer.
type Event string

const (
	EventEat            Event = "eat"
	EventTrap           Event = "trap"
	EventPower          Event = "power"
	EventExplosion      Event = "explosion"
	EventCollision      Event = "collision"
	EventGameOver       Event = "game_over"
	EventRivalSpawn     Event = "rival_spawn"
	EventRivalDeath     Event = "rival_death"
	EventTransformPhase Event = "transform_phase"
	EventPortal         Event = "portal"
)

// Events lists every event in a stable order.
var Events = []Event{
	EventEat, EventTrap, EventPower, EventExplosion, EventCollision,
	EventGameOver, EventRivalSpawn, EventRivalDeath, EventTransformPhase, EventPortal,
}

// Cause says why a run ended.
type Cause string

const (
	CauseNone      Cause = ""
	CauseWall      Cause = "wall"
	CauseSelf      Cause = "self"
	CauseRival     Cause = "rival"
	CauseTrap      Cause = "trap"
	CauseExplosion Cause = "explosion"
	CauseInvariant Cause = "invariant"
)
