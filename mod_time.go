package gekko2d

import (
	"time"
)

// Time is the frame clock resource.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64

	now func() time.Time
}

// DeltaSeconds is Dt in seconds, the unit World.Update expects.
func (t *Time) DeltaSeconds() float64 { return t.Dt.Seconds() }

type TimeModule struct {
	// Clock replaces time.Now, mostly for tests and replays.
	Clock func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Clock
	if now == nil {
		now = time.Now
	}
	cmd.AddResources(&Time{
		Time: now(),
		Dt:   0,
		now:  now,
	})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := timeResource.now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}
