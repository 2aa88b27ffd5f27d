package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts the current time so the evaluation date is injectable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func System() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(func() Clock { return System() }),
)
