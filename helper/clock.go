package helper

import "github.com/jonboulle/clockwork"

// Clock supplies every lifecycle timestamp (order creation, status history,
// installation start/completion). Tests swap in a fake clock.
var Clock clockwork.Clock = clockwork.NewRealClock()
