package passageproxy

import (
	"github.com/asecurityteam/logevent/v2"
	"github.com/rs/xstats"
)

// LoggerFromContext extracts the request or invocation scoped logger. The
// HTTP runtime and the lambda decorators both store it with logevent so this
// is safe to call in every build mode.
var LoggerFromContext LogFn = logevent.FromContext

// StatFromContext extracts the request or invocation scoped stat client.
var StatFromContext StatFn = xstats.FromContext
