package passageproxy

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/asecurityteam/logevent/v2"
	"github.com/asecurityteam/settings/v2"
	"github.com/rs/xstats"
	"github.com/rs/xstats/dogstatsd"
)

// LambdaConfig configures the logger and stat client used in the native
// lambda build modes. The HTTP modes use the runhttp settings instead.
type LambdaConfig struct {
	LogLevel           string        `description:"Minimum level of emitted log lines."`
	LogOutput          string        `description:"Destination of log lines. One of STDOUT, STDERR, NULL."`
	StatsAddress       string        `description:"UDP address of a dogstatsd agent. Stats are discarded when empty."`
	StatsFlushInterval time.Duration `description:"How often buffered stats are sent to the agent."`
}

// Name of the configuration root.
func (*LambdaConfig) Name() string {
	return "lambda"
}

// LambdaTools are the invocation scoped dependencies injected into every
// native lambda invocation.
type LambdaTools struct {
	Logger Logger
	Stat   Stat

	sender xstats.Sender
	conn   net.Conn
}

// Close flushes buffered stats to the agent and releases the connection.
// It is a no-op when no stats address was configured.
func (t *LambdaTools) Close() error {
	if t.sender == nil {
		return nil
	}
	err := xstats.CloseSender(t.sender)
	if cerr := t.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

// LambdaComponent is the settings component that produces LambdaTools.
type LambdaComponent struct{}

// Settings generates a config populated with the default values.
func (*LambdaComponent) Settings() *LambdaConfig {
	return &LambdaConfig{
		LogLevel:           "INFO",
		LogOutput:          "STDOUT",
		StatsFlushInterval: 10 * time.Second,
	}
}

// New builds the logger and stat client.
func (*LambdaComponent) New(ctx context.Context, conf *LambdaConfig) (*LambdaTools, error) {
	var out io.Writer
	switch strings.ToUpper(conf.LogOutput) {
	case "STDOUT":
		out = os.Stdout
	case "STDERR":
		out = os.Stderr
	case "NULL":
		out = io.Discard
	default:
		return nil, fmt.Errorf("unknown log output %s", conf.LogOutput)
	}
	tools := &LambdaTools{
		Logger: logevent.New(logevent.Config{Level: conf.LogLevel, Output: out}),
		Stat:   xstats.FromContext(ctx),
	}
	if conf.StatsAddress != "" {
		conn, err := net.Dial("udp", conf.StatsAddress)
		if err != nil {
			return nil, err
		}
		tools.conn = conn
		tools.sender = dogstatsd.New(conn, conf.StatsFlushInterval)
		tools.Stat = xstats.New(tools.sender)
	}
	return tools, nil
}

func newLambdaTools(ctx context.Context, s settings.Source) (*LambdaTools, error) {
	tools := new(LambdaTools)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: s, Prefix: []string{settingsPrefix}},
		&LambdaComponent{},
		tools,
	)
	return tools, err
}
