package passageproxy

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource(t *testing.T) settings.Source {
	t.Helper()
	source, err := settings.NewEnvSource([]string{
		"PASSAGEPROXY_LAMBDA_LOGOUTPUT=NULL",
	})
	require.NoError(t, err)
	return source
}

func TestStartModeUnknown(t *testing.T) {
	err := StartMode(context.Background(), testSource(t), &StaticFetcher{}, "serverless", "")
	assert.Error(t, err)
}

func TestStartLambdaRequiresTarget(t *testing.T) {
	err := StartMode(context.Background(), testSource(t), &StaticFetcher{}, BuildModeLambda, "")
	assert.Error(t, err)
}

func TestStartLambdaMissingFunction(t *testing.T) {
	err := StartMode(context.Background(), testSource(t), &StaticFetcher{}, BuildModeLambda, testName)
	assert.IsType(t, NotFoundError{}, err)
}

func TestStartLambda(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	originalStart := LambdaStartFn
	defer func() { LambdaStartFn = originalStart }()
	var started lambda.Handler
	LambdaStartFn = func(h lambda.Handler) { started = h }

	fn := NewMockFunction(ctrl)
	fetcher := NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), testName).Return(fn, nil)
	fn.EXPECT().Invoke(gomock.Any(), []byte("{}")).DoAndReturn(func(ctx context.Context, b []byte) ([]byte, error) {
		// The decorators must have placed a usable logger and stat client
		// in the invocation context.
		LoggerFromContext(ctx).Info(struct {
			Message string `logevent:"message,default=test"`
		}{})
		StatFromContext(ctx).Count("test", 1)
		return []byte("ok"), nil
	})

	err := StartMode(context.Background(), testSource(t), fetcher, "LAMBDA", testName)
	require.NoError(t, err)
	require.NotNil(t, started)

	out, err := started.Invoke(context.Background(), []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), out)
}

func TestStartLambdaMock(t *testing.T) {
	originalStart := LambdaStartFn
	defer func() { LambdaStartFn = originalStart }()
	var started lambda.Handler
	LambdaStartFn = func(h lambda.Handler) { started = h }

	fetcher := &StaticFetcher{Functions: map[string]Function{
		testName: NewFunctionWithErrors(testGatewayFunc, errors.New("declared")),
	}}
	err := StartMode(context.Background(), testSource(t), fetcher, BuildModeLambdaMock, testName)
	require.NoError(t, err)
	require.NotNil(t, started)

	out, err := started.Invoke(context.Background(), []byte("{}"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "real")
}

func TestLambdaComponentInvalidOutput(t *testing.T) {
	cmp := &LambdaComponent{}
	conf := cmp.Settings()
	conf.LogOutput = "FILE"
	_, err := cmp.New(context.Background(), conf)
	assert.Error(t, err)
}

func TestHelpListsComponents(t *testing.T) {
	var help string
	require.NotPanics(t, func() { help = Help() })
	assert.Contains(t, help, "LOGLEVEL")
	assert.Contains(t, help, "STATSADDRESS")
	// runtime settings come from the runhttp component
	assert.Contains(t, help, "PASSAGEPROXY_RUNTIME_")
}

func TestNewHTTPRuntime(t *testing.T) {
	tests := []struct {
		name     string
		mockMode bool
	}{
		{name: "http", mockMode: false},
		{name: "http mock", mockMode: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &StaticFetcher{Functions: map[string]Function{
				testName: NewFunction(testGatewayFunc),
			}}
			rt, err := newHTTPRuntime(context.Background(), testSource(t), fetcher, tt.mockMode)
			require.NoError(t, err)
			require.NotNil(t, rt)
			assert.NotNil(t, rt.Handler)
		})
	}
}

func TestLambdaToolsFlushOnClose(t *testing.T) {
	agent, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer agent.Close()

	cmp := &LambdaComponent{}
	conf := cmp.Settings()
	conf.LogOutput = "NULL"
	conf.StatsAddress = agent.LocalAddr().String()
	conf.StatsFlushInterval = time.Hour
	tools, err := cmp.New(context.Background(), conf)
	require.NoError(t, err)

	tools.Stat.Count("passages.success", 1)
	require.NoError(t, tools.Close())

	buf := make([]byte, 1024)
	require.NoError(t, agent.SetReadDeadline(time.Now().Add(5*time.Second)))
	n, _, err := agent.ReadFrom(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "passages.success")
}

func TestLambdaToolsCloseWithoutStats(t *testing.T) {
	cmp := &LambdaComponent{}
	conf := cmp.Settings()
	conf.LogOutput = "NULL"
	tools, err := cmp.New(context.Background(), conf)
	require.NoError(t, err)
	assert.NoError(t, tools.Close())
}
