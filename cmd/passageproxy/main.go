package main

// passageproxy hosts the passages function. The build mode is selected at
// build time, for example:
//
//		go build -ldflags "-X github.com/coveo-labs/passageproxy.BuildMode=lambda -X github.com/coveo-labs/passageproxy.TargetFunction=passages"
//
// In the default HTTP mode it can be called like:
//
//		curl 'localhost:8080/api/passages?query=reset+my+password'

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/asecurityteam/settings/v2"
	"github.com/coveo-labs/passageproxy"
	v1 "github.com/coveo-labs/passageproxy/pkg/handlers/v1"
	"github.com/coveo-labs/passageproxy/pkg/retrieval"
)

func main() {
	// Handle the -h flag and print settings.
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Usage = func() {}
	if err := fs.Parse(os.Args[1:]); err == flag.ErrHelp {
		fmt.Println(passageproxy.Help(&retrieval.Component{}))
		return
	}

	ctx := context.Background()
	source, err := settings.NewEnvSource(os.Environ())
	if err != nil {
		panic(err.Error())
	}
	retriever := new(retrieval.Client)
	err = settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: source, Prefix: []string{"passageproxy"}},
		&retrieval.Component{},
		retriever,
	)
	if err != nil {
		panic(err.Error())
	}
	retriever.StatFn = passageproxy.StatFromContext

	passages := &v1.Passages{
		LogFn:     passageproxy.LoggerFromContext,
		StatFn:    passageproxy.StatFromContext,
		Retriever: retriever,
	}
	fetcher := &passageproxy.StaticFetcher{
		Functions: map[string]passageproxy.Function{
			// The key is the public name used in /api/{functionName} and
			// in the Invoke API path.
			"passages": passageproxy.NewFunctionWithErrors(passages.Handle, v1.PassagesErrors...),
		},
	}
	if err := passageproxy.Start(ctx, source, fetcher); err != nil {
		panic(err.Error())
	}
}
