// Copyright 2020, Square, Inc.

// Package pnsynth implements the pnsynth command: schedule a network from a
// description file, lint description files, or serve the synthesis API.
package pnsynth

import (
	"fmt"
	"io/ioutil"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"

	"github.com/square/pnsynth/api"
	"github.com/square/pnsynth/pnsynth/app"
	"github.com/square/pnsynth/proto"
	v "github.com/square/pnsynth/version"
)

type scheduleCmd struct {
	File         string   `arg:"positional,required" help:"description file"`
	Network      string   `arg:"-n" help:"network to schedule if the file has several"`
	StageOutputs []string `arg:"--stage-outputs" help:"schedule only the stage ending at these out ports (path.port from the network root)"`
	StageInputs  []string `arg:"--stage-inputs" help:"boundary in ports of the stage (process.port)"`
	Verbose      bool     `arg:"-v" help:"print check warnings"`
}

type lintCmd struct {
	Path string `arg:"positional,required" help:"description file or directory"`
}

type serveCmd struct {
	Addr string `help:"listen address, overrides server.listen_address"`
}

type args struct {
	Config   string       `arg:"env:PNSYNTH_CONFIG" help:"config file"`
	Debug    bool         `help:"debug logging"`
	Schedule *scheduleCmd `arg:"subcommand:schedule" help:"print the schedule of a network"`
	Lint     *lintCmd     `arg:"subcommand:lint" help:"check description files"`
	Serve    *serveCmd    `arg:"subcommand:serve" help:"run the API server"`
}

func (args) Version() string {
	return "pnsynth " + v.Version()
}

// Run parses argv (without the program name) and runs the command.
func Run(ctx app.Context, argv []string) error {
	/* Setup. */
	var cmd args
	p, err := arg.NewParser(arg.Config{Program: "pnsynth"}, &cmd)
	if err != nil {
		return err
	}
	switch err := p.Parse(argv); err {
	case nil:
	case arg.ErrHelp:
		p.WriteHelp(ctx.Out)
		return nil
	case arg.ErrVersion:
		fmt.Fprintln(ctx.Out, cmd.Version())
		return nil
	default:
		return err
	}

	if cmd.Config != "" {
		cfg, err := ctx.Hooks.LoadConfig(ctx, cmd.Config)
		if err != nil {
			return fmt.Errorf("cannot load config %s: %s", cmd.Config, err)
		}
		ctx.Config = cfg
	}
	if ctx.Config.LogLevel != "" {
		level, err := log.ParseLevel(ctx.Config.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log_level: %s", err)
		}
		log.SetLevel(level)
	}
	if cmd.Debug {
		log.SetLevel(log.DebugLevel)
	}

	switch {
	case cmd.Schedule != nil:
		return schedule(ctx, *cmd.Schedule)
	case cmd.Lint != nil:
		return lint(ctx, *cmd.Lint)
	case cmd.Serve != nil:
		return serve(ctx, *cmd.Serve)
	}
	p.WriteUsage(ctx.Out)
	return fmt.Errorf("no command given")
}

func schedule(ctx app.Context, cmd scheduleCmd) error {
	data, err := ioutil.ReadFile(cmd.File)
	if err != nil {
		return err
	}
	s, err := ctx.Factories.MakeSynthesizer(ctx)
	if err != nil {
		return err
	}

	req := proto.ScheduleRequest{
		Spec:    string(data),
		Network: cmd.Network,
	}
	if len(cmd.StageOutputs) > 0 {
		req.Stage = &proto.Stage{Outputs: cmd.StageOutputs, Inputs: cmd.StageInputs}
	} else if len(cmd.StageInputs) > 0 {
		return fmt.Errorf("--stage-inputs requires --stage-outputs")
	}

	res, err := s.Schedule(req)
	if err != nil {
		return err
	}
	if cmd.Verbose {
		for _, w := range res.Warnings {
			log.Warn(w)
		}
	}
	for _, path := range res.Schedule {
		fmt.Fprintln(ctx.Out, path)
	}
	return nil
}

func lint(ctx app.Context, cmd lintCmd) error {
	printf := func(s string, args ...interface{}) { fmt.Fprintf(ctx.Out, s+"\n", args...) }

	specs, err := ctx.Hooks.LoadSpecs(cmd.Path, printf)
	if err != nil {
		return err
	}
	s, err := ctx.Factories.MakeSynthesizer(ctx)
	if err != nil {
		return err
	}
	results := s.Lint(specs)

	for _, r := range results.Networks() {
		errs, warnings := r.Lines()
		for _, e := range errs {
			printf("%s: error: %s", r.Network, e)
		}
		for _, w := range warnings {
			printf("%s: warning: %s", r.Network, w)
		}
	}

	if results.AnyError() {
		return fmt.Errorf("lint failed") // details printed above
	}
	if ctx.Config.Checks.Strict && results.AnyWarning() {
		return fmt.Errorf("lint failed: warnings with strict checks")
	}
	printf("No errors")
	return nil
}

func serve(ctx app.Context, cmd serveCmd) error {
	s, err := ctx.Factories.MakeSynthesizer(ctx)
	if err != nil {
		return err
	}
	server := ctx.Config.Server
	if cmd.Addr != "" {
		server.ListenAddress = cmd.Addr
	}
	if server.ListenAddress == "" {
		server.ListenAddress = "127.0.0.1:32310"
	}
	log.Infof("pnsynth %s", v.Version())
	return api.NewAPI(s, ctx.Config.MaxStoredResults).Run(server)
}
