// Copyright 2020, Square, Inc.

// Package app provides app-wide data structs and functions.
package app

import (
	"io"
	"os"

	"github.com/square/pnsynth/config"
	"github.com/square/pnsynth/spec"
	"github.com/square/pnsynth/synth"
)

// Context represents how to run pnsynth. A context is passed to pnsynth.Run().
// A default context is created in main.go. Wrapper code can integrate with
// pnsynth by passing a custom context to pnsynth.Run(). Integration is done
// primarily with hooks and factories.
type Context struct {
	// Config is the config after Run loads the --config file, if any.
	Config config.Synth

	// Command output: schedules and lint results.
	Out io.Writer

	// for integration with other code
	Factories Factories
	Hooks     Hooks
}

type Factories struct {
	// Additional check factories run after the base checks.
	CheckFactories []spec.CheckFactory

	MakeSynthesizer func(Context) (synth.Synthesizer, error)
}

type Hooks struct {
	LoadConfig func(Context, string) (config.Synth, error)

	// LoadSpecs loads a description file, or every file in a directory.
	LoadSpecs func(path string, logFunc func(string, ...interface{})) (spec.Specs, error)
}

func Defaults() Context {
	return Context{
		Out: os.Stdout,
		Factories: Factories{
			CheckFactories:  []spec.CheckFactory{spec.DefaultCheckFactory{}},
			MakeSynthesizer: MakeSynthesizer,
		},
		Hooks: Hooks{
			LoadConfig: LoadConfig,
			LoadSpecs:  LoadSpecs,
		},
	}
}

// MakeSynthesizer makes a synthesizer with the base checks plus the context's
// check factories.
func MakeSynthesizer(ctx Context) (synth.Synthesizer, error) {
	factories := append([]spec.CheckFactory{spec.BaseCheckFactory{}}, ctx.Factories.CheckFactories...)
	return synth.NewSynthesizer(factories, ctx.Config.Checks.Strict)
}

func LoadConfig(ctx Context, file string) (config.Synth, error) {
	cfg := ctx.Config
	if err := config.Load(file, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadSpecs(path string, logFunc func(string, ...interface{})) (spec.Specs, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return spec.Specs{}, err
	}
	if fi.IsDir() {
		return spec.ParseSpecsDir(path, logFunc)
	}
	return spec.ParseSpec(path, logFunc)
}
