// Copyright 2017-2020, Square, Inc.

package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

///////////////////////////////////////////////////////////////////////////////
// High-Level Config Structs
///////////////////////////////////////////////////////////////////////////////

// Synth is the config for the pnsynth tool. It is read in pnsynth/pnsynth.go;
// command line flags override it.
type Synth struct {
	// Log level: debug, info, warning or error. Default: info.
	LogLevel string `yaml:"log_level"`

	// The config that the API server runs with (pnsynth serve).
	Server Server `yaml:"server"`

	// Checks run on descriptions before a network is built.
	Checks Checks `yaml:"checks"`

	// The maximum number of schedule results the API keeps in memory.
	// The oldest result is dropped when a new one would exceed it.
	// Zero means no limit.
	MaxStoredResults int `yaml:"max_stored_results"`
}

///////////////////////////////////////////////////////////////////////////////
// Config Components
///////////////////////////////////////////////////////////////////////////////

// Configuration for a web server.
type Server struct {
	// The address the server will listen on (ex: "127.0.0.1:80").
	ListenAddress string `yaml:"listen_address"`

	// The TLS config used by the server.
	TLS TLS `yaml:"tls"`
}

// Configuration for description checks.
type Checks struct {
	// Strict treats check warnings as errors.
	Strict bool `yaml:"strict"`
}

// TLS configuration.
type TLS struct {
	// The certificate file to use.
	CertFile string `yaml:"cert_file"`

	// The key file to use.
	KeyFile string `yaml:"key_file"`

	// The CA file to use. If set, clients must present a certificate
	// signed by it.
	CAFile string `yaml:"ca_file"`
}

///////////////////////////////////////////////////////////////////////////////
// Loading Config
///////////////////////////////////////////////////////////////////////////////

// Load loads a configuration file into the struct pointed to by the
// configStruct argument.
func Load(configFile string, configStruct interface{}) error {
	// Make sure the file exists.
	_, err := os.Stat(configFile)
	if err != nil {
		return err
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.UnmarshalStrict(data, configStruct)
}
