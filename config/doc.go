/*
Copyright 2017-2020, Square, Inc.

Package config provides the ability to load config files into predefined
structures. The pnsynth tool uses the Synth struct.

Types of config structs provided by this package:

* Synth: all of the config needed to run pnsynth

* Server: the configuration for running the API server (ex: the listen address,
  the TLS config the server should run with)

* Checks: how strictly descriptions are checked before a network is built

* TLS: the configuration for constructing a Go tls.Config (ex: the CA cert file
  to use, the key file to use, etc.)
*/
package config
