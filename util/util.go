// Copyright 2017-2020, Square, Inc.

// Package util provides small helpers shared by the synthesizer tools.
package util

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"

	"github.com/rs/xid"
)

// XID generates a globally unique, 12-byte xid. Stored schedule results and
// scheduler runs are identified by one.
func XID() xid.ID {
	return xid.New()
}

// NewTLSConfig takes a cert, key, and optional ca file and creates a
// *tls.Config for the API server.
func NewTLSConfig(caFile, certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tls.LoadX509KeyPair: %s", err)
	}
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
	}
	if caFile == "" {
		return tlsConfig, nil
	}

	caCert, err := ioutil.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM(caCert)
	tlsConfig.ClientCAs = caCertPool
	tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	return tlsConfig, nil
}
