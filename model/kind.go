// Copyright 2020, Square, Inc.

package model

// Kind is the type of a process.
type Kind string

const (
	KindComposite   Kind = "composite"
	KindComb        Kind = "comb"        // applies a function to one value from each in port
	KindDelay       Kind = "delay"       // outputs the previous cycle's input, breaks feedback
	KindZipx        Kind = "zipx"        // fan-in: many in ports multiplexed onto one out port
	KindUnzipx      Kind = "unzipx"      // fan-out: one in port demultiplexed onto many out ports
	KindFanout      Kind = "fanout"      // copies one in port to every out port
	KindParallelMap Kind = "parallelmap" // a comb applied NumProcesses times in parallel
	KindZipWithN    Kind = "zipwithn"
)

var Kinds = []Kind{
	KindComposite,
	KindComb,
	KindDelay,
	KindZipx,
	KindUnzipx,
	KindFanout,
	KindParallelMap,
	KindZipWithN,
}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

func (k Kind) IsComposite() bool {
	return k == KindComposite
}

func (k Kind) IsLeaf() bool {
	return k.Valid() && k != KindComposite
}

func (k Kind) IsDelay() bool {
	return k == KindDelay
}

// Attributes are the kind-specific settings of a process.
type Attributes struct {
	Cost         int    // estimated execution cost, >= 0
	Function     string // comb, parallelmap, zipwithn
	InitialValue string // delay
	NumProcesses int    // parallelmap
}
