// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mafquery

import "errors"

// Sample identifies one row to display, with optional presentation hints.
// Config.Samples is a list of these records; a sample given only by its ID
// leaves Label and Color empty.
type Sample struct {
	ID    string
	Label string
	Color string
}

// Config gathers the file locations and options that select and configure
// one of the three physical adapters. Exactly one of the TAF pair, the
// BigBed location, or the MafTabix pair must be set.
type Config struct {
	TafGzLocation string
	TaiLocation   string

	BigBedLocation string

	BedGzLocation string
	IndexLocation string

	Samples []Sample

	// NhLocation is the optional Newick tree location. It is not
	// consumed by this core; callers that render a tree alongside the
	// alignment pass it through untouched.
	NhLocation string

	// RefAssemblyName overrides reference-row resolution (see
	// ResolveReference's fallback cascade).
	RefAssemblyName string

	Status StatusCallback
}

// Kind identifies which physical adapter a Config selects.
type Kind int

const (
	KindTAF Kind = iota
	KindBigMaf
	KindMafTabix
)

// Validate checks that Config selects exactly one adapter and returns
// which one.
func (c Config) Validate() (Kind, error) {
	taf := c.TafGzLocation != "" || c.TaiLocation != ""
	big := c.BigBedLocation != ""
	tabix := c.BedGzLocation != "" || c.IndexLocation != ""

	n := 0
	var kind Kind
	if taf {
		if c.TafGzLocation == "" || c.TaiLocation == "" {
			return 0, errors.New("mafquery: TAF adapter requires both TafGzLocation and TaiLocation")
		}
		n++
		kind = KindTAF
	}
	if big {
		n++
		kind = KindBigMaf
	}
	if tabix {
		if c.BedGzLocation == "" || c.IndexLocation == "" {
			return 0, errors.New("mafquery: MafTabix adapter requires both BedGzLocation and IndexLocation")
		}
		n++
		kind = KindMafTabix
	}
	if n == 0 {
		return 0, errors.New("mafquery: no adapter configured")
	}
	if n > 1 {
		return 0, errors.New("mafquery: more than one adapter configured")
	}
	return kind, nil
}

func (c Config) status(phase string) {
	if c.Status != nil {
		c.Status(phase)
	}
}
