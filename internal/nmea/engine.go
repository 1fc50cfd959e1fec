// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea

import (
	"log"
	"strings"
	"sync"
)

// Engine fuses a line-oriented stream of NMEA-0183 sentences into one
// continuously updated Fix. Each line runs through trim -> validate ->
// route -> merge; a successful merge bumps the sentence counter and hands
// a snapshot to the registered update callback.
//
// No input is fatal: garbled lines, bad checksums and unknown sentence
// types are dropped and the stream keeps going. Feeding the same line
// twice merges it twice (last write wins per field).
//
// The fix lives behind a mutex so the transport reader may run on a
// different goroutine than snapshot readers.
type Engine struct {
	mu       sync.Mutex
	fix      Fix
	onUpdate func(Fix)
	debug    bool
}

func New() *Engine {
	return &Engine{}
}

// SetDebug enables logging of dropped lines. Off by default: a noisy
// serial link can reject sentences at line rate.
func (e *Engine) SetDebug(v bool) {
	e.mu.Lock()
	e.debug = v
	e.mu.Unlock()
}

// OnUpdate registers the collaborator to notify after each successfully
// merged sentence. It receives a deep copy of the fix.
func (e *Engine) OnUpdate(fn func(Fix)) {
	e.mu.Lock()
	e.onUpdate = fn
	e.mu.Unlock()
}

// Snapshot returns a deep copy of the current fix.
func (e *Engine) Snapshot() Fix {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fix.Clone()
}

// ProcessLine runs one transport line through the engine and reports
// whether the fix was updated.
func (e *Engine) ProcessLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "$") {
		e.debugf("nmea: dropping line without leading '$': %q", line)
		return false
	}
	// Sentences without a '*' are let through: some receivers omit the
	// checksum entirely.
	if strings.ContainsRune(line, '*') && !ValidChecksum(line) {
		e.debugf("nmea: checksum mismatch: %q", line)
		return false
	}

	tag, _, _ := strings.Cut(line, ",")
	fields := strings.Split(line, ",")

	snap, fn, ok := e.merge(tag, fields)
	if !ok {
		return false
	}
	if fn != nil {
		fn(snap)
	}
	return true
}

// merge routes the sentence to its decoder under the lock and, on
// success, returns the post-merge snapshot along with the callback to
// invoke (outside the lock, so a collaborator may call Snapshot).
//
// Decoder field indexes count the full comma split with the tag at
// index 0, matching the published NMEA-0183 talker-sentence layouts.
func (e *Engine) merge(tag string, fields []string) (snap Fix, fn func(Fix), ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		// A decoder must never take down the stream. Fields merged
		// before the failure stay merged, the counter does not move.
		if r := recover(); r != nil {
			e.debugf("nmea: panic decoding %s: %v", tag, r)
			ok = false
		}
	}()

	switch tag {
	case "$GPVTG":
		ok = e.applyVTG(fields)
	case "$GPGGA":
		ok = e.applyGGA(fields)
	case "$GPGSA":
		ok = e.applyGSA(fields)
	case "$GPGSV":
		ok = e.applyGSV(fields)
	case "$GPGLL":
		ok = e.applyGLL(fields)
	case "$GPRMC":
		ok = e.applyRMC(fields)
	default:
		// Unsupported sentence types pass through silently.
		return Fix{}, nil, false
	}
	if !ok {
		return Fix{}, nil, false
	}
	e.fix.SentencesProcessed++
	return e.fix.Clone(), e.onUpdate, true
}

func (e *Engine) debugf(format string, args ...any) {
	if e.debug {
		log.Printf(format, args...)
	}
}
