// Package status implements the outcome model shared by every operation:
// an ordered accumulation of diagnostic events (Status) and a value that is
// only present while no error has been recorded (Result).
package status

import (
	"errors"
	"strings"
)

// Status is an ordered sequence of Events gathered during one logical
// operation. The zero value is an empty, successful Status.
//
// A Status is owned by the Result or function building it. AppendStatus
// copies events and Result.Status hands out a clone, so no two Results
// share a mutable Status.
type Status struct {
	events []Event
	level  Severity
}

// New returns a Status containing events in order.
func New(events ...Event) *Status {
	s := &Status{}
	for _, e := range events {
		s.AddEvent(e)
	}
	return s
}

// AddEvent appends e and raises the level of s to e.Severity if higher.
func (s *Status) AddEvent(e Event) {
	s.events = append(s.events, e)
	s.level = max(s.level, e.Severity)
}

// AddEventOverride appends e and sets the level of s to e.Severity,
// regardless of the events already held. Adding a Warning this way turns
// an erroneous Status into a warning one.
func (s *Status) AddEventOverride(e Event) {
	s.events = append(s.events, e)
	s.level = e.Severity
}

// AppendStatus appends the events of other in order. A nil other is a no-op.
func (s *Status) AppendStatus(other *Status) {
	if other == nil {
		return
	}
	s.events = append(s.events, other.events...)
	s.level = max(s.level, other.level)
}

// Clone returns an independent copy of s, level included. Cloning nil
// yields an empty Status.
func (s *Status) Clone() *Status {
	if s == nil {
		return New()
	}
	return &Status{events: s.Events(), level: s.level}
}

// Events returns a copy of the accumulated events.
func (s *Status) Events() []Event {
	if s == nil {
		return nil
	}
	return append([]Event(nil), s.events...)
}

// Level is the highest severity recorded, or the overriding one. Zero
// means no event was recorded.
func (s *Status) Level() Severity {
	if s == nil {
		return 0
	}
	return s.level
}

func (s *Status) IsError() bool {
	return s.Level() == Error
}

func (s *Status) IsWarning() bool {
	return s.Level() == Warning
}

// IsSuccess reports whether no event was recorded at all.
func (s *Status) IsSuccess() bool {
	return s == nil || len(s.events) == 0
}

// Err joins every Error event, or returns nil when s is not an error.
func (s *Status) Err() error {
	if !s.IsError() {
		return nil
	}
	var errs []error
	for _, e := range s.events {
		if e.Severity == Error {
			errs = append(errs, e)
		}
	}
	if len(errs) == 0 {
		// overridden to Error by a non-error event
		errs = append(errs, s.events[len(s.events)-1])
	}
	return errors.Join(errs...)
}

func (s *Status) String() string {
	if s.IsSuccess() {
		return "success"
	}
	var b strings.Builder
	b.WriteString(s.level.String())
	for _, e := range s.events {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Find returns the first event whose detail has type D.
func Find[D Detail](s *Status) (D, Event, bool) {
	for _, e := range s.Events() {
		if d, ok := e.Detail.(D); ok {
			return d, e, true
		}
	}
	var zero D
	return zero, Event{}, false
}

// Has reports whether s holds an event whose detail has type D.
func Has[D Detail](s *Status) bool {
	_, _, ok := Find[D](s)
	return ok
}
