// Package critical implements the immediate priority ceiling protocol on top
// of a priority threshold register.
//
// Entering a section on a resource raises the threshold to the resource's
// ceiling, deferring every job that could touch the resource while leaving
// more urgent jobs untouched. Sections nest in LIFO order: Exit restores the
// exact value captured by the matching Enter. Pairing is the caller's
// responsibility, there is no run time check.
package critical

import "omibyte.io/ceiling/basepri"

// Ceilinger is a resource table entry.
type Ceilinger interface {
	Ceiling() uint8
}

// Token carries the threshold that was installed before a section was
// entered. It must be handed to exactly one Exit.
type Token struct {
	prev uint32
}

// Previous returns the saved threshold.
func (t Token) Previous() uint32 {
	return t.prev
}

// Section guards resources of one core. The barrier variant is a type
// argument so the choice is made once per build target.
type Section[R basepri.Register, B basepri.Barrier] struct {
	reg     R
	barrier B
	enc     basepri.Encoding
}

func New[R basepri.Register, B basepri.Barrier](reg R, barrier B, enc basepri.Encoding) *Section[R, B] {
	return &Section[R, B]{
		reg:     reg,
		barrier: barrier,
		enc:     enc,
	}
}

// Enter raises the threshold to the given logical ceiling unless a stricter
// one is already installed.
func (s *Section[R, B]) Enter(ceiling uint8) Token {
	t := Token{prev: s.reg.Get()}
	s.reg.SetMax(s.enc.Hardware(ceiling))
	s.barrier.Enter()
	return t
}

// EnterResource enters a section at the ceiling of a resource table entry.
func (s *Section[R, B]) EnterResource(r Ceilinger) Token {
	return s.Enter(r.Ceiling())
}

// Exit restores the threshold saved in the token.
func (s *Section[R, B]) Exit(t Token) {
	s.barrier.Exit()
	s.reg.Set(t.prev)
}

// Lock runs fn inside a section on the resource.
func (s *Section[R, B]) Lock(r Ceilinger, fn func()) {
	t := s.EnterResource(r)
	defer s.Exit(t)
	fn()
}

// Mask returns the threshold currently installed.
func (s *Section[R, B]) Mask() uint32 {
	return s.reg.Get()
}

// Deferred reports whether a job at the given logical priority would be kept
// from running by the installed threshold.
func (s *Section[R, B]) Deferred(priority uint8) bool {
	return basepri.Blocks(s.reg.Get(), s.enc.Hardware(priority))
}
