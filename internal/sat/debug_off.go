//go:build !satdebug

package sat

func (s *Solver) debugChecks() {}
