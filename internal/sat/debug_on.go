//go:build satdebug

package sat

import "log"

func (s *Solver) debugChecks() {
	if err := s.checkWatchedLists(); err != nil {
		log.Fatalf("watched list corrupted: %s", err)
	}
	if err := s.checkTrail(); err != nil {
		log.Fatalf("trail corrupted: %s", err)
	}
	if err := s.checkOrder(); err != nil {
		log.Fatalf("ordering corrupted: %s", err)
	}
}
