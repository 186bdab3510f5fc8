package session

// AddLocation makes loc the current location. New names are prepended to
// the history; a name already visited is not duplicated but still becomes
// current. History is unbounded.
func (s *Session) AddLocation(loc Location) {
	for i := range s.LocationHistory {
		if s.LocationHistory[i].Name == loc.Name {
			s.CurrentLocation = &s.LocationHistory[i]
			s.Log("[TRAVEL] Recalling map: %s", loc.Name)
			return
		}
	}
	s.LocationHistory = append([]Location{loc}, s.LocationHistory...)
	s.CurrentLocation = &s.LocationHistory[0]
	s.Log("[TRAVEL] Entering: %s. %s", loc.Name, loc.EnvironmentState)
}

// SetCurrent re-selects a previously visited location by name without
// touching the history. Returns false when the name is not in the archive.
func (s *Session) SetCurrent(name string) bool {
	for i := range s.LocationHistory {
		if s.LocationHistory[i].Name == name {
			s.CurrentLocation = &s.LocationHistory[i]
			s.Log("[TRAVEL] Recalling map: %s", name)
			return true
		}
	}
	return false
}

// BeginLocationRequest hands out a token for an in-flight location
// manifest. Only the most recent token can apply a result; anything older
// is stale and must be dropped.
func (s *Session) BeginLocationRequest() uint64 {
	s.locationSeq++
	return s.locationSeq
}

// ApplyLocation folds an async manifest result into the session if token
// is still the latest request. Stale results are ignored and false is
// returned.
func (s *Session) ApplyLocation(token uint64, loc Location) bool {
	if token != s.locationSeq {
		return false
	}
	s.AddLocation(loc)
	return true
}
