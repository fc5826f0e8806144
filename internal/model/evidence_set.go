package model

// EvidenceSet is the typed view over everything the sources returned
// during one run. Scorers and the assembler read from it; only the
// orchestrator writes to it, one step at a time.
type EvidenceSet struct {
	Registry    *RegistryRecord
	Search      *SearchResults
	Credibility *CredibilityAnalysis
	ScamCheck   *ScamCheck
	Reviews     *ReviewAnalysis
	Presence    *OnlinePresence
	Address     *AddressCheck
	Compliance  []ComplianceFinding

	// BySource keeps the raw envelopes, including degraded ones, for the
	// per-source report summaries.
	BySource map[string]Evidence
}

// NewEvidenceSet returns an empty set.
func NewEvidenceSet() *EvidenceSet {
	return &EvidenceSet{BySource: make(map[string]Evidence)}
}

// Add merges one envelope into the set. Degraded envelopes are recorded
// in BySource but contribute no payload.
func (s *EvidenceSet) Add(ev Evidence) {
	s.BySource[ev.Source] = ev
	if ev.Degraded {
		return
	}
	if ev.Registry != nil {
		s.Registry = ev.Registry
	}
	if ev.Search != nil {
		s.Search = ev.Search
	}
	if ev.Credibility != nil {
		s.Credibility = ev.Credibility
	}
	if ev.ScamCheck != nil {
		s.ScamCheck = ev.ScamCheck
	}
	if ev.Reviews != nil {
		s.Reviews = ev.Reviews
	}
	if ev.Presence != nil {
		s.Presence = ev.Presence
	}
	if ev.Address != nil {
		s.Address = ev.Address
	}
	if len(ev.Compliance) > 0 {
		s.Compliance = append(s.Compliance, ev.Compliance...)
	}
}
