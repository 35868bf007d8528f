package service

// RequestStatus is the lifecycle state of a client request. Offers only land
// while the request is in the active set; every active state funnels into
// quoted, and quoted never regresses, so replaying an offer is harmless.
type RequestStatus string

const (
	StatusPublished  RequestStatus = "published"
	StatusMatched    RequestStatus = "matched"
	StatusQuoted     RequestStatus = "quoted"
	StatusDirectSent RequestStatus = "direct_sent"

	// terminal states, not reachable from this service
	StatusClosed    RequestStatus = "closed"
	StatusCancelled RequestStatus = "cancelled"
	StatusExpired   RequestStatus = "expired"
)

// AcceptsOffers reports whether a request in this state takes new offers.
func (s RequestStatus) AcceptsOffers() bool {
	switch s {
	case StatusPublished, StatusMatched, StatusQuoted, StatusDirectSent:
		return true
	}
	return false
}

// NextAfterOffer returns the state the request moves to once an offer lands
// and whether a write is needed. quoted -> quoted is a no-op, which is what
// makes concurrent and repeated offers safe without read-modify-write locking.
func (s RequestStatus) NextAfterOffer() (RequestStatus, bool) {
	if !s.AcceptsOffers() {
		return s, false
	}
	if s == StatusQuoted {
		return StatusQuoted, false
	}
	return StatusQuoted, true
}
