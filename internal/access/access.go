// Package access decides whether a scanned tag opens the door.
package access

import (
	"strings"

	"github.com/edwardstark/taglock/internal/device"
	"github.com/edwardstark/taglock/internal/store"
)

// Outcome classifies a single access check.
type Outcome int

const (
	// OutcomeEmpty is the rejection for a blank scan. It is distinct from
	// a deny so the UI can say "empty tag" instead of naming a tag.
	OutcomeEmpty Outcome = iota
	OutcomeGranted
	OutcomeDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGranted:
		return "granted"
	case OutcomeDenied:
		return "denied"
	default:
		return "empty"
	}
}

// Result is the decision for one scanned tag.
type Result struct {
	Tag     string
	Outcome Outcome

	// UnlockErr is set when the grant's unlock write failed. The grant
	// itself stands; the store decided access, not the serial port.
	UnlockErr error
}

// Granted reports whether the check passed.
func (r Result) Granted() bool {
	return r.Outcome == OutcomeGranted
}

// Controller checks tags against the allow-list and fires the unlock
// side effect on a grant.
type Controller struct {
	store *store.Store
	link  device.Link
}

// NewController builds a controller. The link may be nil; grants are then
// decided without actuating anything.
func NewController(s *store.Store, link device.Link) *Controller {
	return &Controller{store: s, link: link}
}

// SetLink swaps the attached device link. Called when scanning starts or
// stops; nil detaches.
func (c *Controller) SetLink(link device.Link) {
	c.link = link
}

// Check validates a scanned tag. Empty input is rejected outright,
// membership in the store grants and triggers the unlock command, and any
// other tag is denied. There is no rate limiting or fuzzy matching.
func (c *Controller) Check(tag string) Result {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Result{Outcome: OutcomeEmpty}
	}
	if !c.store.Contains(tag) {
		return Result{Tag: tag, Outcome: OutcomeDenied}
	}
	res := Result{Tag: tag, Outcome: OutcomeGranted}
	if c.link != nil {
		res.UnlockErr = c.link.Unlock()
	}
	return res
}
