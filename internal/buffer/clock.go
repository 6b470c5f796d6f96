package buffer

// ───────────────────────────────────────────────────────────────────────────
// Clock (second-chance) replacement policy
// ───────────────────────────────────────────────────────────────────────────
//
// ClockPolicy tracks one reference bit per frame and a sweep hand. It never
// looks at pin counts itself — the buffer manager tells it which frames are
// pinned via isPinned when asking for a victim, keeping the policy a pure
// bookkeeping structure over reference bits.

// ClockPolicy implements Clock/second-chance eviction over a fixed number of
// frames.
type ClockPolicy struct {
	refBit []bool
	hand   int
}

// NewClockPolicy creates a policy over n frames, all initially unreferenced.
func NewClockPolicy(n int) *ClockPolicy {
	return &ClockPolicy{refBit: make([]bool, n)}
}

// RecordAccess sets the reference bit on a page hit.
func (c *ClockPolicy) RecordAccess(frame int) {
	c.refBit[frame] = true
}

// RecordLoad sets the reference bit when a new page is placed in frame.
func (c *ClockPolicy) RecordLoad(frame int) {
	c.refBit[frame] = true
}

// RecordUnpin clears the reference bit, making frame an immediate eviction
// candidate on the policy's next pass over it.
func (c *ClockPolicy) RecordUnpin(frame int) {
	c.refBit[frame] = false
}

// ChooseVictim scans up to two full passes starting at the hand, considering
// only frames for which isPinned reports false. A candidate with a clear
// reference bit is returned immediately; one with a set bit is cleared and
// skipped, giving it exactly one more sweep of survival. Returns false if no
// unpinned frame exists within the two-pass budget (every frame pinned).
func (c *ClockPolicy) ChooseVictim(isPinned func(frame int) bool) (int, bool) {
	n := len(c.refBit)
	if n == 0 {
		return 0, false
	}
	for i := 0; i < 2*n; i++ {
		frame := c.hand
		c.hand = (c.hand + 1) % n
		if isPinned(frame) {
			continue
		}
		if !c.refBit[frame] {
			return frame, true
		}
		c.refBit[frame] = false
	}
	return 0, false
}
