// Package uwcolor provides a pure-Go color correction for underwater photographs.
//
// Light loses red first, then green, then blue as it travels through water. The correction here
// is pragmatic rather than physical: pixels where a channel clearly dominates the other two get
// that channel multiplied by a strength factor. Which channels are eligible, and how strongly they
// are boosted by default, depends on the approximate dive depth (see Brackets).
package uwcolor
