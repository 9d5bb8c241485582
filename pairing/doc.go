// SPDX-License-Identifier: EPL-2.0

// Package pairing finds audio files and pairs references with their degraded
// counterparts.
//
// Two files pair when their stems match: the base name without directory or
// extension. Directory structure is ignored, so ref/a/x.wav pairs with
// deg/b/x.flac.
//
//	refs, _ := pairing.Discover("ref")
//	degs, _ := pairing.Discover("deg")
//	res, err := pairing.Matcher{}.Match(refs, degs)
//
// References without a partner are listed in Result.Unmatched and do not stop
// the match. Only an empty pairing is an error (ErrNoMatchingFiles).
package pairing
