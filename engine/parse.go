// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"regexp"
	"strconv"
)

// Tried in order; the first capture that parses wins.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)MOS-LQO:\s*([\d.]+)`),
	regexp.MustCompile(`(?i)mos_lqo:\s*([\d.]+)`),
	regexp.MustCompile(`(?i)Quality score:\s*([\d.]+)`),
	regexp.MustCompile(`(?i)Score:\s*([\d.]+)`),
}

// ParseScore extracts the MOS-LQO value from engine output.
func ParseScore(output string) (float64, bool) {
	for _, re := range scorePatterns {
		m := re.FindStringSubmatch(output)
		if m == nil {
			continue
		}

		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}

	return 0, false
}
