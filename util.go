package huffcode

import (
	mathbits "math/bits"
)

// ceilLog2 returns the number of bits needed to give each of x values a
// distinct index.  ceilLog2(0) and ceilLog2(1) are both 0.
func ceilLog2(x uint32) uint32 {
	if x <= 1 {
		return 0
	}
	return uint32(32 - mathbits.LeadingZeros32(x-1))
}
