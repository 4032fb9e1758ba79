package rawhdr

// A CfaBlock holds the absolute indices, into a row-major pixel
// buffer, of the four photosites in one 2x2 cell of the color filter
// array. They are ordered like this:
//
//	0 1
//	2 3
type CfaBlock [4]int

// BlockToIndices returns the indices of the i-th 2x2 block. Blocks are
// numbered left-to-right along each pair of rows, then top-to-bottom.
//
// There is no bounds checking; the caller must keep i < len(pixels)/4.
func BlockToIndices(width, i int) CfaBlock {
	row    := 2 * i / width   // which pair of rows the block sits in
	offset := row * width     // 2*i only walks one row of each pair, so skip the other one
	tl     := offset + 2*i

	return CfaBlock{tl, tl + 1, tl + width, tl + width + 1}
}

// NumBlocks is how many 2x2 blocks cover a buffer of nPixels.
func NumBlocks(nPixels int) int { return nPixels / 4 }

// IsSaturated returns true if any photosite in the block read at or
// above the white level. This has to be checked against the native
// sensor values, before any black level or exposure adjustment.
func IsSaturated(pixels []uint16, block CfaBlock, whiteLevel uint32) bool {
	for _, i := range block {
		if uint32(pixels[i]) >= whiteLevel {
			return true
		}
	}
	return false
}

// satSub is a-b, floored at zero instead of wrapping around.
func satSub(a, b uint16) uint16 {
	if a <= b {
		return 0
	}
	return a - b
}
