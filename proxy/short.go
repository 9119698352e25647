package proxy

// converts big-endian 16-bit pixel bytes (as held in image.Gray16.Pix) to uint16 values
func Short8As16(in []uint8) []uint16 {
	out := make([]uint16, len(in)/2)
	for i := 0; i < len(in)/2; i++ {
		out[i] = uint16(in[2*i])<<8 | uint16(in[2*i+1])
	}
	return out
}

// histogram equalisation of 8-bit values
func equaliser(Y []uint8) []uint8 {
	pxout := make([]uint8, len(Y))
	N := len(Y)
	if N == 0 {
		return pxout
	}

	// make histogram
	var hist [256]int
	for _, y := range Y {
		hist[y]++
	}
	var cdf [256]float64
	cdf[0] = float64(hist[0])
	for i := 1; i < 256; i++ {
		cdf[i] = cdf[i-1] + float64(hist[i])
	}

	var mapper [256]uint8
	for i := range mapper {
		mapper[i] = uint8(cdf[i] * 255 / float64(N))
	}
	for i, y := range Y {
		pxout[i] = mapper[y]
	}
	return pxout
}
