package ldpc

import "math"

// maxHardIterations bounds Gallager's bit-flipping algorithm; a regular
// LDPC code this small either converges in a handful of rounds or its
// error pattern is beyond what the code can correct.
const maxHardIterations = 50

// maxSoftIterations bounds sum-product message passing before falling back
// to a hard decision.
const maxSoftIterations = 30

// DecodeHard runs Gallager's bit-flipping algorithm over codeword (one
// byte per bit, 0 or 1) using the matrix built for (len(codeword), wc,
// wr). It returns the systematic information bits and whether the
// resulting codeword satisfies every parity check.
func DecodeHard(codeword []byte, wc, wr int) (info []byte, ok bool) {
	mt, err := BuildMatrix(len(codeword), wc, wr)
	if err != nil {
		return nil, false
	}
	bits := make([]byte, len(codeword))
	copy(bits, codeword)

	unsatisfied := mt.syndrome(bits)
	for iter := 0; iter < maxHardIterations && !allSatisfied(unsatisfied); iter++ {
		flip := -1
		bestCount := wc / 2
		for c := 0; c < mt.N; c++ {
			count := 0
			for _, r := range mt.ColRows[c] {
				if unsatisfied[r] {
					count++
				}
			}
			if count > bestCount {
				bestCount = count
				flip = c
			}
		}
		if flip < 0 {
			break
		}
		bits[flip] ^= 1
		unsatisfied = mt.syndrome(bits)
	}

	return bits[:mt.InfoBits()], allSatisfied(unsatisfied)
}

// DecodeSoft runs sum-product (belief propagation) decoding over the
// log-likelihood ratios implied by reliabilities (the probability, per
// bit, that the transmitted bit is 1), falling back to the hard decoder's
// bit flipping, started from the last iteration's hard decision, if it
// fails to converge within the iteration budget.
func DecodeSoft(reliabilities []float64, wc, wr int) (info []byte, ok bool) {
	mt, err := BuildMatrix(len(reliabilities), wc, wr)
	if err != nil {
		return nil, false
	}

	channelLLR := make([]float64, mt.N)
	for i, p := range reliabilities {
		channelLLR[i] = llr(p)
	}

	// msgV2C[row][col] and msgC2V[row][col] hold messages keyed by the
	// (row, position-in-row) pairing recorded in mt.Rows.
	msgV2C := make([][]float64, len(mt.Rows))
	msgC2V := make([][]float64, len(mt.Rows))
	for r, cols := range mt.Rows {
		msgV2C[r] = make([]float64, len(cols))
		msgC2V[r] = make([]float64, len(cols))
		for j, c := range cols {
			msgV2C[r][j] = channelLLR[c]
		}
	}

	hard := make([]byte, mt.N)
	for iter := 0; iter < maxSoftIterations; iter++ {
		// check-to-variable update: tanh rule
		for r, cols := range mt.Rows {
			for j := range cols {
				prod := 1.0
				for k := range cols {
					if k == j {
						continue
					}
					prod *= math.Tanh(msgV2C[r][k] / 2.0)
				}
				prod = clamp(prod, -0.999999999999, 0.999999999999)
				msgC2V[r][j] = 2.0 * math.Atanh(prod)
			}
		}

		// variable-to-check update and total belief per column
		total := make([]float64, mt.N)
		copy(total, channelLLR)
		for r, cols := range mt.Rows {
			for j, c := range cols {
				total[c] += msgC2V[r][j]
			}
		}
		for r, cols := range mt.Rows {
			for j, c := range cols {
				msgV2C[r][j] = total[c] - msgC2V[r][j]
			}
		}

		for c := 0; c < mt.N; c++ {
			if total[c] > 0 {
				hard[c] = 1
			} else {
				hard[c] = 0
			}
		}
		if allSatisfied(mt.syndrome(hard)) {
			return hard[:mt.InfoBits()], true
		}
	}

	// fall back to bit-flipping starting from the last iteration's hard decision
	return DecodeHard(hard, wc, wr)
}

func llr(p float64) float64 {
	p = clamp(p, 1e-6, 1-1e-6)
	return math.Log(p / (1 - p))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
