package op

import "math"

// lutSize is the number of intervals in a power-curve table. 12 bits is well
// beyond the precision of 8-bit source data.
const lutSize = 4096

// powLUT tabulates v^exp on [0, 1] for linear interpolation.
type powLUT [lutSize + 1]float64

func newPowLUT(exp float64) *powLUT {
	var t powLUT
	for i := range t {
		t[i] = math.Pow(float64(i)/lutSize, exp)
	}
	return &t
}

// at returns the interpolated table value for v, clamped to [0, 1].
func (t *powLUT) at(v float64) float64 {
	v = clamp01(v) * lutSize
	i := int(v)
	if i >= lutSize {
		return t[lutSize]
	}
	f := v - float64(i)
	return t[i] + (t[i+1]-t[i])*f
}
