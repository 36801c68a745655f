// package env provides envelope generators.
package env

import (
	"fmt"
	"time"
)

// AR is a linear attack-release envelope over a whole note: it ramps up from
// zero over the attack, holds at 1, then ramps back down to zero so that the
// note ends on the last sample. Short notes squeeze both ramps in
// proportionally.
type AR struct {
	nAttack  int // samples
	nRelease int
}

// AttackRelease makes an AR envelope for the given sample rate.
func AttackRelease(attack, release time.Duration, samplerate int) AR {
	return AR{
		nAttack:  int(attack.Seconds() * float64(samplerate)),
		nRelease: int(release.Seconds() * float64(samplerate)),
	}
}

func (a AR) String() string { return fmt.Sprintf("AR(%d,%d)", a.nAttack, a.nRelease) }

// Apply scales buf in place.
func (a AR) Apply(buf []float64) {
	nAttack, nRelease := a.nAttack, a.nRelease
	if total := nAttack + nRelease; total > len(buf) {
		nAttack = nAttack * len(buf) / total
		nRelease = len(buf) - nAttack
	}
	for i := 0; i < nAttack; i++ {
		buf[i] *= pos(0, i, nAttack)
	}
	start := len(buf) - nRelease
	for i := start; i < len(buf); i++ {
		buf[i] *= pos(0, len(buf)-1-i, nRelease)
	}
}

// pos returns a coefficient between 0 and 1 depending on where pos is between
// start and end.
func pos(start, pos, end int) float64 {
	return float64(pos-start) / float64(end-start)
}
