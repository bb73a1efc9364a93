package booking

import (
	"crypto/rand"
	"io"
	"strings"
	"time"
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrEndNotAfterStart
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open semantics: back-to-back slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

func (ts TimeSlot) Equal(other TimeSlot) bool {
	return ts.start.Equal(other.start) && ts.end.Equal(other.end)
}

type Reference string

func (r Reference) String() string {
	return string(r)
}

const (
	referenceSuffixLen = 6
	referenceAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceTimestamp = "02011504" // ddmmHHMM

	// largest multiple of len(referenceAlphabet) that fits in a byte
	referenceByteLimit = 256 - 256%len(referenceAlphabet)
)

// ReferenceGenerator builds PREFIX-ddmmHHMM-XXXXXX references. Uniqueness is
// enforced by storage; callers retry on collision.
type ReferenceGenerator struct {
	prefix string
	random io.Reader
}

func NewReferenceGenerator(prefix string) *ReferenceGenerator {
	return NewReferenceGeneratorWithSource(prefix, rand.Reader)
}

func NewReferenceGeneratorWithSource(prefix string, random io.Reader) *ReferenceGenerator {
	return &ReferenceGenerator{prefix: strings.ToUpper(prefix), random: random}
}

func (g *ReferenceGenerator) Generate(now time.Time) (Reference, error) {
	var sb strings.Builder
	sb.WriteString(g.prefix)
	sb.WriteByte('-')
	sb.WriteString(now.Format(referenceTimestamp))
	sb.WriteByte('-')

	// Bytes at or above referenceByteLimit are discarded so every symbol is equally likely.
	buf := make([]byte, referenceSuffixLen)
	for written := 0; written < referenceSuffixLen; {
		if _, err := io.ReadFull(g.random, buf[:referenceSuffixLen-written]); err != nil {
			return "", err
		}
		for _, b := range buf[:referenceSuffixLen-written] {
			if int(b) >= referenceByteLimit {
				continue
			}
			sb.WriteByte(referenceAlphabet[int(b)%len(referenceAlphabet)])
			written++
		}
	}
	return Reference(sb.String()), nil
}
