package utils

import (
	"math/rand"
	"sync"
	"time"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
)

// Pacer produces the jittered pauses between browser actions. Sleep is
// time.Sleep unless replaced, which tests do to run instantly.
type Pacer struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	Sleep func(time.Duration)
}

func NewPacer(seed int64) *Pacer {
	return &Pacer{
		rnd:   rand.New(rand.NewSource(seed)),
		Sleep: time.Sleep,
	}
}

// Jitter picks a duration uniformly in [min, max].
func (p *Pacer) Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + time.Duration(p.rnd.Int63n(int64(max-min)+1))
}

// RandomDelay pauses for a random time in r and returns how long.
func (p *Pacer) RandomDelay(r config.Range) time.Duration {
	d := p.Jitter(r.Min, r.Max)
	p.Wait(d)
	return d
}

// Wait pauses for exactly d.
func (p *Pacer) Wait(d time.Duration) {
	if d > 0 {
		p.Sleep(d)
	}
}

// SmoothScroll scrolls down in steps and back up a little, which also
// triggers lazily loaded result cards.
func SmoothScroll(page dom.Page, p *Pacer) error {
	for i := 0; i < 5; i++ {
		if err := page.Scroll(400); err != nil {
			return err
		}
		p.RandomDelay(config.Range{Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond})
	}

	// human-like correction
	return page.Scroll(-200)
}
