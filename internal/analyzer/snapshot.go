package analyzer

import "sync"

// Genre is a soft classification hint derived from tempo and band energy.
type Genre int

const (
	GenreAuto Genre = iota
	GenreEDM
	GenreHipHop
	GenreRock
	GenreJazz
	GenreAmbient
)

var genreNames = map[Genre]string{
	GenreAuto:    "auto",
	GenreEDM:     "edm",
	GenreHipHop:  "hiphop",
	GenreRock:    "rock",
	GenreJazz:    "jazz",
	GenreAmbient: "ambient",
}

func (g Genre) String() string {
	if s, ok := genreNames[g]; ok {
		return s
	}
	return "auto"
}

// Snapshot is an atomically published view of the extracted audio features.
// All fields are consistent as of one analysis block; consumers always get
// a full copy, never a partially updated mix.
type Snapshot struct {
	BPM         float64
	Intensity   float64
	AudioActive bool
	Bass        float64
	Mid         float64
	High        float64
	Building    bool
	Drop        bool
	Genre       Genre
}

// BeatEvent is pushed to the beat queue for each accepted beat.
type BeatEvent struct {
	Timestamp float64 // seconds since analysis start
	BPM       float64
	Intensity float64
}

// Queue is an unbounded FIFO of beat events. The analyzer pushes, the
// lighting engine drains it fully every tick without blocking.
type Queue struct {
	mu     sync.Mutex
	events []BeatEvent
}

// NewQueue creates an empty beat queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event.
func (q *Queue) Push(ev BeatEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events. Returns nil when empty.
func (q *Queue) Drain() []BeatEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
