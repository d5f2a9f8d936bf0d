package player

import (
	"sync"
	"time"

	"AuraFM/logger"
	"AuraFM/model"
)

// State is the playback state of the controller.
type State int

const (
	// StateIdle means no track is loaded.
	StateIdle State = iota
	// StatePaused means a track is loaded but not playing.
	StatePaused
	// StatePlaying means a track is loaded and playing.
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// Direction selects where Advance moves within the queue.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

const (
	// Simulated progress: +0.2% per 500ms tick, mirroring the client timer.
	tickInterval = 500 * time.Millisecond
	tickStep     = 0.2

	// Assumed duration for previews that don't report one.
	defaultPreviewDuration = 30.0
)

// Status is a snapshot of the controller, shaped for the API.
type Status struct {
	State    string       `json:"state"`
	Track    *model.Track `json:"track,omitempty"`
	Progress float64      `json:"progress"` // percent, 0-100
}

// Controller owns the current track, the play/pause flag and the progress
// signal. Tracks without a preview URL get synthetic progress from a fixed
// interval ticker; tracks with real audio get progress via ReportPosition.
// Both paths auto-advance to the next queue entry on completion.
type Controller struct {
	mu       sync.Mutex
	state    State
	current  model.Track
	queue    []model.Track
	progress float64

	stopOnce sync.Once
	stop     chan struct{}
}

// NewController creates an idle controller with an empty queue.
func NewController() *Controller {
	return &Controller{stop: make(chan struct{})}
}

// Start begins the synthetic progress ticker. Tests drive Tick directly and
// never call Start.
func (c *Controller) Start() {
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Tick()
			case <-c.stop:
				return
			}
		}
	}()
}

// Close stops the progress ticker.
func (c *Controller) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// SetQueue replaces the track set Advance navigates. Called with the latest
// listing so wraparound follows what the user currently sees.
func (c *Controller) SetQueue(tracks []model.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = make([]model.Track, len(tracks))
	copy(c.queue, tracks)
}

// SelectTrack loads a track and starts playing it. Selecting always implies
// immediate playback intent; progress resets to zero.
func (c *Controller) SelectTrack(track model.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectLocked(track)
}

func (c *Controller) selectLocked(track model.Track) {
	c.current = track
	c.progress = 0
	c.state = StatePlaying

	logger.Debug("Player track selected",
		logger.String("id", track.ID),
		logger.String("title", track.Title),
		logger.Bool("simulated", track.PreviewURL == ""))
}

// TogglePlayPause flips between playing and paused. No-op while idle.
func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePlaying:
		c.state = StatePaused
	case StatePaused:
		c.state = StatePlaying
	}
}

// Advance moves one position forward or backward in the queue, wrapping at
// both ends, and selects the result. No-op when the queue is empty or no
// track is loaded.
func (c *Controller) Advance(dir Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked(dir)
}

func (c *Controller) advanceLocked(dir Direction) {
	if c.state == StateIdle || len(c.queue) == 0 {
		return
	}

	idx := -1
	for i, t := range c.queue {
		if t.ID == c.current.ID {
			idx = i
			break
		}
	}

	n := len(c.queue)
	var next int
	if dir == Prev {
		next = ((idx-1)%n + n) % n
	} else {
		next = ((idx+1)%n + n) % n
	}
	c.selectLocked(c.queue[next])
}

// Tick advances synthetic progress for tracks without real audio. Reaching
// 100% advances to the next track instead of wrapping, so simulated playback
// terminates the same way real playback does.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying || c.current.PreviewURL != "" {
		return
	}

	c.progress += tickStep
	if c.progress >= 100 {
		c.advanceLocked(Next)
	}
}

// ReportPosition feeds the real playback position for tracks with audio.
// duration <= 0 falls back to the assumed preview duration. Reaching the end
// auto-advances to the next track.
func (c *Controller) ReportPosition(position, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle {
		return
	}
	if duration <= 0 {
		duration = defaultPreviewDuration
	}

	c.progress = position / duration * 100
	if c.progress > 100 {
		c.progress = 100
	}

	if position >= duration {
		c.advanceLocked(Next)
	}
}

// Status returns a snapshot of the current playback state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{
		State:    c.state.String(),
		Progress: c.progress,
	}
	if c.state != StateIdle {
		track := c.current
		status.Track = &track
	}
	return status
}
