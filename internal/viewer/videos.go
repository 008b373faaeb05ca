package viewer

import (
	"context"
	"errors"
	"time"

	"github.com/interpretive-systems/studybuddy/internal/api"
)

// SkipStep is how far the skip controls move playback.
const SkipStep = 10 * time.Second

var (
	// ErrNoVideos is returned when the catalogue is empty.
	ErrNoVideos = errors.New("no lecture recordings")
	// ErrInvalidVideo is returned when the first entry carries no id.
	ErrInvalidVideo = errors.New("invalid video data received from server")
)

// VideoSource lists and deletes lecture recordings.
type VideoSource interface {
	ListVideos(ctx context.Context) ([]api.VideoRef, error)
	DeleteVideo(ctx context.Context, id string) error
	VideoFileURL(id string) string
}

// Clip is a playable recording.
type Clip struct {
	ID    string
	Title string
	URL   string
}

// ResolveFirst returns the first recording of the catalogue with its playback
// URL.
func ResolveFirst(ctx context.Context, src VideoSource) (Clip, error) {
	vids, err := src.ListVideos(ctx)
	if err != nil {
		return Clip{}, err
	}
	if len(vids) == 0 {
		return Clip{}, ErrNoVideos
	}
	first := vids[0]
	if first.ID == "" {
		return Clip{}, ErrInvalidVideo
	}
	return Clip{ID: first.ID, Title: first.Title, URL: src.VideoFileURL(first.ID)}, nil
}

// Player is the local playback state of the clip panel. A terminal cannot
// render video, so position is tracked here and the URL can be copied into
// an external player.
type Player struct {
	clip     *Clip
	playing  bool
	position time.Duration
	err      error
	loading  bool
}

func (p *Player) Clip() (Clip, bool) {
	if p.clip == nil {
		return Clip{}, false
	}
	return *p.clip, true
}

func (p *Player) Playing() bool           { return p.playing }
func (p *Player) Position() time.Duration { return p.position }
func (p *Player) Err() error              { return p.err }
func (p *Player) Loading() bool           { return p.loading }

// NeedsLoad reports whether the panel should fetch a clip now.
func (p *Player) NeedsLoad() bool {
	return p.clip == nil && !p.loading && p.err == nil
}

// StartLoad marks a fetch in flight.
func (p *Player) StartLoad() {
	p.loading = true
	p.err = nil
}

// Loaded applies the result of ResolveFirst.
func (p *Player) Loaded(c Clip, err error) {
	p.loading = false
	if err != nil {
		p.err = err
		p.clip = nil
		return
	}
	p.Load(c, 0)
}

// Load replaces the clip and seeks to offset.
func (p *Player) Load(c Clip, offset time.Duration) {
	p.clip = &c
	p.err = nil
	p.playing = false
	p.position = max(offset, 0)
}

// Reset forgets the clip so the next NeedsLoad fetches again.
func (p *Player) Reset() {
	*p = Player{}
}

// TogglePlay flips between playing and paused. It does nothing without a
// clip.
func (p *Player) TogglePlay() {
	if p.clip == nil {
		return
	}
	p.playing = !p.playing
}

// Skip moves the position by d, never before the start.
func (p *Player) Skip(d time.Duration) {
	if p.clip == nil {
		return
	}
	p.position = max(p.position+d, 0)
}

// Advance moves the position forward by elapsed while playing.
func (p *Player) Advance(elapsed time.Duration) {
	if p.playing {
		p.position += elapsed
	}
}
