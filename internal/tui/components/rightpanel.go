package components

import (
	"errors"
	"fmt"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/viewer"
)

// SlidesState describes the slide section.
type SlidesState struct {
	Collapsed bool
	// HasMaterials is true when there is a deck to show.
	HasMaterials bool
	Name         string
	Page         int
	Pages        int
	Text         string
	Loading      bool
	Err          string
}

// RenderRightPanel draws the slide and lecture clip sections.
func RenderRightPanel(slides SlidesState, videoCollapsed bool, player *viewer.Player, width, height int, th theme.Theme) []string {
	if height <= 0 {
		return nil
	}
	slidesH, videoH := 1, 1
	switch {
	case !slides.Collapsed && !videoCollapsed:
		slidesH = height * 55 / 100
		videoH = height - slidesH
	case !slides.Collapsed:
		slidesH = height - 1
	case !videoCollapsed:
		videoH = height - 1
	}
	lines := renderSlides(slides, width, slidesH, th)
	lines = append(lines, renderClip(videoCollapsed, player, width, videoH, th)...)
	return Clip(lines, height)
}

func sectionHeader(title string, collapsed bool, key string, width int, th theme.Theme) string {
	arrow := "▾"
	if collapsed {
		arrow = "▸"
	}
	return PadToWidth(th.Title(arrow+" "+title)+th.Muted("  ("+key+")"), width)
}

func renderSlides(s SlidesState, width, height int, th theme.Theme) []string {
	lines := []string{sectionHeader("Slides", s.Collapsed, "s", width, th)}
	if s.Collapsed {
		return lines
	}
	body := make([]string, 0, height)
	switch {
	case !s.HasMaterials:
		body = append(body, "",
			Center(th.Title("No Course Materials"), width),
			Center(th.Muted("Upload PDFs, slides, or course materials to get started"), width),
			"",
			Center(th.Button("a: Upload Materials"), width))
	case s.Loading:
		body = append(body, th.Muted(" Loading "+s.Name+"…"))
	default:
		pages := "?"
		if s.Pages > 0 {
			pages = fmt.Sprint(s.Pages)
		}
		body = append(body, th.AccentText(" "+s.Name), th.Muted(fmt.Sprintf(" Page %d of %s   [ ]: page", s.Page, pages)), "")
		if s.Err != "" {
			body = append(body, " "+th.ErrorText(s.Err))
			break
		}
		text := s.Text
		if text == "" {
			text = "(no text on this page)"
		}
		for _, l := range Wrap(text, max(width-2, 1)) {
			body = append(body, " "+th.Primary(l))
		}
	}
	return append(lines, Clip(body, height-1)...)
}

func renderClip(collapsed bool, p *viewer.Player, width, height int, th theme.Theme) []string {
	lines := []string{sectionHeader("Lecture Clip", collapsed, "v", width, th)}
	if collapsed {
		return lines
	}
	body := make([]string, 0, height)
	clip, ok := p.Clip()
	switch {
	case ok:
		state := "▶ Playing"
		if !p.Playing() {
			state = "❚❚ Paused"
		}
		title := clip.Title
		if title == "" {
			title = clip.ID
		}
		body = append(body,
			th.AccentText(" "+title),
			th.Muted(" "+clip.URL),
			"",
			Center(th.Primary(fmt.Sprintf("⏮  %s  ⏭", state)), width),
			Center(th.Muted(FormatClock(int(p.Position().Seconds()))), width),
			"",
			th.Muted(" space: play/pause  ,/.: skip 10s  Y: copy URL  V: delete"))
	default:
		heading := "No Lecture Recordings"
		if p.Loading() {
			heading = "Loading lecture clip..."
		}
		detail := "Use our browser extension to capture lecture recordings"
		switch err := p.Err(); {
		case err == nil, errors.Is(err, viewer.ErrNoVideos):
		case errors.Is(err, viewer.ErrInvalidVideo):
			detail = "Invalid video data received from server"
		default:
			detail = "Unable to load lecture clip."
		}
		body = append(body, "", Center(th.Title(heading), width), Center(th.Muted(detail), width))
	}
	return append(lines, Clip(body, height-1)...)
}
