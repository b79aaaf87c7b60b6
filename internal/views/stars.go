package views

import (
	"context"
	"io"

	"reaheats/internal/ratings"

	"github.com/a-h/templ"
)

type StarSize string

const (
	StarsSmall  StarSize = "small"
	StarsMedium StarSize = "medium"
	StarsLarge  StarSize = "large"
)

// StarRating is the five-position rating widget. Value is the committed rating;
// Hover is a transient preview that only affects what is displayed.
type StarRating struct {
	Value    int
	Hover    int
	ReadOnly bool
	Size     StarSize
	// Name is the form field interactive widgets submit under.
	Name string
}

func validPosition(pos int) bool {
	return pos >= 1 && pos <= ratings.MaxStars
}

// Enter previews pos.
func (s *StarRating) Enter(pos int) {
	if s.ReadOnly || !validPosition(pos) {
		return
	}
	s.Hover = pos
}

// Leave drops the preview, showing the committed value again.
func (s *StarRating) Leave() {
	if s.ReadOnly {
		return
	}
	s.Hover = 0
}

// Click commits pos and reports the new value. Read-only widgets and positions
// outside 1..5 commit nothing.
func (s *StarRating) Click(pos int) (int, bool) {
	if s.ReadOnly || !validPosition(pos) {
		return s.Value, false
	}
	s.Value = pos
	return pos, true
}

// Display is the fill level currently shown.
func (s StarRating) Display() int {
	if s.Hover > 0 {
		return s.Hover
	}
	return s.Value
}

func (s StarRating) Filled(pos int) bool {
	return pos <= s.Display()
}

func starLabel(pos int) string {
	if pos > 1 {
		return "stars"
	}
	return "star"
}

// Component renders read-only widgets as five spans and interactive ones as
// five radio inputs. Interactive stars are emitted highest first so the
// stylesheet can fill the checked or hovered star and every lower one; the
// browser applies Enter, Leave and Click through :hover and :checked, and
// app.js keeps the rating label in step.
func (s StarRating) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(ctx, w)
		size := s.Size
		if size == "" {
			size = StarsMedium
		}

		if s.ReadOnly {
			p.rawf(`<div class="star-rating star-rating-%s readonly" role="img" aria-label="%d out of 5 stars">`, attr(string(size)), s.Value)
			for pos := 1; pos <= ratings.MaxStars; pos++ {
				class := "star"
				if s.Filled(pos) {
					class += " filled"
				}
				p.rawf(`<span class="%s">&#9733;</span>`, class)
			}
			p.raw(`</div>`)
			return p.err
		}

		name := s.Name
		if name == "" {
			name = "rating"
		}
		p.rawf(`<div class="star-rating star-rating-%s interactive">`, attr(string(size)))
		for pos := ratings.MaxStars; pos >= 1; pos-- {
			checked := ""
			if pos == s.Value {
				checked = " checked"
			}
			p.rawf(`<input type="radio" id="%s-%d" name="%s" value="%d"%s>`, attr(name), pos, attr(name), pos, checked)
			p.rawf(`<label for="%s-%d" class="star" aria-label="%d %s">&#9733;</label>`, attr(name), pos, pos, starLabel(pos))
		}
		p.raw(`</div>`)
		return p.err
	})
}
