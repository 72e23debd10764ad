package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AghoghoOgbotor18/AIPPT/internal/models"
	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

type imageSet map[string]bool

func (s imageSet) Has(url string) bool { return s[url] }

func twoPoints() []models.Point {
	return []models.Point{
		{Text: "Speed", Explanation: "Fast builds"},
		{Text: "Safety", Explanation: "Static types"},
	}
}

func kinds(s Slide) []Kind {
	out := make([]Kind, len(s.Elements))
	for i, e := range s.Elements {
		out[i] = e.Kind()
	}
	return out
}

func headerBars(s Slide) int {
	n := 0
	for _, e := range s.Elements {
		if e.Rect != nil && e.Rect.Box == (Box{0, 0, SlideWidth, headerBarHeight}) {
			n++
		}
	}
	return n
}

func images(s Slide) []*Image {
	var out []*Image
	for _, e := range s.Elements {
		if e.Image != nil {
			out = append(out, e.Image)
		}
	}
	return out
}

func TestLayoutDeck_MinimalistWhite(t *testing.T) {
	deck := &models.Deck{
		Meta: models.Meta{Theme: "white", SlideStyle: style.Minimalist},
		Slides: []models.Slide{
			{Type: models.SlideTitle, Title: "Go"},
			{Type: models.SlideIntro, Title: "Intro", Text: "Hello"},
			{Type: models.SlideContent, Title: "Why", Points: twoPoints()},
			{Type: models.SlideConclusion, Text: "Bye"},
			{Type: models.SlideThankYou},
		},
	}

	out := LayoutDeck(deck, imageSet{})
	require.Len(t, out.Slides, 5)

	assert.Equal(t, "FFFFFF", out.Theme.Background)
	assert.Equal(t, "000000", out.Theme.TextColor)

	for i, s := range out.Slides {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, "FFFFFF", s.Background)
		assert.Zero(t, headerBars(s), "slide %d", i)
		assert.Empty(t, images(s), "slide %d", i)
	}

	content := out.Slides[2]
	require.Equal(t, []Kind{KindText, KindText}, kinds(content))
	list := content.Elements[1].Text
	require.Len(t, list.Paragraphs, 2)
	assert.Equal(t, "Speed: Fast builds", list.Paragraphs[0].Text)
	assert.Equal(t, MarkerNumber, list.Paragraphs[0].Marker)
	assert.Equal(t, 9.0, list.W)
	assert.Equal(t, "000000", list.Color)

	assert.Equal(t, "Conclusion", out.Slides[3].Elements[0].Text.Paragraphs[0].Text)
	assert.Equal(t, "Thank You", out.Slides[4].Elements[0].Text.Paragraphs[0].Text)
	assert.Equal(t, "34495E", out.Slides[4].Elements[0].Text.Color)
}

func TestLayoutDeck_BlackBackground(t *testing.T) {
	out := LayoutDeck(&models.Deck{Meta: models.Meta{Theme: "rgb(0,0,0)"}}, nil)
	assert.Equal(t, "000000", out.Theme.Background)
	assert.Equal(t, "FFFFFF", out.Theme.TextColor)
}

func TestLayoutDeck_UnknownTypeKeepsBlankSlide(t *testing.T) {
	deck := &models.Deck{Slides: []models.Slide{
		{Type: models.SlideTitle, Title: "A"},
		{Type: "summary", Title: "Ignored", Text: "Ignored", Points: twoPoints()},
		{Type: models.SlideThankYou},
	}}

	out := LayoutDeck(deck, nil)
	require.Len(t, out.Slides, 3)
	assert.Equal(t, "summary", out.Slides[1].Type)
	assert.NotNil(t, out.Slides[1].Elements)
	assert.Empty(t, out.Slides[1].Elements)
	assert.Equal(t, "FFFFFF", out.Slides[1].Background)
}

func TestLayoutDeck_CreativeAlternation(t *testing.T) {
	set := imageSet{"a.jpg": true, "b.jpg": true, "c.jpg": true}
	deck := &models.Deck{
		Meta: models.Meta{SlideStyle: style.Creative},
		Slides: []models.Slide{
			{Type: models.SlideContent, Title: "1", Points: twoPoints(), ImageURL: "a.jpg"},
			{Type: models.SlideContent, Title: "no image", Points: twoPoints()},
			{Type: models.SlideIntro, Title: "between"},
			{Type: models.SlideContent, Title: "missing", ImageURL: "gone.jpg"},
			{Type: models.SlideContent, Title: "2", Points: twoPoints(), ImageURL: "b.jpg"},
			{Type: models.SlideContent, Title: "3", Points: twoPoints(), ImageURL: "c.jpg"},
		},
	}

	out := LayoutDeck(deck, set)

	var xs []float64
	for _, s := range out.Slides {
		for _, img := range images(s) {
			xs = append(xs, img.X)
			assert.Equal(t, FitCover, img.Fit)
			assert.Equal(t, Box{img.X, headerBarHeight, 3.5, 5.3}, img.Box)
		}
	}
	assert.Equal(t, []float64{6.5, 0, 6.5}, xs)

	// text panel sits opposite the image
	left := out.Slides[4]
	assert.Equal(t, 3.5, left.Elements[1].Rect.X)
	assert.Equal(t, 4.0, left.Elements[3].Text.X)
}

func TestLayoutSlide_CreativeSingleHeaderBar(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Creative})
	s := models.Slide{Type: models.SlideContent, Title: "T", Points: twoPoints(), ImageURL: "a.jpg"}

	out, next := LayoutSlide(s, th, imageSet{"a.jpg": true}, Alternation{})
	assert.Equal(t, 1, headerBars(out))
	assert.Equal(t, []Kind{KindRect, KindRect, KindText, KindText, KindImage}, kinds(out))
	assert.False(t, next.ImageOnRight())

	for _, p := range out.Elements[3].Text.Paragraphs {
		assert.Equal(t, MarkerBullet, p.Marker)
	}
	assert.Equal(t, "FFFFFF", out.Elements[2].Text.Color)
	assert.Equal(t, th.TitleSize-12, out.Elements[2].Text.FontSize)
}

func TestLayoutSlide_CreativeWithoutImageDoesNotAdvance(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Creative})
	s := models.Slide{Type: models.SlideContent, Title: "T", Points: twoPoints()}

	_, next := LayoutSlide(s, th, imageSet{}, Alternation{})
	assert.Equal(t, Alternation{}, next)
}

func TestLayoutSlide_Pure(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Corporate, Theme: "navy"})
	s := models.Slide{Type: models.SlideContent, Title: "T", Points: twoPoints(), ImageURL: "a.jpg"}
	set := imageSet{"a.jpg": true}
	alt := Alternation{creative: 3}

	a, altA := LayoutSlide(s, th, set, alt)
	b, altB := LayoutSlide(s, th, set, alt)
	assert.Equal(t, a, b)
	assert.Equal(t, altA, altB)
	assert.Equal(t, "a.jpg", s.ImageURL)
	assert.Len(t, s.Points, 2)
}

func TestLayoutSlide_NeedsImageWithoutURL(t *testing.T) {
	for _, name := range style.Names() {
		th := NewTheme(models.Meta{SlideStyle: name})
		base := models.Slide{Type: models.SlideContent, Title: "T", Points: twoPoints()}
		hinted := base
		hinted.NeedsImage = true
		hinted.ImageQuery = "cats"

		a, _ := LayoutSlide(base, th, imageSet{}, Alternation{})
		b, _ := LayoutSlide(hinted, th, imageSet{}, Alternation{})
		assert.Equal(t, a, b, name)
	}
}

func TestLayoutSlide_ImageRight(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Professional})
	s := models.Slide{Type: models.SlideContent, Title: "T", Points: twoPoints(), ImageURL: "a.jpg"}

	out, _ := LayoutSlide(s, th, imageSet{"a.jpg": true}, Alternation{})
	require.Equal(t, []Kind{KindText, KindText, KindImage}, kinds(out))

	title := out.Elements[0].Text
	assert.Equal(t, style.AlignCenter, title.Align)
	assert.Equal(t, 0.4, title.Y)
	assert.Equal(t, "2C3E50", title.Color)

	list := out.Elements[1].Text
	assert.Equal(t, Box{0.5, 1.2, 5.5, 4.3}, list.Box)
	assert.Equal(t, MarkerBullet, list.Paragraphs[0].Marker)
	assert.Equal(t, 0.3, list.Margin)

	img := out.Elements[2].Image
	assert.Equal(t, Box{6.5, 1.1, 3, 3.5}, img.Box)
	assert.Equal(t, FitContain, img.Fit)
}

func TestLayoutSlide_ImageRightWithHeaderBar(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Corporate})
	s := models.Slide{Type: models.SlideContent, Title: "T", Points: twoPoints(), ImageURL: "a.jpg"}

	out, next := LayoutSlide(s, th, imageSet{"a.jpg": true}, Alternation{})
	require.Equal(t, []Kind{KindRect, KindText, KindText, KindImage}, kinds(out))
	assert.Equal(t, "003366", out.Elements[0].Rect.Fill)
	assert.Equal(t, 0.12, out.Elements[1].Text.Y)
	assert.Equal(t, "FFFFFF", out.Elements[1].Text.Color)
	assert.Equal(t, 1.3, out.Elements[2].Text.Y)
	assert.Equal(t, Alternation{}, next)
}

func TestLayoutSlide_MinimalistIgnoresImage(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Minimalist})
	s := models.Slide{Type: models.SlideContent, Points: twoPoints(), ImageURL: "a.jpg"}

	out, _ := LayoutSlide(s, th, imageSet{"a.jpg": true}, Alternation{})
	assert.Empty(t, images(out))
	assert.Equal(t, 9.0, out.Elements[1].Text.W)
}

func TestLayoutSlide_ContentWithoutPoints(t *testing.T) {
	th := NewTheme(models.Meta{})
	out, _ := LayoutSlide(models.Slide{Type: models.SlideContent}, th, nil, Alternation{})
	require.Equal(t, []Kind{KindText}, kinds(out))
	assert.Equal(t, "", out.Elements[0].Text.Paragraphs[0].Text)
}

func TestLayoutSlide_TitleWithImage(t *testing.T) {
	th := NewTheme(models.Meta{TitleFontSize: 40, TextFontSize: 20})
	s := models.Slide{Type: models.SlideTitle, Title: "Deck", PresenterName: "Sam", ImageURL: "bg.jpg"}

	out, _ := LayoutSlide(s, th, imageSet{"bg.jpg": true}, Alternation{})
	require.Equal(t, []Kind{KindImage, KindRect, KindText, KindText}, kinds(out))

	full := Box{0, 0, SlideWidth, SlideHeight}
	assert.Equal(t, full, out.Elements[0].Image.Box)
	assert.Equal(t, FitCover, out.Elements[0].Image.Fit)
	assert.Equal(t, full, out.Elements[1].Rect.Box)
	assert.Equal(t, 60, out.Elements[1].Rect.Transparency)
	assert.Equal(t, "000000", out.Elements[1].Rect.Fill)

	title := out.Elements[2].Text
	assert.Equal(t, 52.0, title.FontSize)
	assert.True(t, title.Bold)
	assert.Equal(t, "FFFFFF", title.Color)

	presenter := out.Elements[3].Text
	assert.Equal(t, "Presenter: Sam", presenter.Paragraphs[0].Text)
	assert.Equal(t, 30.0, presenter.FontSize)
	assert.Equal(t, Box{0.5, 3.3, 9, 0.7}, presenter.Box)
}

func TestLayoutSlide_TitleWithoutImage(t *testing.T) {
	th := NewTheme(models.Meta{})
	s := models.Slide{Type: models.SlideTitle, Title: "Deck", ImageURL: "bg.jpg"}

	out, _ := LayoutSlide(s, th, imageSet{}, Alternation{})
	assert.Equal(t, []Kind{KindText}, kinds(out))
	assert.Equal(t, 60.0, out.Elements[0].Text.FontSize)
}

func TestLayoutSlide_IntroHeaderBar(t *testing.T) {
	th := NewTheme(models.Meta{SlideStyle: style.Corporate, TitleFontSize: 48, TextFontSize: 18})
	out, _ := LayoutSlide(models.Slide{Type: models.SlideIntro, Title: "I", Text: "body"}, th, nil, Alternation{})

	require.Equal(t, []Kind{KindRect, KindText, KindText}, kinds(out))
	title := out.Elements[1].Text
	assert.Equal(t, 0.15, title.Y)
	assert.Equal(t, 38.0, title.FontSize)
	assert.Equal(t, "FFFFFF", title.Color)

	body := out.Elements[2].Text
	assert.Equal(t, Box{0.5, 1.2, 9, 3.8}, body.Box)
	assert.Equal(t, VAlignTop, body.VAlign)
	assert.Equal(t, 20.0, body.LineSpacing)
	assert.Equal(t, 18.0, body.FontSize)
}

func TestLayoutSlide_IntroWithoutText(t *testing.T) {
	th := NewTheme(models.Meta{})
	out, _ := LayoutSlide(models.Slide{Type: models.SlideIntro}, th, nil, Alternation{})
	require.Equal(t, []Kind{KindText}, kinds(out))
	assert.Equal(t, 0.5, out.Elements[0].Text.Y)
	assert.Equal(t, "2C3E50", out.Elements[0].Text.Color)
}

func TestDeckImages(t *testing.T) {
	deck := &models.Deck{
		Meta: models.Meta{SlideStyle: style.Professional},
		Slides: []models.Slide{
			{Type: models.SlideTitle, ImageURL: "a.jpg"},
			{Type: models.SlideContent, ImageURL: "a.jpg"},
			{Type: models.SlideContent, ImageURL: "b.jpg"},
			{Type: models.SlideContent, ImageURL: "c.jpg"},
		},
	}
	out := LayoutDeck(deck, imageSet{"a.jpg": true, "b.jpg": true})
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, out.Images())
}

func TestNewTheme_Defaults(t *testing.T) {
	th := NewTheme(models.Meta{})
	assert.Equal(t, "professional", th.StyleName)
	assert.Equal(t, "Arial", th.FontFace)
	assert.Equal(t, 48.0, th.TitleSize)
	assert.Equal(t, 18.0, th.TextSize)
	assert.Equal(t, "Presentation", th.Title)
	assert.Equal(t, "AI PPT Generator", th.Author)
}

func TestContain(t *testing.T) {
	box := Box{6.5, 1.1, 3, 3.5}

	wide := Contain(200, 100, box)
	assert.InDelta(t, 3.0, wide.W, 1e-9)
	assert.InDelta(t, 1.5, wide.H, 1e-9)
	assert.InDelta(t, 1.1+1.0, wide.Y, 1e-9)

	tall := Contain(100, 350, box)
	assert.InDelta(t, 1.0, tall.W, 1e-9)
	assert.InDelta(t, 3.5, tall.H, 1e-9)
	assert.InDelta(t, 6.5+1.0, tall.X, 1e-9)

	assert.Equal(t, box, Contain(0, 0, box))
}

func TestCover(t *testing.T) {
	full := Box{0, 0, SlideWidth, SlideHeight}

	c := Cover(1600, 900, full)
	assert.InDelta(t, 0, c.Left+c.Right+c.Top+c.Bottom, 1e-9)

	c = Cover(2000, 900, full)
	assert.Greater(t, c.Left, 0.0)
	assert.Equal(t, c.Left, c.Right)
	assert.Zero(t, c.Top)

	c = Cover(1000, 1000, Box{0, 0, 3.5, 5.3})
	assert.Greater(t, c.Left, 0.0)
	c = Cover(1000, 1000, Box{0, 0, 9, 1})
	assert.Greater(t, c.Top, 0.0)
	assert.Zero(t, c.Left)
}
