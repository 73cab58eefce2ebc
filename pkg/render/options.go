package render

// Default frame settings, in points.
const (
	DefaultWidth      = 400.0
	DefaultHeight     = 300.0
	DefaultLineHeight = 14.4
)

// Option configures resolution and rendering.
type Option func(*options)

type options struct {
	width, height float64
	lineHeight    float64
	background    string
	guides        bool
}

func newOptions(opts []Option) options {
	o := options{width: DefaultWidth, height: DefaultHeight, lineHeight: DefaultLineHeight}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSize sets the size of the outermost viewport in points. Non-positive
// values keep the defaults.
func WithSize(w, h float64) Option {
	return func(o *options) {
		if w > 0 {
			o.width = w
		}
		if h > 0 {
			o.height = h
		}
	}
}

// WithLineHeight sets the size of one "lines" unit in points.
func WithLineHeight(pt float64) Option {
	return func(o *options) {
		if pt > 0 {
			o.lineHeight = pt
		}
	}
}

// WithBackground fills the SVG canvas with color.
func WithBackground(color string) Option { return func(o *options) { o.background = color } }

// WithGuides draws dashed row and column boundaries in SVG output.
func WithGuides() Option { return func(o *options) { o.guides = true } }
