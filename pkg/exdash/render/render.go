// Package render draws chart descriptors as PNG or SVG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/engine"
	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrNoData indicates there is nothing to draw.
var ErrNoData = errors.New("no data to render")

// ErrYRequired indicates a chart family that cannot be drawn without a y column.
var ErrYRequired = errors.New("chart requires a y column")

// ErrUnsupportedFamily indicates a descriptor family the renderer cannot draw.
var ErrUnsupportedFamily = errors.New("unsupported chart family")

// renderable is satisfied by every go-chart chart type.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Renderer turns ChartDescriptors into images.
type Renderer struct {
	width  int
	height int
	format Format
	logger *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithFormat selects PNG or SVG output.
func WithFormat(f Format) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Renderer. Defaults: 1024x640 PNG.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:  1024,
		height: 640,
		format: FormatPNG,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws desc to w.
func (r *Renderer) Render(desc *models.ChartDescriptor, w io.Writer) error {
	if desc == nil {
		return ErrNoData
	}

	var (
		c   renderable
		err error
	)
	switch engine.Family(desc.Family) {
	case engine.FamilyPie:
		c, err = r.pie(desc)
	case engine.FamilyBar:
		c, err = r.bar(desc)
	case engine.FamilyHistogram:
		c, err = r.histogram(desc)
	case engine.FamilyLine:
		c, err = r.xy(desc, false)
	case engine.FamilyScatter:
		c, err = r.xy(desc, true)
	case engine.FamilyBox:
		c, err = r.box(desc)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFamily, desc.Family)
	}
	if err != nil {
		return err
	}

	provider, err := r.provider()
	if err != nil {
		return err
	}
	if err := c.Render(provider, w); err != nil {
		return fmt.Errorf("render %s: %w", desc.Family, err)
	}

	r.logger.Debug("chart rendered",
		zap.String("family", desc.Family),
		zap.String("format", string(r.format)),
		zap.Int("width", r.width),
		zap.Int("height", r.height))
	return nil
}

func (r *Renderer) provider() (chart.RendererProvider, error) {
	switch r.format {
	case FormatPNG, "":
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("unsupported image format %q", r.format)
}

// FormatFromPath picks the image format from a file extension, defaulting to fallback.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".png":
		return FormatPNG
	}
	return fallback
}
