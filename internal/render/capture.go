package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/icza/mjpeg"

	"firespread/internal/fire"
)

// CaptureOptions configure a Capture.
type CaptureOptions struct {
	Dir string
	// Prefix names the output files: <prefix>_0000.png and <prefix>.avi.
	Prefix string
	// Every writes a PNG every N iterations. Zero disables PNG output.
	Every int
	// Video appends every observed frame to an MJPEG AVI.
	Video bool
	FPS   int
	Scale int
	// Logger receives one line per written file. Nil discards.
	Logger *log.Logger
}

// Capture writes simulation frames to disk. Its Observe method has the
// signature of fire.Observer. The first failure stops further output and is
// returned by Close.
type Capture struct {
	opts   CaptureOptions
	logger *log.Logger
	video  mjpeg.AviWriter
	buf    bytes.Buffer
	pngs   int
	frames int
	err    error
}

// NewCapture prepares the output directory.
func NewCapture(opts CaptureOptions) (*Capture, error) {
	if opts.Every < 0 {
		return nil, fmt.Errorf("%w: capture interval %d", fire.ErrInvalidParameter, opts.Every)
	}
	if opts.Video && opts.FPS < 1 {
		return nil, fmt.Errorf("%w: video fps %d", fire.ErrInvalidParameter, opts.FPS)
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Prefix == "" {
		opts.Prefix = "frame"
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating capture directory: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Capture{opts: opts, logger: logger}, nil
}

// Observe renders g when this iteration is due for output.
func (c *Capture) Observe(iteration int, g *fire.Grid) {
	if c.err != nil {
		return
	}
	wantPNG := c.opts.Every > 0 && iteration%c.opts.Every == 0
	if !wantPNG && !c.opts.Video {
		return
	}
	img := Frame(g, c.opts.Scale, IterationLabel(iteration))

	if wantPNG {
		path := filepath.Join(c.opts.Dir, fmt.Sprintf("%s_%04d.png", c.opts.Prefix, iteration))
		if err := writePNG(path, img); err != nil {
			c.err = err
			return
		}
		c.pngs++
		c.logger.Debug("frame written", "path", path)
	}

	if c.opts.Video {
		if c.video == nil {
			w, h := img.Bounds().Dx(), img.Bounds().Dy()
			path := c.VideoPath()
			aw, err := mjpeg.New(path, int32(w), int32(h), int32(c.opts.FPS))
			if err != nil {
				c.err = fmt.Errorf("creating video writer: %w", err)
				return
			}
			c.video = aw
		}
		c.buf.Reset()
		if err := jpeg.Encode(&c.buf, img, &jpeg.Options{Quality: 90}); err != nil {
			c.err = fmt.Errorf("encoding frame %d: %w", iteration, err)
			return
		}
		if err := c.video.AddFrame(c.buf.Bytes()); err != nil {
			c.err = fmt.Errorf("adding frame %d: %w", iteration, err)
			return
		}
		c.frames++
	}
}

// VideoPath is where the AVI is written when video output is enabled.
func (c *Capture) VideoPath() string {
	return filepath.Join(c.opts.Dir, c.opts.Prefix+".avi")
}

// Written reports how many PNG files and video frames were produced.
func (c *Capture) Written() (pngs, frames int) { return c.pngs, c.frames }

// Err returns the first output failure, if any.
func (c *Capture) Err() error { return c.err }

// Close finalises the video and returns the first error encountered.
func (c *Capture) Close() error {
	var closeErr error
	if c.video != nil {
		closeErr = c.video.Close()
		if closeErr == nil {
			c.logger.Info("video written", "path", c.VideoPath(), "frames", c.frames)
		}
		c.video = nil
	}
	return errors.Join(c.err, closeErr)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
