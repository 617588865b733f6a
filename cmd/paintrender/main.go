// Command paintrender renders a saved stroke log to a JPEG or PDF file
// without opening a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"LocalPaint/internal/config"
	"LocalPaint/internal/export"
	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
	"LocalPaint/internal/storage"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// pipeName selects stdin or stdout instead of a file.
const pipeName = "-"

var errEmptyLog = errors.New("stroke log is empty, pass -width and -height")

type options struct {
	in         string
	out        string
	format     string
	width      int
	height     int
	background string
	quality    int
	clipboard  bool
	verbose    bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("paintrender", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.in, "in", pipeName, "Stroke log JSON")
	fs.StringVar(&opts.out, "out", "", "Destination")
	fs.StringVar(&opts.format, "format", "", "Output format: jpeg or pdf (default from -out extension)")
	fs.IntVar(&opts.width, "width", 0, "Output width, fitted to the drawing when zero")
	fs.IntVar(&opts.height, "height", 0, "Output height, fitted to the drawing when zero")
	fs.StringVar(&opts.background, "bg", state.DefaultBackgroundColor, "Background color")
	fs.IntVar(&opts.quality, "quality", export.DefaultQuality, "JPEG quality")
	fs.BoolVar(&opts.clipboard, "clipboard", false, "Copy the JPEG data URI to the clipboard")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.out == "" && !opts.clipboard {
		return nil, errors.New("-out or -clipboard is required")
	}
	if (opts.width == 0) != (opts.height == 0) {
		return nil, errors.New("-width and -height must be given together")
	}
	if opts.width < 0 || opts.height < 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}
	if opts.format == "" {
		opts.format = formatFromName(opts.out)
	}
	opts.format = strings.ToLower(opts.format)
	if opts.format != "jpeg" && opts.format != "pdf" {
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.clipboard && opts.format != "jpeg" {
		return nil, errors.New("-clipboard needs jpeg output")
	}
	bg, err := state.NormalizeColor(opts.background)
	if err != nil {
		return nil, err
	}
	opts.background = bg
	return opts, nil
}

func formatFromName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return "pdf"
	}
	return "jpeg"
}

// fit moves the drawing to the origin and returns the page size that holds it.
func fit(points []state.StrokePoint) ([]state.StrokePoint, int, int, error) {
	box := state.Bounds(points)
	if box.Empty() {
		return nil, 0, 0, errEmptyLog
	}
	width := int(math.Ceil(box.Width))
	height := int(math.Ceil(box.Height))
	return state.Translate(points, -box.X, -box.Y), width, height, nil
}

func readLog(name string, stdin io.Reader) ([]state.StrokePoint, error) {
	var (
		data []byte
		err  error
	)
	if name == pipeName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read stroke log: %w", err)
	}
	return storage.Decode(data)
}

func openOutput(name string, stdout io.Writer) (io.Writer, func() error, error) {
	if name == pipeName {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func run(opts *options, stdin io.Reader, stdout io.Writer) error {
	points, err := readLog(opts.in, stdin)
	if err != nil {
		return err
	}

	width, height := opts.width, opts.height
	if width == 0 {
		if points, width, height, err = fit(points); err != nil {
			return err
		}
	}
	log := logrus.WithFields(logrus.Fields{
		"points": len(points),
		"width":  width,
		"height": height,
		"format": opts.format,
	})

	if opts.format == "pdf" {
		w, closeFn, err := openOutput(opts.out, stdout)
		if err != nil {
			return err
		}
		if err := export.WritePDF(w, points, opts.background, width, height, "LocalPaint"); err != nil {
			closeFn()
			return err
		}
		log.Info("pdf written")
		return closeFn()
	}

	raster := render.NewRaster(width, height)
	if err := render.NewRenderer(raster).Replay(points, opts.background); err != nil {
		return err
	}

	if opts.out != "" {
		w, closeFn, err := openOutput(opts.out, stdout)
		if err != nil {
			return err
		}
		if err := export.WriteJPEG(w, raster.Image(), opts.quality); err != nil {
			closeFn()
			return err
		}
		if err := closeFn(); err != nil {
			return err
		}
		log.Info("jpeg written")
	}

	if opts.clipboard {
		uri, err := export.DataURI(raster.Image(), opts.quality)
		if err != nil {
			return err
		}
		if err := copyToClipboard(uri); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		log.WithField("bytes", len(uri)).Info("data uri copied to clipboard")
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("paintrender: invalid configuration")
	}
	cfg.SetupLogging()
	logrus.SetOutput(os.Stderr)

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.WithError(err).Fatal("paintrender: bad arguments")
	}
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("paintrender: render failed")
	}
}
