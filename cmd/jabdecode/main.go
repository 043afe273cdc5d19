// Command jabdecode reads a JABCode symbol image and prints the message
// recovered from its payload.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/deepteams/webp"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/image/draw"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fournarakis/jabcode/config"
	"github.com/fournarakis/jabcode/matrix"
	"github.com/fournarakis/jabcode/symbol"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	inputPath := flag.String("input", "", "path to a symbol image (PNG or WebP)")
	watchDir := flag.String("watch", "", "watch a directory for new symbol images instead of decoding a single file")
	sideModules := flag.Int("side-modules", 0, "resample the image to this many modules per side before decoding (0 = use the image's own pixel dimensions)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jabdecode: loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jabdecode: setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *watchDir != "" {
		if err := runWatch(logger, *watchDir, cfg.Watch, *sideModules); err != nil {
			logger.Fatal("watch mode failed", zap.Error(err))
		}
		return
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "jabdecode: -input or -watch is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := decodeFile(logger, *inputPath, *sideModules); err != nil {
		logger.Error("decode failed", zap.String("path", *inputPath), zap.Error(err))
		os.Exit(1)
	}
}

// newLogger builds a zap logger writing structured logs to stderr and,
// when cfg.File is set, to a lumberjack-rotated file as well.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotated), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// decodeFile loads the image at path, converts it to a matrix, decodes the
// master symbol it contains, and prints the recovered message to stdout.
func decodeFile(logger *zap.Logger, path string, sideModules int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding image %s: %w", path, err)
	}
	logger.Debug("loaded image", zap.String("path", path), zap.String("format", format))

	if sideModules > 0 {
		img = resample(img, sideModules, sideModules)
		logger.Debug("resampled image", zap.Int("side_modules", sideModules))
	}

	m, err := imageToMatrix(img)
	if err != nil {
		return fmt.Errorf("converting %s to matrix: %w", path, err)
	}

	decoded, err := symbol.DecodeMaster(m)
	if err != nil {
		return err
	}

	fmt.Println(string(decoded.Message))
	return nil
}

// imageToMatrix copies one module per source pixel into a matrix.Matrix.
// Callers are expected to hand it an already-rectified module grid (one
// pixel per JABCode module), not an arbitrary photograph.
func imageToMatrix(img image.Image) (*matrix.Matrix, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	m, err := matrix.New(width, height, 24)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			m.Set(x, y, matrix.RGB{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8)})
		}
	}
	return m, nil
}

// resample scales img down to exactly width x height using nearest-neighbor
// interpolation, one sample per module: a rectified symbol image is usually
// a multiple of the module count wide, and averaging across a module's
// pixels would blur the sharp color boundaries the classifier depends on.
func resample(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// runWatch watches dir for newly created image files and decodes each one
// as it appears, until interrupted.
func runWatch(logger *zap.Logger, dir string, watch config.WatchConfig, sideModules int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching directory", zap.String("dir", dir), zap.Duration("poll_interval", watch.PollDuration()))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			ext := filepath.Ext(event.Name)
			if ext != ".png" && ext != ".webp" {
				continue
			}
			if err := decodeFile(logger, event.Name, sideModules); err != nil {
				logger.Error("decode failed", zap.String("path", event.Name), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}
