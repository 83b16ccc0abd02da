// Package main is a command that compresses an image into flat colored
// quadtree regions and writes a still image plus an animation of the
// reconstruction sharpening depth by depth.
package main

import (
	"context"
	"image"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/edaniels/golog"
	"github.com/fsnotify/fsnotify"
	"go.viam.com/utils"

	"github.com/quadlabs/quadimage/qimage"
	"github.com/quadlabs/quadimage/quadtree"
)

var logger = golog.NewDevelopmentLogger("quadimage")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ImageFile   string        `flag:"0,required,usage=image file to compress"`
	Depth       int           `flag:"depth,default=8,usage=maximum subdivision depth"`
	Threshold   thresholdFlag `flag:"threshold,default=,usage=detail score below which a region stays whole"`
	Lines       bool          `flag:"lines,usage=draw region boundary lines"`
	RenderDepth int           `flag:"render-depth,default=-1,usage=still image depth limit (-1 renders the full tree)"`
	OutDir      string        `flag:"out-dir,default=.,usage=directory for output files"`
	Still       string        `flag:"still,usage=still output path overriding out-dir (extension picks the format)"`
	Anim        string        `flag:"anim,usage=animation output path overriding out-dir (extension picks the format)"`
	Delay       int           `flag:"delay,default=1000,usage=animation frame delay in milliseconds"`
	Resize      int           `flag:"resize,default=0,usage=downscale so the longest side is at most this many pixels"`
	Compare     bool          `flag:"compare,usage=also write a side by side comparison image"`
	Watch       bool          `flag:"watch,usage=keep running and recompress whenever the input changes"`
}

// thresholdFlag validates a detail threshold. An empty value falls back
// to quadtree.DefaultThreshold.
type thresholdFlag string

func (tf *thresholdFlag) String() string {
	return string(*tf)
}

// Set attempts to set the value as a floating point threshold.
func (tf *thresholdFlag) Set(val string) error {
	if val == "" {
		val = strconv.FormatFloat(quadtree.DefaultThreshold, 'f', -1, 64)
	}
	if _, err := strconv.ParseFloat(val, 64); err != nil {
		return err
	}
	*tf = thresholdFlag(val)
	return nil
}

// Get returns the value as a float64.
func (tf *thresholdFlag) Get() interface{} {
	v, err := strconv.ParseFloat(string(*tf), 64)
	if err != nil {
		return float64(quadtree.DefaultThreshold)
	}
	return v
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	if err := compressOnce(ctx, argsParsed, logger); err != nil {
		return err
	}
	if !argsParsed.Watch {
		return nil
	}
	return watchAndRecompress(ctx, argsParsed, logger)
}

// compressOnce runs the whole pipeline: decode, build, render the still,
// render the animation frames, and write everything out.
func compressOnce(ctx context.Context, args Arguments, logger golog.Logger) error {
	start := time.Now()

	img, err := qimage.ReadImageFromFile(args.ImageFile)
	if err != nil {
		return err
	}
	if args.Resize > 0 {
		img = imaging.Fit(img, args.Resize, args.Resize, imaging.Lanczos)
	}
	buf := qimage.ConvertImage(img)

	tree, err := quadtree.Build(ctx, buf, quadtree.Options{
		MaxDepth:  args.Depth,
		Threshold: args.Threshold.Get().(float64),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	renderDepth := args.RenderDepth
	if renderDepth < 0 {
		renderDepth = tree.MaxDepth()
	}
	still, err := tree.Render(renderDepth, args.Lines)
	if err != nil {
		return err
	}
	stillPath := args.Still
	if stillPath == "" {
		stillPath = filepath.Join(args.OutDir, "compressed_"+baseName(args.ImageFile)+".jpg")
	}
	if err := qimage.WriteImageToFile(stillPath, still); err != nil {
		return err
	}

	frames, err := tree.Frames(ctx, args.Lines)
	if err != nil {
		return err
	}
	animFrames := make([]image.Image, len(frames))
	for i, frame := range frames {
		animFrames[i] = frame
	}
	animPath := args.Anim
	if animPath == "" {
		animPath = filepath.Join(args.OutDir, "compressed_"+baseName(args.ImageFile)+".gif")
	}
	if err := qimage.WriteAnimationToFile(animPath, animFrames, time.Duration(args.Delay)*time.Millisecond); err != nil {
		return err
	}

	if args.Compare {
		sheet := qimage.NewComparisonImage(buf, still, "original", "compressed")
		comparePath := filepath.Join(args.OutDir, "compare_"+baseName(args.ImageFile)+".png")
		if err := qimage.WriteImageToFile(comparePath, sheet); err != nil {
			return err
		}
	}

	fid, err := qimage.CompareImages(buf, still)
	if err != nil {
		return err
	}
	logger.Infow("compression complete",
		"input", args.ImageFile,
		"still", stillPath,
		"animation", animPath,
		"nodes", tree.Size(),
		"leaves", tree.LeafCount(),
		"depth", tree.MaxDepth(),
		"mse", fid.MSE,
		"psnr", fid.PSNR,
		"p95_error", fid.P95Error,
		"elapsed", time.Since(start),
	)
	return nil
}

// watchAndRecompress blocks, rerunning the pipeline every time the input
// file is written, until the context is done.
func watchAndRecompress(ctx context.Context, args Arguments, logger golog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		utils.UncheckedError(watcher.Close())
	}()
	if err := watcher.Add(args.ImageFile); err != nil {
		return err
	}

	logger.Infow("watching for changes", "file", args.ImageFile)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Infow("input changed", "event", event.Op.String())
			if err := compressOnce(ctx, args, logger); err != nil {
				logger.Errorw("recompression failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watch error", "error", err)
		}
	}
}

// baseName is the file name without its directory or extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
