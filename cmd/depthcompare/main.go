package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/kovidgoyal/depthrgb"
	"github.com/kovidgoyal/depthrgb/bench"
	"github.com/kovidgoyal/depthrgb/codec"
)

var _ = fmt.Print

func write_flipbook(output_file string, p bench.Pair, delay time.Duration, false_color bool) (err error) {
	cmp, err := depthrgb.NewComparison(p.Original, p.Decoded, depthrgb.FrameDelay(delay), depthrgb.FalseColor(false_color))
	if err != nil {
		return err
	}
	out, err := os.OpenFile(output_file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return cmp.EncodeAsPNG(out)
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	transcoders := depthrgb.DefaultRegistry()
	codecs := codec.Default()
	assets := flag.String("assets", "assets", "directory of 16-bit depth images")
	names := flag.String("transcoders", strings.Join(transcoders.Names(), ","), "comma separated transcoders to compare")
	codec_name := flag.String("codec", "jpeg", "codec the RGB images go through, one of: "+strings.Join(codecs.Names(), ", "))
	quality := flag.Int("quality", 50, "codec quality")
	output_dir := flag.String("out", "comparisons", "directory the flipbooks are written to")
	delay := flag.Duration("delay", time.Second, "how long each frame is shown")
	gray := flag.Bool("gray", false, "render depth as grayscale instead of false color")
	save_decoded := flag.Bool("decoded", false, "also save each decoded depth map as a 16-bit PNG")
	flag.Parse()

	logger := golog.NewDevelopmentLogger("depthcompare")
	images, err := depthrgb.LoadDir(*assets)
	if err != nil {
		return
	}
	c, err := codecs.Get(*codec_name)
	if err != nil {
		return
	}
	if err = os.MkdirAll(*output_dir, 0o755); err != nil {
		return
	}
	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		t, terr := transcoders.New(name)
		if err = terr; err != nil {
			return
		}
		logger.Infof("Comparing %s at quality %d...", name, *quality)
		pairs, cerr := bench.Compare(t, images, *quality, bench.WithCodec(c), bench.WithLogger(logger))
		if err = cerr; err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return
		}
		for _, img := range images {
			base := strings.TrimSuffix(img.Name, filepath.Ext(img.Name))
			output_file := filepath.Join(*output_dir, fmt.Sprintf("%s-%s-q%d.apng", base, name, *quality))
			if err = write_flipbook(output_file, pairs[img.Name], *delay, !*gray); err != nil {
				return
			}
			logger.Infof("Flipbook saved to: %s", output_file)
			if *save_decoded {
				output_file = filepath.Join(*output_dir, fmt.Sprintf("%s-%s-q%d-decoded.png", base, name, *quality))
				if err = depthrgb.Save(pairs[img.Name].Decoded, output_file, depthrgb.PNGCompressionLevel(png.BestCompression)); err != nil {
					return
				}
				logger.Infof("Decoded depth saved to: %s", output_file)
			}
		}
	}
}
