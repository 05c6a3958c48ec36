package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/kovidgoyal/depthrgb"
	"github.com/kovidgoyal/depthrgb/bench"
	"github.com/kovidgoyal/depthrgb/codec"
)

var _ = fmt.Print

func parse_qualities(val string) (ans []int, err error) {
	if val == "" {
		return bench.DefaultQualities, nil
	}
	for _, x := range strings.Split(val, ",") {
		q, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("invalid quality %#v: %w", x, err)
		}
		ans = append(ans, q)
	}
	return
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
	names := flag.String("transcoders", strings.Join(transcoders.Names(), ","), "comma separated transcoders to benchmark")
	codec_name := flag.String("codec", "jpeg", "codec the RGB images go through, one of: "+strings.Join(codecs.Names(), ", "))
	metric_name := flag.String("metric", "mae", "error metric, mae or nmse")
	summary := flag.String("summary", "", "write a tab separated summary table to this file")
	parallelism := flag.Int("parallel", 0, "number of workers, 0 means one per CPU")
	qualities_spec := flag.String("qualities", "", "comma separated qualities, default 10,20,...,100")
	show_version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()
	if *show_version {
		fmt.Println("depthbench", depthrgb.Version)
		return
	}

	logger := golog.NewDevelopmentLogger("depthbench")
	images, err := depthrgb.LoadDir(*assets)
	if err != nil {
		return
	}
	c, err := codecs.Get(*codec_name)
	if err != nil {
		return
	}
	metric, err := bench.MetricByName(*metric_name)
	if err != nil {
		return
	}
	qualities, err := parse_qualities(*qualities_spec)
	if err != nil {
		return
	}
	var rows []bench.SummaryRow
	for _, name := range strings.Split(*names, ",") {
		name = strings.TrimSpace(name)
		t, terr := transcoders.New(name)
		if err = terr; err != nil {
			return
		}
		logger.Infof("Benchmarking %s...", name)
		res, rerr := bench.Run(t, images, bench.WithCodec(c), bench.WithMetric(metric),
			bench.WithQualities(qualities...), bench.WithParallelism(*parallelism), bench.WithLogger(logger))
		if err = rerr; err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return
		}
		if err = bench.Print(os.Stdout, res); err != nil {
			return
		}
		rows = append(rows, bench.Summarize(name, res, bench.DefaultCheckpoints))
	}
	fmt.Println()
	if err = bench.PrintSummary(os.Stdout, rows, bench.DefaultCheckpoints); err != nil {
		return
	}
	if *summary != "" {
		out, ferr := os.OpenFile(*summary, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
		if err = ferr; err != nil {
			return
		}
		err = bench.WriteSummary(out, rows, bench.DefaultCheckpoints)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			logger.Infof("Summary saved to: %s", *summary)
		}
	}
}
