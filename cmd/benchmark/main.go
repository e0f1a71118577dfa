package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	"github.com/wirefield/reactivity"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Propagation benchmark over computed chains",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Samples per topology",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "CPU profile output path, empty to disable",
				Value: "default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	reactivity.SetDevMode(false)

	log.Printf("warming up")
	benchmarkPropagate(iters, false)
	benchmarkPropagate(iters, true)
	return nil
}

func benchmarkPropagate(iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Reactivity Core")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := reactivity.NewRef(1)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					prev := last
					last = reactivity.NewComputed(func() any {
						return prev.Value().(int) + 1
					})
				}
				reactivity.NewEffect(func() any {
					return last.Value()
				}, nil)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value().(int) + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
