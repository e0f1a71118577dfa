package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/wirefield/reactivity"
)

// Exercises dynamic dep-set churn: a grid of computed cells where a share
// of the cells re-track their sources whenever a toggle flips.

type gridConfig struct {
	name           string
	width          int
	totalLayers    int
	staticFraction float64
	readFraction   float64
	iterations     int64
}

type grid struct {
	counter *int64
	sources []reactivity.RefLike
	toggles []reactivity.RefLike
	leaves  []reactivity.RefLike
}

func makeGrid(cfg *gridConfig, counter *int64) *grid {
	g := &grid{counter: counter}
	for i := 0; i < cfg.width; i++ {
		g.sources = append(g.sources, reactivity.NewRef(i))
	}

	layer := g.sources
	for l := 0; l < cfg.totalLayers; l++ {
		next := make([]reactivity.RefLike, 0, cfg.width)
		for i := 0; i < cfg.width; i++ {
			a := layer[i%len(layer)]
			b := layer[(i+1)%len(layer)]
			if rand.Float64() < cfg.staticFraction {
				next = append(next, reactivity.NewComputed(func() any {
					*g.counter++
					return a.Value().(int) + b.Value().(int)
				}))
			} else {
				toggle := reactivity.NewRef(true)
				g.toggles = append(g.toggles, toggle)
				next = append(next, reactivity.NewComputed(func() any {
					*g.counter++
					if toggle.Value().(bool) {
						return a.Value().(int)
					}
					return b.Value().(int)
				}))
			}
		}
		layer = next
	}
	g.leaves = layer
	return g
}

func runGrid(g *grid, cfg *gridConfig) int {
	sum := 0
	for i := int64(0); i < cfg.iterations; i++ {
		src := g.sources[rand.Intn(len(g.sources))]
		src.SetValue(src.Value().(int) + 1)
		if len(g.toggles) > 0 && i%7 == 0 {
			t := g.toggles[rand.Intn(len(g.toggles))]
			t.SetValue(!t.Value().(bool))
		}
		for _, leaf := range g.leaves {
			if rand.Float64() <= cfg.readFraction {
				sum += leaf.Value().(int)
			}
		}
	}
	return sum
}

func main() {
	log.Print("Starting cellgrid benchmark, please wait...")
	defer log.Print("Finished cellgrid benchmark")

	reactivity.SetDevMode(false)

	cfgs := []gridConfig{
		{
			name:           "simple component",
			width:          10,
			totalLayers:    5,
			staticFraction: 1,
			readFraction:   0.2,
			iterations:     60000,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			readFraction:   0.2,
			iterations:     15000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			readFraction:   1,
			iterations:     300,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			readFraction:   1,
			iterations:     500,
		},
		{
			name:           "very dynamic",
			width:          100,
			totalLayers:    15,
			staticFraction: 0.5,
			readFraction:   1,
			iterations:     2000,
		},
	}

	type results struct {
		sum      int
		count    int64
		duration time.Duration
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"framework", "size", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	testRepeats := 5
	for i := range cfgs {
		cfg := &cfgs[i]
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)
		g := makeGrid(cfg, counter)

		// warm up
		runGrid(g, cfg)

		best := &results{duration: time.Hour}
		for r := 0; r < testRepeats; r++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, r+1, testRepeats)
			*counter = 0
			start := time.Now()
			sum := runGrid(g, cfg)
			duration := time.Since(start)
			if duration < best.duration {
				best.duration = duration
				best.sum = sum
				best.count = *counter
			}
		}

		makeTitle := func() string {
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers))
			if cfg.staticFraction < 1 {
				sb.WriteString(" dynamic")
			}
			if cfg.readFraction < 1 {
				sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
			}
			return sb.String()
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		tbl.Append([]string{
			"reactivity",
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(updateRate)),
			makeTitle(),
		})
	}
	tbl.Render()
}
