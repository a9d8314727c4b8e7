// kdwbench sweeps a grid of (n, k, ordering) scenarios, building a KDW-tree
// Index for each and timing Count/Report/Sample queries over random
// rectangles, writing one CSV row per scenario. Modeled directly on the
// teacher's mmph/paramselect param-sweep CLI: stdlib flag for the grid,
// encoding/csv for output, a worker pool of goroutines over trials, and
// p50/p95 quantiles over the timings.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	xrand "golang.org/x/exp/rand"

	"kdwtree/kdw"
)

type scenario struct {
	n        int
	k        int
	ordering kdw.Ordering
}

type scenarioResult struct {
	scenario
	trials          int
	buildMillis     float64
	bytesTotal      int
	countP50Micros  float64
	countP95Micros  float64
	reportP50Micros float64
	sampleP50Micros float64
	avgMatches      float64
}

func main() {
	var (
		nsArg      = flag.String("n", "1000,10000,100000", "comma-separated point counts")
		ksArg      = flag.String("k", "2,3,5", "comma-separated dimensionalities")
		orderings  = flag.String("ordering", "zorder,externalized", "comma-separated orderings")
		trials     = flag.Int("trials", 32, "query trials per scenario")
		sampleSize = flag.Uint64("sample", 8, "points requested per Sample trial")
		workers    = flag.Int("workers", runtime.NumCPU(), "parallel query workers per scenario")
		out        = flag.String("out", "kdwbench_results.csv", "output CSV path")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "base RNG seed")
	)
	flag.Parse()

	ns := parseCSVInts(*nsArg)
	ks := parseCSVInts(*ksArg)
	ords := parseOrderings(*orderings)
	if len(ns) == 0 || len(ks) == 0 || len(ords) == 0 {
		fail("n, k and ordering must be non-empty")
	}
	if *trials <= 0 || *workers <= 0 {
		fail("trials and workers must be > 0")
	}

	f, err := os.Create(*out)
	if err != nil {
		fail("creating output file: %v", err)
	}
	defer f.Close()
	wr := csv.NewWriter(f)
	defer wr.Flush()

	header := []string{
		"n", "k", "ordering", "build_ms", "bytes_total", "bytes_human",
		"trials", "count_p50_us", "count_p95_us", "report_p50_us",
		"sample_p50_us", "avg_matches",
	}
	mustWrite(wr, header)

	scenarios := make([]scenario, 0, len(ns)*len(ks)*len(ords))
	for _, n := range ns {
		for _, k := range ks {
			for _, o := range ords {
				scenarios = append(scenarios, scenario{n: n, k: k, ordering: o})
			}
		}
	}

	for i, sc := range scenarios {
		fmt.Printf("[%d/%d] n=%d k=%d ordering=%s\n", i+1, len(scenarios), sc.n, sc.k, sc.ordering)
		res := runScenario(sc, *trials, *workers, *sampleSize, *seed+int64(i)*1_000_003)
		row := []string{
			strconv.Itoa(res.n),
			strconv.Itoa(res.k),
			res.ordering.String(),
			fmt.Sprintf("%.3f", res.buildMillis),
			strconv.Itoa(res.bytesTotal),
			humanize.Bytes(uint64(res.bytesTotal)),
			strconv.Itoa(res.trials),
			fmt.Sprintf("%.2f", res.countP50Micros),
			fmt.Sprintf("%.2f", res.countP95Micros),
			fmt.Sprintf("%.2f", res.reportP50Micros),
			fmt.Sprintf("%.2f", res.sampleP50Micros),
			fmt.Sprintf("%.2f", res.avgMatches),
		}
		mustWrite(wr, row)
		wr.Flush()
	}
	fmt.Printf("done: %s\n", *out)
}

func runScenario(sc scenario, trials, workers int, sampleSize uint64, baseSeed int64) scenarioResult {
	rng := rand.New(rand.NewSource(baseSeed))
	points := make([][]float64, sc.n)
	for i := range points {
		row := make([]float64, sc.k)
		for d := range row {
			row[d] = rng.Float64() * 1000
		}
		points[i] = row
	}

	buildStart := time.Now()
	idx, err := kdw.Construct(points, sc.ordering)
	if err != nil {
		fail("construct failed for scenario %+v: %v", sc, err)
	}
	buildMillis := time.Since(buildStart).Seconds() * 1000

	type timing struct{ countUs, reportUs, sampleUs float64; matches uint64 }
	results := make([]timing, trials)

	jobs := make(chan int, trials)
	var wg sync.WaitGroup
	workerCount := workers
	if workerCount > trials {
		workerCount = trials
	}
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			src := xrand.New(xrand.NewSource(uint64(mixSeed(baseSeed, int64(workerID)))))
			for t := range jobs {
				min, max := randomRect(rng, sc.k)
				t0 := time.Now()
				count, err := idx.Count(min, max)
				if err != nil {
					fail("count failed: %v", err)
				}
				countUs := time.Since(t0).Seconds() * 1e6

				t1 := time.Now()
				if _, err := idx.Report(min, max); err != nil {
					fail("report failed: %v", err)
				}
				reportUs := time.Since(t1).Seconds() * 1e6

				sampleUs := 0.0
				k := sampleSize
				if k > count {
					k = count
				}
				if k > 0 {
					t2 := time.Now()
					if _, err := idx.Sample(src, min, max, k); err != nil {
						fail("sample failed: %v", err)
					}
					sampleUs = time.Since(t2).Seconds() * 1e6
				}
				results[t] = timing{countUs: countUs, reportUs: reportUs, sampleUs: sampleUs, matches: count}
			}
		}(w)
	}
	for t := 0; t < trials; t++ {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	countUs := make([]float64, trials)
	reportUs := make([]float64, trials)
	sampleUs := make([]float64, trials)
	var matchSum uint64
	for i, r := range results {
		countUs[i] = r.countUs
		reportUs[i] = r.reportUs
		sampleUs[i] = r.sampleUs
		matchSum += r.matches
	}

	report := idx.MemReport()
	return scenarioResult{
		scenario:        sc,
		trials:          trials,
		buildMillis:     buildMillis,
		bytesTotal:      report.TotalBytes,
		countP50Micros:  quantile(countUs, 0.50),
		countP95Micros:  quantile(countUs, 0.95),
		reportP50Micros: quantile(reportUs, 0.50),
		sampleP50Micros: quantile(sampleUs, 0.50),
		avgMatches:      float64(matchSum) / float64(trials),
	}
}

func randomRect(rng *rand.Rand, k int) ([]float64, []float64) {
	min := make([]float64, k)
	max := make([]float64, k)
	for d := 0; d < k; d++ {
		a := rng.Float64() * 1000
		b := rng.Float64() * 1000
		if a > b {
			a, b = b, a
		}
		min[d], max[d] = a, b
	}
	return min, max
}

func parseCSVInts(v string) []int {
	out := make([]int, 0)
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			fail("parsing int %q: %v", p, err)
		}
		out = append(out, n)
	}
	return out
}

func parseOrderings(v string) []kdw.Ordering {
	out := make([]kdw.Ordering, 0)
	for _, p := range strings.Split(v, ",") {
		switch strings.TrimSpace(p) {
		case "zorder":
			out = append(out, kdw.ZOrder)
		case "externalized":
			out = append(out, kdw.Externalized)
		case "":
		default:
			fail("unknown ordering %q", p)
		}
	}
	return out
}

func mustWrite(w *csv.Writer, row []string) {
	if err := w.Write(row); err != nil {
		fail("writing csv row: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	pos := int(math.Round(q * float64(len(cp)-1)))
	if pos < 0 {
		pos = 0
	}
	if pos >= len(cp) {
		pos = len(cp) - 1
	}
	return cp[pos]
}

func mixSeed(base, a int64) int64 {
	x := uint64(base) + 0x9e3779b97f4a7c15
	x ^= uint64(a) + 0x9e3779b97f4a7c15 + (x << 6) + (x >> 2)
	return int64(x)
}
