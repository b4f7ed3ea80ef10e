package perf

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jgrimm/slotmap/cmd/util"
	"github.com/jgrimm/slotmap/lib/slotmap"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// PerfCmd is the in-process benchmark tool for the map library
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for slotmap",
		Long:    "Runs the common operation mix against a freshly built map and reports throughput and latency percentiles.",
		RunE:    run,
		PreRunE: processPerfConfig,
	}

	perfNumThreads  = 10
	perfKeySpread   = 100_000
	perfValueSizeKB = 1
	perfNumShards   = 0
	perfPooled      = true
	perfSkip        = make([]string, 0)
	perfCSVPath     = ""
)

func init() {
	cobra.OnInitialize(util.InitEnvConfig)

	// add flags
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. add,get)"))
	key = "threads"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "value-size"
	PerfCmd.Flags().Int(key, 1, util.WrapString("Size of the stored values (in KB)"))
	key = "keys"
	PerfCmd.Flags().Int(key, 100_000, util.WrapString("How many different keys to use for the tests"))
	key = "shards"
	PerfCmd.Flags().Int(key, 0, util.WrapString("Number of shards for the map (0 = one per CPU)"))
	key = "pooled"
	PerfCmd.Flags().Bool(key, true, util.WrapString("Enable the per-shard node free list"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = viper.GetInt("threads")
	perfKeySpread = viper.GetInt("keys")
	perfValueSizeKB = viper.GetInt("value-size")
	perfNumShards = viper.GetInt("shards")
	perfPooled = viper.GetBool("pooled")
	perfSkip = strings.Split(viper.GetString("skip"), ",")
	perfCSVPath = viper.GetString("csv")

	return nil
}

func shouldSkip(name string) bool {
	for _, s := range perfSkip {
		if strings.TrimSpace(s) == name {
			return true
		}
	}
	return false
}

func newMap() *slotmap.Map[string, []byte] {
	return slotmap.New[string, []byte](&slotmap.Options{
		NumShards: perfNumShards,
		SizeHint:  perfKeySpread,
		Pooled:    perfPooled,
	})
}

func perfKey(counter int) string {
	return "__test-" + strconv.Itoa(counter%perfKeySpread)
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for slotmap")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Threads:    %d\n", perfNumThreads)
	fmt.Printf("Keys:       %d\n", perfKeySpread)
	fmt.Printf("Value size: %d KB\n", perfValueSizeKB)
	fmt.Printf("Shards:     %d (0 = auto)\n", perfNumShards)
	fmt.Printf("Pooled:     %v\n", perfPooled)
	fmt.Println()

	fmt.Println("starting tests...")

	value := make([]byte, perfValueSizeKB*1024)

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	addResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("add") {
			return
		}
		m := newMap()

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				m.Add(perfKey(counter), value)
				counter++
			}
		})
	})
	results["add"] = addResult
	printResult("add", addResult)

	getResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get") {
			return
		}
		m := newMap()
		for i := 0; i < perfKeySpread; i++ {
			m.Add(perfKey(i), value)
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, ok := m.Get(perfKey(counter)); !ok {
					log.Printf("(get) - missing key %s\n", perfKey(counter))
				}
				counter++
			}
		})
	})
	results["get"] = getResult
	printResult("get", getResult)

	computeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("compute") {
			return
		}
		m := newMap()

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				m.ComputeIfAbsent(perfKey(counter), func() []byte { return value }, nil)
				counter++
			}
		})
	})
	results["compute"] = computeResult
	printResult("compute", computeResult)

	removeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("remove") {
			return
		}
		m := newMap()
		for i := 0; i < perfKeySpread; i++ {
			m.Add(perfKey(i), value)
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				m.Remove(perfKey(counter))
				m.Add(perfKey(counter), value)
				counter++
			}
		})
	})
	results["remove"] = removeResult
	printResult("remove", removeResult)

	mixedResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}
		m := newMap()
		for i := 0; i < perfKeySpread; i++ {
			m.Add(perfKey(i), value)
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				key := perfKey(counter)
				switch counter % 10 {
				case 0:
					m.Add(key, value)
				case 1:
					m.Remove(key)
				case 2:
					m.Update(key, func(v *[]byte) { *v = value })
				default:
					m.Get(key)
				}
				counter++
			}
		})
	})
	results["mixed"] = mixedResult
	printResult("mixed", mixedResult)

	// latency percentiles for single operations
	if !shouldSkip("latency") {
		printLatencies()
	}

	// optionally save results as CSV
	if perfCSVPath != "" {
		if err := saveCSV(perfCSVPath, results); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Printf("\nresults written to %s\n", perfCSVPath)
	}

	return nil
}

// printLatencies measures single-operation latencies and reports
// percentiles from a histogram
func printLatencies() {
	const samples = 200_000

	m := newMap()
	value := make([]byte, perfValueSizeKB*1024)
	for i := 0; i < perfKeySpread; i++ {
		m.Add(perfKey(i), value)
	}

	getHist := gometrics.NewHistogram(gometrics.NewUniformSample(samples))
	addHist := gometrics.NewHistogram(gometrics.NewUniformSample(samples))

	for i := 0; i < samples; i++ {
		start := time.Now()
		m.Get(perfKey(i))
		getHist.Update(time.Since(start).Nanoseconds())

		start = time.Now()
		m.Add(perfKey(i), value)
		addHist.Update(time.Since(start).Nanoseconds())
	}

	fmt.Println()
	fmt.Println("single-op latency percentiles (ns):")
	for name, hist := range map[string]gometrics.Histogram{"get": getHist, "add": addHist} {
		ps := hist.Percentiles([]float64{0.5, 0.9, 0.99})
		fmt.Printf("%-8s p50=%8.0f  p90=%8.0f  p99=%8.0f  mean=%8.0f\n",
			name, ps[0], ps[1], ps[2], hist.Mean())
	}
}

func printResult(name string, result testing.BenchmarkResult) {
	fmt.Printf("%-8s %12d ops %14.1f ns/op %12d B/op\n",
		name, result.N, float64(result.T.Nanoseconds())/float64(result.N), result.AllocedBytesPerOp())
}

func saveCSV(path string, results map[string]testing.BenchmarkResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"benchmark", "ops", "ns_per_op", "bytes_per_op"}); err != nil {
		return err
	}
	for name, result := range results {
		row := []string{
			name,
			strconv.Itoa(result.N),
			fmt.Sprintf("%.1f", float64(result.T.Nanoseconds())/float64(result.N)),
			strconv.FormatInt(result.AllocedBytesPerOp(), 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
