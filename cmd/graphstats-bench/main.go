package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
	"github.com/golang/snappy"
)

type loadStats struct {
	Name       string
	Duration   time.Duration
	Nodes      int
	Edges      int
	Throughput float64
}

type tallyStats struct {
	Workers  int
	Duration time.Duration
	Speedup  float64
}

// writeEdgeList writes a random multigraph with the given number of nodes
// and roughly nodes*degree/2 edges.
func writeEdgeList(w io.Writer, nodes, degree int, rng *rand.Rand) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("id_1,id_2\n"); err != nil {
		return 0, err
	}
	edges := nodes * degree / 2
	buf := make([]byte, 0, 32)
	for i := 0; i < edges; i++ {
		buf = strconv.AppendInt(buf[:0], int64(rng.Intn(nodes)), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(rng.Intn(nodes)), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return 0, err
		}
	}
	return edges, bw.Flush()
}

func createInputs(dir string, nodes, degree int, seed int64) (plain, compressed string, err error) {
	plain = filepath.Join(dir, "edges.csv")
	compressed = filepath.Join(dir, "edges.csv.snappy")

	f, err := os.Create(plain)
	if err != nil {
		return "", "", err
	}
	if _, err := writeEdgeList(f, nodes, degree, rand.New(rand.NewSource(seed))); err != nil {
		f.Close()
		return "", "", err
	}
	if err := f.Close(); err != nil {
		return "", "", err
	}

	src, err := os.Open(plain)
	if err != nil {
		return "", "", err
	}
	defer src.Close()
	dst, err := os.Create(compressed)
	if err != nil {
		return "", "", err
	}
	sw := snappy.NewBufferedWriter(dst)
	if _, err := io.Copy(sw, src); err != nil {
		dst.Close()
		return "", "", err
	}
	if err := sw.Close(); err != nil {
		dst.Close()
		return "", "", err
	}
	return plain, compressed, dst.Close()
}

func benchmarkLoad(name, path string, open edgelist.OpenOptions) (loadStats, *analyzer.Analyzer) {
	start := time.Now()
	a, err := analyzer.Load(path, analyzer.WithOpenOptions(open))
	if err != nil {
		log.Fatalf("%s load failed: %v", name, err)
	}
	d := time.Since(start)
	return loadStats{
		Name:       name,
		Duration:   d,
		Nodes:      a.NodeCount(),
		Edges:      a.EdgeCount(),
		Throughput: float64(a.EdgeCount()) / d.Seconds(),
	}, a
}

func benchmarkTally(path string, workers, rounds int) time.Duration {
	a, err := analyzer.Load(path, analyzer.WithWorkers(workers))
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}
	start := time.Now()
	for i := 0; i < rounds; i++ {
		a.DegreeDistribution()
	}
	return time.Since(start) / time.Duration(rounds)
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func main() {
	numNodes := flag.Int("nodes", 200000, "Number of nodes")
	avgDegree := flag.Int("degree", 20, "Average degree per node")
	numWorkers := flag.Int("workers", 0, "Maximum tally workers (0 = CPU count)")
	rounds := flag.Int("rounds", 5, "Degree tally rounds per worker count")
	seed := flag.Int64("seed", 1, "Random seed for the generated edge list")
	flag.Parse()

	if *numWorkers == 0 {
		*numWorkers = runtime.NumCPU()
	}

	fmt.Printf("Graph Statistics Benchmark\n")
	fmt.Printf("==========================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes:       %d\n", *numNodes)
	fmt.Printf("  Avg Degree:  %d\n", *avgDegree)
	fmt.Printf("  CPU Cores:   %d\n", runtime.NumCPU())
	fmt.Printf("  Workers:     %d\n\n", *numWorkers)

	dir, err := os.MkdirTemp("", "graphstats-bench")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	fmt.Printf("Generating edge list...\n")
	plain, compressed, err := createInputs(dir, *numNodes, *avgDegree, *seed)
	if err != nil {
		log.Fatalf("Failed to generate input: %v", err)
	}
	fmt.Printf("   Plain:   %d bytes\n", fileSize(plain))
	fmt.Printf("   Snappy:  %d bytes (%.1f%%)\n\n", fileSize(compressed),
		100*float64(fileSize(compressed))/float64(fileSize(plain)))

	// Load variants
	var loads []loadStats
	var reference *analyzer.Analyzer
	for _, v := range []struct {
		name string
		path string
		open edgelist.OpenOptions
	}{
		{"buffered", plain, edgelist.OpenOptions{Compression: edgelist.CompressionNone}},
		{"mmap", plain, edgelist.OpenOptions{Mmap: true, Compression: edgelist.CompressionNone}},
		{"snappy", compressed, edgelist.OpenOptions{Compression: edgelist.CompressionSnappy}},
	} {
		fmt.Printf("Loading (%s)...\n", v.name)
		stats, a := benchmarkLoad(v.name, v.path, v.open)
		fmt.Printf("   Nodes:      %d\n", stats.Nodes)
		fmt.Printf("   Edges:      %d\n", stats.Edges)
		fmt.Printf("   Duration:   %s\n", stats.Duration)
		fmt.Printf("   Throughput: %.0f edges/sec\n\n", stats.Throughput)
		if reference == nil {
			reference = a
		} else if !a.DegreeDistribution().Equal(reference.DegreeDistribution()) {
			log.Fatalf("%s load produced a different degree distribution", v.name)
		}
		loads = append(loads, stats)
	}

	// Degree tally scaling
	var tallies []tallyStats
	var base time.Duration
	for workers := 1; workers <= *numWorkers; workers *= 2 {
		d := benchmarkTally(plain, workers, *rounds)
		if workers == 1 {
			base = d
		}
		tallies = append(tallies, tallyStats{Workers: workers, Duration: d, Speedup: base.Seconds() / d.Seconds()})
	}

	fmt.Printf("Summary\n")
	fmt.Printf("==========================\n")
	for _, l := range loads {
		fmt.Printf("  load %-9s %12s  %12.0f edges/sec\n", l.Name, l.Duration, l.Throughput)
	}
	for _, t := range tallies {
		fmt.Printf("  tally %2d workers %12s  %.2fx\n", t.Workers, t.Duration, t.Speedup)
	}
}
