// Command converter turns `go test -bench` output of the ring benchmarks into CSV rows.
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"
)

var input = flag.String("input", "input.txt", "the go test -bench output to read")
var output = flag.String("output", "output.csv", "the CSV file to write")

type row struct {
	benchmark string
	speed     string   // ns/op
	fields    []string // parts of the sub-benchmark name, like v1 and 1k
}

// parseName splits BenchmarkSequence_Insert/1k_25%-20 into Sequence_Insert and [1k 25%].
func parseName(name string) (benchmark string, fields []string) {
	name = strings.TrimPrefix(name, "Benchmark")
	if i := strings.LastIndexByte(name, '-'); i > 0 && strings.Trim(name[i+1:], "0123456789") == "" {
		name = name[:i]
	}
	benchmark, sub, ok := strings.Cut(name, "/")
	if !ok {
		return benchmark, nil
	}
	return benchmark, strings.Split(sub, "_")
}

// parse reads result lines. Lines naming a benchmark without a result, as -v prints them, are skipped.
func parse(r io.Reader) ([]row, error) {
	var ret []row
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || !strings.HasPrefix(parts[0], "Benchmark") {
			continue
		}
		unit := -1
		for i, part := range parts {
			if part == "ns/op" {
				unit = i
				break
			}
		}
		if unit < 2 {
			continue
		}
		benchmark, fields := parseName(parts[0])
		ret = append(ret, row{benchmark: benchmark, speed: parts[unit-1], fields: fields})
	}
	return ret, scanner.Err()
}

func main() {
	flag.Parse()

	in, err := os.Open(*input)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()
	rows, err := parse(in)
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"benchmark", "speed ns/op", "fields"}); err != nil {
		log.Fatal(err)
	}
	for _, r := range rows {
		if err := writer.Write(append([]string{r.benchmark, r.speed}, r.fields...)); err != nil {
			log.Fatal(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatal(err)
	}
	if err := out.Close(); err != nil {
		log.Fatal(err)
	}
}
