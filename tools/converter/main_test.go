package main

import (
	"reflect"
	"strings"
	"testing"
)

func Test_parse(t *testing.T) {
	input := `goos: linux
BenchmarkSequence_Snapshot/v0_1k
BenchmarkSequence_Snapshot/v0_1k-20         	 1708902	       653.0 ns/op
BenchmarkSequence_Insert/1k_25%-8   	  300000	      4012 ns/op	       0 B/op
BenchmarkSequence_Append/10-8   	  300000	      3.5 ns/op
PASS
`
	got, err := parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []row{
		{"Sequence_Snapshot", "653.0", []string{"v0", "1k"}},
		{"Sequence_Insert", "4012", []string{"1k", "25%"}},
		{"Sequence_Append", "3.5", []string{"10"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parse() got = %v, want %v", got, want)
	}
}

func Test_parseName(t *testing.T) {
	tests := []struct {
		name      string
		benchmark string
		fields    []string
	}{
		{"BenchmarkSequence_Append-20", "Sequence_Append", nil},
		{"BenchmarkSequence_Insert/1k_head-4", "Sequence_Insert", []string{"1k", "head"}},
		{"BenchmarkSequence_Insert/1k_tail", "Sequence_Insert", []string{"1k", "tail"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			benchmark, fields := parseName(tt.name)
			if benchmark != tt.benchmark || !reflect.DeepEqual(fields, tt.fields) {
				t.Errorf("parseName() = %v %v, want %v %v", benchmark, fields, tt.benchmark, tt.fields)
			}
		})
	}
}
