package workload

import (
	"bytes"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// Repository holds the workloads of a YAML file, swapped atomically on Reload.
type Repository struct {
	configFilePath string
	pd             atomic.Pointer[[]Workload]
	stat           ConfigFileStat
}

func parse(r io.Reader) ([]Workload, error) {
	var ret []Workload
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&ret); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	names := make(map[string]bool)
	for _, w := range ret {
		if err := w.validate(); err != nil {
			return nil, err
		}
		if names[w.Name] {
			return nil, fmt.Errorf("duplicate workload %s", w.Name)
		}
		names[w.Name] = true
	}
	return ret, nil
}

func NewRepository(configFilePath string) (*Repository, error) {
	ret := &Repository{configFilePath: configFilePath}
	if _, err := ret.Reload(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *Repository) FindAll() []Workload {
	return *r.pd.Load()
}

func (r *Repository) Find(name string) (w Workload, ok bool) {
	for _, w := range *r.pd.Load() {
		if w.Name == name {
			return w, true
		}
	}
	return Workload{}, false
}

type ReloadResult struct {
	Before ConfigFileStat
	After  ConfigFileStat
}

type ConfigFileStat struct {
	ModifiedTime time.Time
	Size         int
	ItemCount    int
}

// Reload reads the file again. On error the previously loaded workloads stay in place.
func (r *Repository) Reload() (*ReloadResult, error) {
	file, err := os.ReadFile(r.configFilePath)
	if err != nil {
		return nil, fmt.Errorf("read workload file: %w", err)
	}
	workloads, err := parse(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("parse workload file %s: %w", r.configFilePath, err)
	}
	stat, err := os.Stat(r.configFilePath)
	if err != nil {
		return nil, fmt.Errorf("stat workload file: %w", err)
	}
	r.pd.Store(&workloads)

	neo := ConfigFileStat{
		ModifiedTime: stat.ModTime(),
		Size:         int(stat.Size()),
		ItemCount:    len(workloads),
	}
	ret := &ReloadResult{
		Before: r.stat,
		After:  neo,
	}
	r.stat = neo
	return ret, nil
}
