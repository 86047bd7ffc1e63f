package ann

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Statistics records the sampled epoch errors of every training run.
type Statistics struct {
	Runs   []string
	Epochs map[string][]int
	Costs  map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Runs:   make([]string, 0, 64),
		Epochs: make(map[string][]int),
		Costs:  make(map[string][]float32),
	}
}

func runName(run int) string { return fmt.Sprintf("run %d", run) }

func (s *Statistics) update(run, epoch int, cost float32) {
	name := runName(run)
	if _, ok := s.Costs[name]; !ok {
		s.Runs = append(s.Runs, name)
	}
	s.Epochs[name] = append(s.Epochs[name], epoch)
	s.Costs[name] = append(s.Costs[name], cost)
}

// Dump writes the statistics as CSV: one column per run, one row per sampled epoch.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return s.WriteCSV(csv.NewWriter(f))
}

func (s *Statistics) WriteCSV(w *csv.Writer) error {
	header := append([]string{"epoch"}, s.Runs...)
	if err := w.Write(header); err != nil {
		return errors.WithStack(err)
	}

	// runs share LogEvery, so the longest run has every sampled epoch
	var epochs []int
	for _, run := range s.Runs {
		if len(s.Epochs[run]) > len(epochs) {
			epochs = s.Epochs[run]
		}
	}

	records := make([][]string, 0, len(epochs))
	for j, epoch := range epochs {
		record := make([]string, len(header))
		record[0] = strconv.Itoa(epoch)
		for i, run := range s.Runs {
			if costs := s.Costs[run]; j < len(costs) {
				record[i+1] = strconv.FormatFloat(float64(costs[j]), 'f', 6, 32)
			}
		}
		records = append(records, record)
	}
	if err := w.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	w.Flush()
	return errors.WithStack(w.Error())
}
