// Package datasets loads recorded performance metrics for fitness replay.
//
// A metrics log is a parquet file with float64 columns named after the
// kernel metric keys. Logs recorded by external harnesses can carry any
// subset of the columns; whatever a row does not measure stays absent so
// the kernel's documented defaults apply when the sample is scored.
package datasets

import (
	"context"
	"sync"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet/file"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"

	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/kernel"
)

// MetricsSample is one recorded row of a metrics log, keyed by metric name.
type MetricsSample map[string]float64

// Metrics converts the sample for kernel fitness evaluation.
func (s MetricsSample) Metrics() kernel.Metrics {
	return kernel.Metrics(s)
}

// metricColumns are the columns a metrics log may carry. Any subset is
// accepted; other columns are ignored.
var metricColumns = []string{
	kernel.MetricSuccessRate,
	kernel.MetricEntertainment,
	kernel.MetricChaosLevel,
	kernel.MetricTranscendRate,
}

// LoadMetricsLog reads recorded performance metrics from a parquet file.
// Null cells leave the corresponding key absent from the sample. A file
// carrying none of the metric columns is rejected.
func LoadMetricsLog(ctx context.Context, path string) ([]MetricsSample, error) {
	reader, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.DatasetLoadFailed, "failed to open metrics log"),
			errors.Fields{"path": path})
	}
	defer reader.Close()

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.DatasetLoadFailed, "failed to build arrow reader"),
			errors.Fields{"path": path})
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.DatasetLoadFailed, "failed to read metrics log schema"),
			errors.Fields{"path": path})
	}

	// Resolve the metric columns the file actually carries
	indices := make(map[string]int, len(metricColumns))
	for _, name := range metricColumns {
		fieldIndices := schema.FieldIndices(name)
		if len(fieldIndices) == 0 {
			continue
		}
		idx := fieldIndices[0]
		if schema.Field(idx).Type.ID() != arrow.FLOAT64 {
			return nil, errors.WithFields(
				errors.New(errors.DatasetLoadFailed, "metric column is not float64"),
				errors.Fields{"path": path, "column": name, "type": schema.Field(idx).Type.Name()})
		}
		indices[name] = idx
	}
	if len(indices) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.DatasetLoadFailed, "no metric columns found in metrics log"),
			errors.Fields{"path": path})
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.DatasetLoadFailed, "failed to read metrics log table"),
			errors.Fields{"path": path})
	}
	defer table.Release()

	samples := make([]MetricsSample, table.NumRows())
	for i := range samples {
		samples[i] = make(MetricsSample, len(indices))
	}

	for name, idx := range indices {
		row := 0
		for _, chunk := range table.Column(idx).Data().Chunks() {
			values, ok := chunk.(*array.Float64)
			if !ok {
				return nil, errors.WithFields(
					errors.New(errors.DatasetLoadFailed, "metric column chunk is not float64"),
					errors.Fields{"path": path, "column": name})
			}
			for j := 0; j < values.Len(); j++ {
				if !values.IsNull(j) {
					samples[row][name] = values.Value(j)
				}
				row++
			}
		}
	}

	return samples, nil
}

// ReplaySource adapts loaded samples into an evaluation source for
// Evolver.EvaluatePopulation, handing out samples in order and wrapping
// around when the log is shorter than the population. Safe for concurrent
// use. An empty log yields empty metrics, so kernel defaults apply.
func ReplaySource(samples []MetricsSample) func(*kernel.Kernel) kernel.Metrics {
	var mu sync.Mutex
	next := 0
	return func(*kernel.Kernel) kernel.Metrics {
		mu.Lock()
		defer mu.Unlock()
		if len(samples) == 0 {
			return kernel.Metrics{}
		}
		sample := samples[next%len(samples)]
		next++
		return sample.Metrics()
	}
}
