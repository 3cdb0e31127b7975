/* Copyright (C) 2018 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package genoscore

/* -------------------------------------------------------------------------- */

import "fmt"
import "io"
import "strings"

/* -------------------------------------------------------------------------- */

// Cache of opened signal file handles, keyed by file path. Readers are
// opened lazily on first access and stay open until the cache is closed.
// The cache is not synchronized; every worker must own its own instance.
type HandleCache struct {
  wib     map[string]*WibReader
  isf     map[string]*IsfReader
  closers []io.Closer
}

func NewHandleCache() *HandleCache {
  cache := HandleCache{}
  cache.wib = make(map[string]*WibReader)
  cache.isf = make(map[string]*IsfReader)
  return &cache
}

func (cache *HandleCache) Wib(path string) (*WibReader, error) {
  if reader, ok := cache.wib[path]; ok {
    return reader, nil
  }
  reader, closer, err := OpenWibFile(path)
  if err != nil {
    return nil, err
  }
  cache.wib[path]  = reader
  cache.closers    = append(cache.closers, closer)
  return reader, nil
}

func (cache *HandleCache) Isf(path string) (*IsfReader, error) {
  if reader, ok := cache.isf[path]; ok {
    return reader, nil
  }
  reader, closer, err := OpenIsfFile(path)
  if err != nil {
    return nil, err
  }
  cache.isf[path]  = reader
  cache.closers    = append(cache.closers, closer)
  return reader, nil
}

// Close all cached file handles. The cache may be reused afterwards.
func (cache *HandleCache) Close() error {
  var result error
  for _, closer := range cache.closers {
    if err := closer.Close(); err != nil {
      result = err
    }
  }
  cache.wib     = make(map[string]*WibReader)
  cache.isf     = make(map[string]*IsfReader)
  cache.closers = nil
  return result
}

/* -------------------------------------------------------------------------- */

// Uniform read interface over the three storage backends. Features of the
// dataset type either carry an inline score or tag a per-chromosome signal
// file, which is opened through the handle cache.
type DatasetSource struct {
  Features *FeatureSet
  Cache    *HandleCache
}

func NewDatasetSource(features *FeatureSet) *DatasetSource {
  return &DatasetSource{features, NewHandleCache()}
}

func (source *DatasetSource) Close() error {
  return source.Cache.Close()
}

/* -------------------------------------------------------------------------- */

// Dataset identifiers joined by `&' or `,' pool all matching datapoints
// into one logical result set.
func SplitDatasets(datasets string) []string {
  fields := strings.FieldsFunc(datasets, func(r rune) bool {
    return r == '&' || r == ','
  })
  result := []string{}
  for _, f := range fields {
    if f = strings.TrimSpace(f); f != "" {
      result = append(result, f)
    }
  }
  return result
}

// Verify that every named dataset is present in the feature set. A missing
// dataset is a configuration error and fatal to the call.
func (source *DatasetSource) CheckDatasets(datasets string) error {
  names := SplitDatasets(datasets)
  if len(names) == 0 {
    return fmt.Errorf("no dataset given")
  }
  for _, name := range names {
    if !source.Features.HasType(name) {
      return fmt.Errorf("dataset `%s' not found", name)
    }
  }
  return nil
}

/* -------------------------------------------------------------------------- */

func (source *DatasetSource) fetchSignal(segment Segment, feature Feature) ([]Datapoint, error) {
  result := []Datapoint{}

  switch {
  case strings.HasSuffix(feature.File, ".wib"):
    reader, err := source.Cache.Wib(feature.File)
    if err != nil {
      return nil, err
    }
    values, err := reader.Query(segment.From, segment.To)
    if err != nil {
      return nil, err
    }
    for _, v := range values {
      result = append(result, Datapoint{v.Range, StrandNone, ScaledSignalRef, v.Value, feature.File})
    }
  case strings.HasSuffix(feature.File, ".isf"):
    reader, err := source.Cache.Isf(feature.File)
    if err != nil {
      return nil, err
    }
    values, err := reader.Query(segment.From, segment.To)
    if err != nil {
      return nil, err
    }
    for _, v := range values {
      result = append(result, Datapoint{v.Range, StrandNone, IndexedSignalRef, v.Value, feature.File})
    }
  default:
    return nil, fmt.Errorf("dataset `%s': unsupported signal file `%s'", feature.Type, feature.File)
  }
  return result, nil
}

// Fetch all raw datapoints overlapping the segment from every dataset
// named in [datasets].
func (source *DatasetSource) Fetch(segment Segment, datasets string) ([]Datapoint, error) {
  if err := source.CheckDatasets(datasets); err != nil {
    return nil, err
  }
  result := []Datapoint{}

  for _, i := range source.Features.Overlapping(SplitDatasets(datasets), segment.Seqname, segment.Range) {
    feature := source.Features.Features[i]
    if feature.File == "" {
      result = append(result, Datapoint{feature.Range, feature.Strand, InlineScore, feature.Score, ""})
    } else {
      datapoints, err := source.fetchSignal(segment, feature)
      if err != nil {
        return nil, err
      }
      result = append(result, datapoints...)
    }
  }
  return result, nil
}

/* -------------------------------------------------------------------------- */

// Per-call scoring options. If Log2Auto is set, the log2 flag is inferred
// from the dataset name.
type Options struct {
  Method   CombinationMethod
  Strand   StrandMode
  Log2     bool
  Log2Auto bool
  Adjust   Adjustment
}

// Naming convention for log-transformed datasets.
func InferLog2(datasets string) bool {
  return strings.Contains(strings.ToLower(datasets), "log2")
}

func (opts Options) log2scale(datasets string) bool {
  if opts.Log2Auto {
    return InferLog2(datasets)
  }
  return opts.Log2
}

/* -------------------------------------------------------------------------- */

// Fetch, filter and fold the datapoints overlapping one segment into a
// single score.
func (source *DatasetSource) ScoreSegment(segment Segment, datasets string, opts Options) (Score, error) {
  datapoints, err := source.Fetch(segment, datasets)
  if err != nil {
    return NullScore(), err
  }
  values := []float64{}
  for _, datapoint := range datapoints {
    if KeepDatapoint(segment, opts.Strand, datapoint) {
      values = append(values, datapoint.Value)
    }
  }
  return Combine(values, opts.Method, opts.log2scale(datasets)), nil
}
