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
import "os"

/* -------------------------------------------------------------------------- */

// Score a table of named features. One score is returned per row, in row
// order. Rows whose feature cannot be resolved yield a null score and a
// warning; configuration errors abort the call with no partial result.
func (source *DatasetSource) CollectFeatureScores(names []string, types []string, datasets string, opts Options) ([]Score, error) {
  if err := source.CheckDatasets(datasets); err != nil {
    return nil, err
  }
  result := make([]Score, len(names))

  for i, name := range names {
    segment, _, err := source.Features.ResolveSegment(name, types, opts.Adjust)
    if err != nil {
      fmt.Fprintf(os.Stderr, "CollectFeatureScores(): %v, skipping row %d\n", err, i+1)
      result[i] = NullScore()
      continue
    }
    score, err := source.ScoreSegment(segment, datasets, opts)
    if err != nil {
      return nil, err
    }
    result[i] = score
  }
  return result, nil
}

/* -------------------------------------------------------------------------- */

// Score a table of raw genomic windows. No feature lookup or
// strand-relative adjustment is performed. The scores are appended to
// the table as a meta column named after the dataset.
func (source *DatasetSource) CollectGenomeScores(granges *GRanges, datasets string, opts Options) ([]Score, error) {
  if err := source.CheckDatasets(datasets); err != nil {
    return nil, err
  }
  // raw windows are scored as they are
  opts.Adjust = Adjustment{}

  result := make([]Score, granges.Length())

  for i := 0; i < granges.Length(); i++ {
    score, err := source.ScoreSegment(granges.Row(i), datasets, opts)
    if err != nil {
      return nil, err
    }
    result[i] = score
  }
  granges.AddMeta(datasets, result)

  return result, nil
}

/* -------------------------------------------------------------------------- */

// Score a single ad hoc interval.
func (source *DatasetSource) PointScore(seqname string, from, to int, strand Strand, datasets string, opts Options) (Score, error) {
  if from > to {
    return NullScore(), fmt.Errorf("invalid interval [%d, %d)", from, to)
  }
  return source.ScoreSegment(NewSegment(seqname, from, to, strand), datasets, opts)
}
