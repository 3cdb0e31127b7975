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
import "math"

/* -------------------------------------------------------------------------- */

// Quantity recorded per position by the position map collector.
type MapValue int

const (
  MapScore MapValue = iota
  MapCount
  MapLength
)

func ParseMapValue(str string) (MapValue, error) {
  switch str {
  case "score", "":
    return MapScore, nil
  case "count":
    return MapCount, nil
  case "length":
    return MapLength, nil
  }
  return MapScore, fmt.Errorf("invalid map value `%s'", str)
}

func (value MapValue) String() string {
  switch value {
  case MapCount : return "count"
  case MapLength: return "length"
  }
  return "score"
}

/* -------------------------------------------------------------------------- */

// Strand-correct anchor of a segment, i.e. its 5' end.
func (segment Segment) AnchorPosition() int {
  if segment.Strand == StrandRev {
    return segment.To - 1
  }
  return segment.From
}

/* -------------------------------------------------------------------------- */

// Collect a position to value map for one segment. Positions are
// re-expressed relative to the strand-correct anchor of the segment, with
// zero at the anchor and downstream positions positive, so that maps are
// comparable across features irrespective of strand or absolute location.
// Scores and lengths of datapoints sharing a position are averaged; the
// count value accumulates.
func (source *DatasetSource) CollectPositionMap(segment Segment, datasets string, opts Options, value MapValue) (map[int]float64, error) {
  datapoints, err := source.Fetch(segment, datasets)
  if err != nil {
    return nil, err
  }
  log2   := opts.log2scale(datasets)
  anchor := segment.AnchorPosition()

  sum   := make(map[int]float64)
  count := make(map[int]float64)

  for _, datapoint := range datapoints {
    if !KeepDatapoint(segment, opts.Strand, datapoint) {
      continue
    }
    // midpoint of the datapoint
    position := datapoint.From + (datapoint.Length()-1)/2
    relative := position - anchor
    if segment.Strand == StrandRev {
      relative = anchor - position
    }
    switch value {
    case MapCount:
      count[relative] += 1
    case MapLength:
      sum  [relative] += float64(datapoint.Length())
      count[relative] += 1
    default:
      v := datapoint.Value
      if log2 {
        v = math.Exp2(v)
      }
      sum  [relative] += v
      count[relative] += 1
    }
  }
  result := make(map[int]float64)

  for relative, c := range count {
    switch value {
    case MapCount:
      result[relative] = c
    case MapLength:
      result[relative] = sum[relative]/c
    default:
      v := sum[relative]/c
      if log2 {
        v = math.Log2(v)
      }
      result[relative] = v
    }
  }
  return result, nil
}
