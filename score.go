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
import "sort"

/* -------------------------------------------------------------------------- */

// A Score is the result of summarizing the datapoints overlapping one
// genomic segment. A null score marks the absence of data, which is
// distinct from a numeric value of zero.
type Score struct {
  Value float64
  Valid bool
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewScore(value float64) Score {
  return Score{value, true}
}

func NullScore() Score {
  return Score{math.NaN(), false}
}

/* -------------------------------------------------------------------------- */

func (score Score) IsNull() bool {
  return !score.Valid
}

func (score Score) String() string {
  if !score.Valid {
    return "."
  }
  return fmt.Sprintf("%f", score.Value)
}

/* -------------------------------------------------------------------------- */

type CombinationMethod int

const (
  MethodCount CombinationMethod = iota
  MethodMean
  MethodMedian
  MethodMin
  MethodMax
  MethodRange
  MethodStddev
)

func ParseCombinationMethod(str string) (CombinationMethod, error) {
  switch str {
  case "count" : return MethodCount,  nil
  case "mean"  : return MethodMean,   nil
  case "median": return MethodMedian, nil
  case "min"   : return MethodMin,    nil
  case "max"   : return MethodMax,    nil
  case "range" : return MethodRange,  nil
  case "stddev": return MethodStddev, nil
  }
  return MethodCount, fmt.Errorf("invalid combination method `%s'", str)
}

func (method CombinationMethod) String() string {
  switch method {
  case MethodCount : return "count"
  case MethodMean  : return "mean"
  case MethodMedian: return "median"
  case MethodMin   : return "min"
  case MethodMax   : return "max"
  case MethodRange : return "range"
  case MethodStddev: return "stddev"
  }
  panic("internal error")
}

/* summary statistics
 * -------------------------------------------------------------------------- */

func summarizeMean(values []float64) float64 {
  sum := 0.0
  for _, v := range values {
    sum += v
  }
  return sum/float64(len(values))
}

func summarizeMedian(values []float64) float64 {
  tmp := make([]float64, len(values))
  copy(tmp, values)
  sort.Float64s(tmp)
  n := len(tmp)
  if n % 2 == 1 {
    return tmp[n/2]
  }
  return (tmp[n/2-1] + tmp[n/2])/2.0
}

func summarizeMin(values []float64) float64 {
  min := values[0]
  for _, v := range values {
    if v < min {
      min = v
    }
  }
  return min
}

func summarizeMax(values []float64) float64 {
  max := values[0]
  for _, v := range values {
    if v > max {
      max = v
    }
  }
  return max
}

func summarizeStddev(values []float64) float64 {
  mean := summarizeMean(values)
  sum  := 0.0
  for _, v := range values {
    sum += (v-mean)*(v-mean)
  }
  // population standard deviation
  return math.Sqrt(sum/float64(len(values)))
}

/* -------------------------------------------------------------------------- */

// Combine a set of values into a single score. The count method returns
// the number of values, which may be zero. All other methods return a
// null score if no values are given. If log2scale is true, values are
// assumed to be log2-transformed: they are exponentiated before folding
// and the result is logged again, so that the arithmetic is carried out
// in linear space.
func Combine(values []float64, method CombinationMethod, log2scale bool) Score {
  if method == MethodCount {
    return NewScore(float64(len(values)))
  }
  if len(values) == 0 {
    return NullScore()
  }
  if log2scale {
    tmp := make([]float64, len(values))
    for i, v := range values {
      tmp[i] = math.Exp2(v)
    }
    values = tmp
  }
  result := 0.0
  switch method {
  case MethodMean:
    result = summarizeMean(values)
  case MethodMedian:
    result = summarizeMedian(values)
  case MethodMin:
    result = summarizeMin(values)
  case MethodMax:
    result = summarizeMax(values)
  case MethodRange:
    result = summarizeMax(values) - summarizeMin(values)
  case MethodStddev:
    result = summarizeStddev(values)
  default:
    panic("internal error")
  }
  if log2scale {
    result = math.Log2(result)
  }
  return NewScore(result)
}
