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

/* -------------------------------------------------------------------------- */

// Storage backend a datapoint was fetched from. The kind is resolved once
// per datapoint at fetch time.
type DatapointKind int

const (
  InlineScore DatapointKind = iota
  ScaledSignalRef
  IndexedSignalRef
)

// One raw record overlapping a query segment. Value carries the numeric
// score; for signal file backends Path records the originating file.
type Datapoint struct {
  Range
  Strand Strand
  Kind   DatapointKind
  Value  float64
  Path   string
}

// A single position/value pair read from a signal file.
type SignalValue struct {
  Range
  Value float64
}

/* -------------------------------------------------------------------------- */

type StrandMode int

const (
  StrandSense StrandMode = iota
  StrandAntisense
  StrandAll
)

func ParseStrandMode(str string) (StrandMode, error) {
  switch str {
  case "sense":
    return StrandSense, nil
  case "antisense", "anti":
    return StrandAntisense, nil
  case "none", "all", "":
    return StrandAll, nil
  }
  return StrandAll, fmt.Errorf("invalid strand mode `%s'", str)
}

func (mode StrandMode) String() string {
  switch mode {
  case StrandSense    : return "sense"
  case StrandAntisense: return "antisense"
  }
  return "none"
}

/* -------------------------------------------------------------------------- */

// Decide whether a datapoint qualifies for the requested strand mode.
// Unstranded datapoints always qualify.
func KeepDatapoint(segment Segment, mode StrandMode, datapoint Datapoint) bool {
  if datapoint.Strand == StrandNone {
    return true
  }
  switch mode {
  case StrandSense:
    return datapoint.Strand == segment.Strand
  case StrandAntisense:
    return datapoint.Strand == segment.Strand.Opposite()
  }
  return true
}
