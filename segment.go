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
import "os"

/* -------------------------------------------------------------------------- */

// Concrete genomic interval used for a single query.
type Segment struct {
  Seqname string
  Range
  Strand  Strand
}

func NewSegment(seqname string, from, to int, strand Strand) Segment {
  return Segment{seqname, NewRange(from, to), strand}
}

func (segment Segment) String() string {
  return fmt.Sprintf("%s:%d-%d %c", segment.Seqname, segment.From, segment.To, segment.Strand.Byte())
}

/* -------------------------------------------------------------------------- */

type Anchor int

const (
  Anchor5 Anchor = iota
  Anchor3
  AnchorMid
)

func ParseAnchor(str string) (Anchor, error) {
  switch str {
  case "5", "5p", "":
    return Anchor5, nil
  case "3", "3p":
    return Anchor3, nil
  case "m", "mid", "middle":
    return AnchorMid, nil
  }
  return Anchor5, fmt.Errorf("invalid anchor `%s'", str)
}

/* -------------------------------------------------------------------------- */

// Features shorter than this are scored over their full extent when
// fractional offsets are requested.
const DefaultFractionLimit = 1000

// Declarative adjustment turning a feature into a query segment. The three
// modes (extension, absolute offsets, fractional offsets) are mutually
// exclusive; if none is set the segment covers the whole feature. Offsets
// are strand-relative: negative values move upstream, positive values
// downstream, regardless of the physical strand.
type Adjustment struct {
  Extend        int
  Start, Stop   int
  HasOffsets    bool
  FStart, FStop float64
  HasFractions  bool
  Anchor        Anchor
  FractionLimit int
}

func (adj Adjustment) check() error {
  n := 0
  if adj.Extend != 0    { n++ }
  if adj.HasOffsets     { n++ }
  if adj.HasFractions   { n++ }
  if n > 1 {
    return fmt.Errorf("adjustment modes are mutually exclusive")
  }
  return nil
}

/* -------------------------------------------------------------------------- */

// Chromosomal coordinate of the anchor. The midpoint anchor ignores the
// strand; for the 5' and 3' anchors the coordinate depends on the feature
// orientation. Features without strand information are treated as forward.
func anchorPosition(feature Feature, anchor Anchor) int {
  switch anchor {
  case AnchorMid:
    return feature.From + feature.Length()/2
  case Anchor3:
    if feature.Strand == StrandRev {
      return feature.From
    }
    return feature.To - 1
  default:
    if feature.Strand == StrandRev {
      return feature.To - 1
    }
    return feature.From
  }
}

// Translate strand-relative offsets at the anchor position into an
// absolute half-open interval.
func offsetRange(anchor int, start, stop int, strand Strand) Range {
  var from, to int
  if strand == StrandRev {
    from = anchor - stop  + 1
    to   = anchor - start + 1
  } else {
    from = anchor + start
    to   = anchor + stop
  }
  if from > to {
    from, to = to, from
  }
  if from < 0 {
    from = 0
  }
  if to < 0 {
    to = 0
  }
  return NewRange(from, to)
}

/* -------------------------------------------------------------------------- */

// Compute the query segment for a feature under the given adjustment.
func ResolveSegment(feature Feature, adj Adjustment) (Segment, error) {
  if err := adj.check(); err != nil {
    return Segment{}, err
  }
  segment := Segment{feature.Seqname, feature.Range, feature.Strand}

  switch {
  case adj.Extend != 0:
    from := feature.From - adj.Extend
    to   := feature.To   + adj.Extend
    if from < 0 {
      from = 0
    }
    if to < from {
      to = from
    }
    segment.Range = NewRange(from, to)

  case adj.HasOffsets:
    anchor := anchorPosition(feature, adj.Anchor)
    segment.Range = offsetRange(anchor, adj.Start, adj.Stop, feature.Strand)

  case adj.HasFractions:
    limit := adj.FractionLimit
    if limit == 0 {
      limit = DefaultFractionLimit
    }
    // fall back to the whole feature if it is too short
    if feature.Length() < limit {
      break
    }
    length := float64(feature.Length())
    start  := int(math.Round(adj.FStart*length))
    stop   := int(math.Round(adj.FStop *length))
    anchor := anchorPosition(feature, adj.Anchor)
    segment.Range = offsetRange(anchor, start, stop, feature.Strand)
  }
  return segment, nil
}

// Resolve a named feature to a query segment. If the name matches more
// than one database record a warning is printed and the first match is
// used. An error is returned only if no feature matches.
func (set *FeatureSet) ResolveSegment(name string, types []string, adj Adjustment) (Segment, Feature, error) {
  matches := set.Find(name, types)
  if len(matches) == 0 {
    return Segment{}, Feature{}, fmt.Errorf("feature `%s' not found", name)
  }
  if len(matches) > 1 {
    fmt.Fprintf(os.Stderr, "ResolveSegment(): feature `%s' matches %d records, using first\n",
      name, len(matches))
  }
  feature := set.Features[matches[0]]
  segment, err := ResolveSegment(feature, adj)
  if err != nil {
    return Segment{}, Feature{}, err
  }
  return segment, feature, nil
}
