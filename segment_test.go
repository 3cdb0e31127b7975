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

import   "testing"

/* -------------------------------------------------------------------------- */

func testFeature(from, to int, strand Strand) Feature {
  return Feature{
    Name   : "geneA",
    Type   : "gene",
    Seqname: "chrI",
    Range  : NewRange(from, to),
    Strand : strand }
}

/* -------------------------------------------------------------------------- */

func TestResolveWholeFeature(t *testing.T) {

  segment, err := ResolveSegment(testFeature(1000, 2000, StrandFwd), Adjustment{})

  if err != nil {
    t.Error("TestResolveWholeFeature failed!")
  }
  if segment.From != 1000 || segment.To != 2000 || segment.Strand != StrandFwd {
    t.Error("TestResolveWholeFeature failed!")
  }
}

func TestResolveExtend(t *testing.T) {

  segment, err := ResolveSegment(testFeature(1000, 2000, StrandRev), Adjustment{Extend: 500})

  if err != nil {
    t.Error("TestResolveExtend failed!")
  }
  if segment.From != 500 || segment.To != 2500 || segment.Strand != StrandRev {
    t.Error("TestResolveExtend failed!")
  }
  // extension is clamped at the chromosome start
  segment, _ = ResolveSegment(testFeature(100, 300, StrandFwd), Adjustment{Extend: 500})

  if segment.From != 0 || segment.To != 800 {
    t.Error("TestResolveExtend failed!")
  }
}

func TestResolveOffsetsForward(t *testing.T) {

  adj := Adjustment{Start: -200, Stop: 100, HasOffsets: true, Anchor: Anchor5}

  segment, err := ResolveSegment(testFeature(1000, 2000, StrandFwd), adj)

  if err != nil {
    t.Error("TestResolveOffsetsForward failed!")
  }
  if segment.From != 800 || segment.To != 1100 {
    t.Error("TestResolveOffsetsForward failed!")
  }
  // 3' anchor on the forward strand is the last feature position
  adj = Adjustment{Start: 0, Stop: 500, HasOffsets: true, Anchor: Anchor3}

  segment, _ = ResolveSegment(testFeature(1000, 2000, StrandFwd), adj)

  if segment.From != 1999 || segment.To != 2499 {
    t.Error("TestResolveOffsetsForward failed!")
  }
}

// On the reverse strand a negative offset must still move upstream,
// which is the direction of increasing coordinates.
func TestResolveOffsetsReverse(t *testing.T) {

  adj := Adjustment{Start: -200, Stop: 100, HasOffsets: true, Anchor: Anchor5}

  segment, err := ResolveSegment(testFeature(1000, 2000, StrandRev), adj)

  if err != nil {
    t.Error("TestResolveOffsetsReverse failed!")
  }
  if segment.From != 1900 || segment.To != 2200 {
    t.Error("TestResolveOffsetsReverse failed!")
  }
  // 3' anchor on the reverse strand is the feature start
  adj = Adjustment{Start: 0, Stop: 100, HasOffsets: true, Anchor: Anchor3}

  segment, _ = ResolveSegment(testFeature(1000, 2000, StrandRev), adj)

  if segment.From != 901 || segment.To != 1001 {
    t.Error("TestResolveOffsetsReverse failed!")
  }
}

func TestResolveMidpoint(t *testing.T) {

  adj := Adjustment{Start: -100, Stop: 100, HasOffsets: true, Anchor: AnchorMid}

  segment, _ := ResolveSegment(testFeature(1000, 2000, StrandFwd), adj)

  if segment.From != 1400 || segment.To != 1600 {
    t.Error("TestResolveMidpoint failed!")
  }
  // the midpoint anchor ignores the strand, but offsets remain
  // strand-relative
  segment, _ = ResolveSegment(testFeature(1000, 2000, StrandRev), adj)

  if segment.From != 1401 || segment.To != 1601 {
    t.Error("TestResolveMidpoint failed!")
  }
}

func TestResolveFractionalGate(t *testing.T) {

  adj := Adjustment{FStart: 0.25, FStop: 0.75, HasFractions: true, Anchor: Anchor5}

  // feature is shorter than the limit, fall back to the whole extent
  segment, err := ResolveSegment(testFeature(0, 500, StrandFwd), adj)

  if err != nil {
    t.Error("TestResolveFractionalGate failed!")
  }
  if segment.From != 0 || segment.To != 500 {
    t.Error("TestResolveFractionalGate failed!")
  }
  // feature is long enough: a 1000 bp sub-interval starting 500 bp
  // downstream of the anchor
  segment, _ = ResolveSegment(testFeature(1000, 3000, StrandFwd), adj)

  if segment.From != 1500 || segment.To != 2500 {
    t.Error("TestResolveFractionalGate failed!")
  }
}

// Negative fractional offsets are explicit upstream offsets from the
// anchor, mirroring non-fractional start/stop offsets.
func TestResolveFractionalNegative(t *testing.T) {

  adj := Adjustment{FStart: -0.25, FStop: 0.0, HasFractions: true, Anchor: Anchor3}

  segment, err := ResolveSegment(testFeature(1000, 3000, StrandFwd), adj)

  if err != nil {
    t.Error("TestResolveFractionalNegative failed!")
  }
  if segment.From != 2499 || segment.To != 2999 {
    t.Error("TestResolveFractionalNegative failed!")
  }
  segment, _ = ResolveSegment(testFeature(1000, 3000, StrandRev), adj)

  if segment.From != 1001 || segment.To != 1501 {
    t.Error("TestResolveFractionalNegative failed!")
  }
}

func TestResolveExclusiveModes(t *testing.T) {

  adj := Adjustment{Extend: 100, HasOffsets: true}

  if _, err := ResolveSegment(testFeature(1000, 2000, StrandFwd), adj); err == nil {
    t.Error("TestResolveExclusiveModes failed!")
  }
}
