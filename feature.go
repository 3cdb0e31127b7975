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

import "bufio"
import "compress/gzip"
import "errors"
import "fmt"
import "math"
import "os"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// A single annotated feature. Features either carry their own score, or,
// for signal datasets, one feature per chromosome tags the path of an
// auxiliary signal file in which case File is non-empty and Score is
// ignored.
type Feature struct {
  Name    string
  Type    string
  Seqname string
  Range
  Strand  Strand
  Score   float64
  File    string
}

/* -------------------------------------------------------------------------- */

type typeSeqKey struct {
  ftype   string
  seqname string
}

// In-memory feature table with a name index for feature lookups and
// per-type, per-chromosome buckets for overlap queries.
type FeatureSet struct {
  Features []Feature
  nameIdx  map[string][]int
  typeIdx  map[string][]int
  bucket   map[typeSeqKey][]int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewFeatureSet(features []Feature) *FeatureSet {
  set := FeatureSet{}
  set.nameIdx = make(map[string][]int)
  set.typeIdx = make(map[string][]int)
  set.bucket  = make(map[typeSeqKey][]int)
  for _, feature := range features {
    set.Add(feature)
  }
  return &set
}

func (set *FeatureSet) Add(feature Feature) {
  i := len(set.Features)
  k := typeSeqKey{feature.Type, feature.Seqname}
  set.Features = append(set.Features, feature)
  set.nameIdx[feature.Name] = append(set.nameIdx[feature.Name], i)
  set.typeIdx[feature.Type] = append(set.typeIdx[feature.Type], i)
  set.bucket [k]            = append(set.bucket [k],            i)
}

/* -------------------------------------------------------------------------- */

func (set *FeatureSet) Length() int {
  return len(set.Features)
}

func (set *FeatureSet) HasType(ftype string) bool {
  _, ok := set.typeIdx[ftype]
  return ok
}

// Indices of all features with the given name whose type is listed
// in [types]. If [types] is empty the type is not restricted.
func (set *FeatureSet) Find(name string, types []string) []int {
  result := []int{}
  for _, i := range set.nameIdx[name] {
    if len(types) == 0 {
      result = append(result, i)
      continue
    }
    for _, t := range types {
      if set.Features[i].Type == t {
        result = append(result, i)
        break
      }
    }
  }
  return result
}

// Indices of all features of the given types overlapping the query range.
func (set *FeatureSet) Overlapping(types []string, seqname string, r Range) []int {
  result := []int{}
  for _, t := range types {
    for _, i := range set.bucket[typeSeqKey{t, seqname}] {
      if set.Features[i].Range.Overlaps(r) {
        result = append(result, i)
      }
    }
  }
  return result
}

/* i/o
 * -------------------------------------------------------------------------- */

func parseFeatureRow(fields []string) (Feature, []string, error) {
  feature := Feature{}
  if len(fields) < 7 {
    return feature, nil, errors.New("invalid feature table")
  }
  from, err := strconv.ParseInt(fields[3], 10, 64)
  if err != nil {
    return feature, nil, err
  }
  to, err := strconv.ParseInt(fields[4], 10, 64)
  if err != nil {
    return feature, nil, err
  }
  strand, err := ParseStrand(fields[5])
  if err != nil {
    return feature, nil, err
  }
  score := math.NaN()
  if fields[6] != "." {
    if score, err = strconv.ParseFloat(fields[6], 64); err != nil {
      return feature, nil, err
    }
  }
  file := ""
  if len(fields) >= 8 && fields[7] != "." {
    file = fields[7]
  }
  tags := []string{}
  if len(fields) >= 9 && fields[8] != "." {
    tags = strings.Split(fields[8], ",")
  }
  feature.Name    = fields[0]
  feature.Type    = fields[1]
  feature.Seqname = fields[2]
  feature.Range   = NewRange(int(from), int(to))
  feature.Strand  = strand
  feature.Score   = score
  feature.File    = file

  return feature, tags, nil
}

// Import features from a whitespace separated table with columns: name,
// type, seqname, from, to, strand, score, and optionally file and tags.
// Missing values are marked with a dot. Rows carrying one of the tags
// listed in [exclude] are dropped.
func ReadFeatureTable(filename string, exclude []string) (*FeatureSet, error) {
  var scanner *bufio.Scanner

  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()
  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return nil, err
    }
    defer g.Close()
    scanner = bufio.NewScanner(g)
  } else {
    scanner = bufio.NewScanner(f)
  }
  excluded := make(map[string]bool)
  for _, tag := range exclude {
    excluded[tag] = true
  }
  set := NewFeatureSet(nil)

  // scan header
  if scanner.Scan() {
    fields := strings.Fields(scanner.Text())
    if len(fields) < 7 || fields[0] != "name" {
      return nil, errors.New("invalid feature table header")
    }
  }
  for scanner.Scan() {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    feature, tags, err := parseFeatureRow(fields)
    if err != nil {
      return nil, err
    }
    drop := false
    for _, tag := range tags {
      if excluded[tag] {
        drop = true
        break
      }
    }
    if drop {
      continue
    }
    set.Add(feature)
  }
  return set, nil
}

/* convert to string
 * -------------------------------------------------------------------------- */

func (feature Feature) String() string {
  return fmt.Sprintf("%s %s %s:%d-%d %c",
    feature.Name, feature.Type, feature.Seqname,
    feature.From, feature.To, feature.Strand.Byte())
}
