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
import "io"
import "os"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Table of genomic windows with optional named meta columns. Collectors
// append one score column per dataset.
type GRanges struct {
  Seqnames []string
  Ranges   []Range
  Strand   []Strand
  MetaName []string
  MetaData []interface{}
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewGRanges(seqnames []string, from, to []int, strand []Strand) GRanges {
  n := len(seqnames)
  if len(from) != n || len(to) != n ||
    (len(strand) != 0 && len(strand) != n) {
    panic("NewGRanges(): invalid arguments!")
  }
  if len(strand) == 0 {
    strand = make([]Strand, n)
  }
  ranges := make([]Range, n)
  for i := 0; i < n; i++ {
    ranges[i] = NewRange(from[i], to[i])
  }
  return GRanges{seqnames, ranges, strand, nil, nil}
}

/* -------------------------------------------------------------------------- */

func (granges *GRanges) Length() int {
  return len(granges.Ranges)
}

// Query segment for row i.
func (granges *GRanges) Row(i int) Segment {
  return Segment{granges.Seqnames[i], granges.Ranges[i], granges.Strand[i]}
}

/* meta columns
 * -------------------------------------------------------------------------- */

// Add a meta column. Supported column types are []string, []int,
// []float64, and []Score. An existing column of the same name is
// replaced.
func (granges *GRanges) AddMeta(name string, data interface{}) {
  switch v := data.(type) {
  case []string : if len(v) != granges.Length() { panic("AddMeta(): invalid column length") }
  case []int    : if len(v) != granges.Length() { panic("AddMeta(): invalid column length") }
  case []float64: if len(v) != granges.Length() { panic("AddMeta(): invalid column length") }
  case []Score  : if len(v) != granges.Length() { panic("AddMeta(): invalid column length") }
  default:
    panic("AddMeta(): invalid column type")
  }
  for i, metaName := range granges.MetaName {
    if metaName == name {
      granges.MetaData[i] = data
      return
    }
  }
  granges.MetaName = append(granges.MetaName, name)
  granges.MetaData = append(granges.MetaData, data)
}

func (granges *GRanges) GetMeta(name string) interface{} {
  for i, metaName := range granges.MetaName {
    if metaName == name {
      return granges.MetaData[i]
    }
  }
  return nil
}

func (granges *GRanges) GetMetaStr(name string) []string {
  if v, ok := granges.GetMeta(name).([]string); ok {
    return v
  }
  return nil
}

func (granges *GRanges) GetMetaScores(name string) []Score {
  if v, ok := granges.GetMeta(name).([]Score); ok {
    return v
  }
  return nil
}

func (granges *GRanges) MetaLength() int {
  return len(granges.MetaName)
}

/* i/o
 * -------------------------------------------------------------------------- */

// Import windows from a whitespace separated table. The header line must
// start with the columns seqnames, from, to, and strand; any further
// columns are imported as string meta columns.
func ReadGRangesTable(filename string) (GRanges, error) {
  granges := GRanges{}

  var scanner *bufio.Scanner

  f, err := os.Open(filename)
  if err != nil {
    return granges, err
  }
  defer f.Close()
  // check if file is gzipped
  if isGzip(filename) {
    g, err := gzip.NewReader(f)
    if err != nil {
      return granges, err
    }
    defer g.Close()
    scanner = bufio.NewScanner(g)
  } else {
    scanner = bufio.NewScanner(f)
  }
  metaNames := []string{}
  metaData  := [][]string{}

  // scan header
  if scanner.Scan() {
    fields := strings.Fields(scanner.Text())
    if len(fields) < 4 ||
       fields[0] != "seqnames" || fields[1] != "from" ||
       fields[2] != "to"       || fields[3] != "strand" {
      return granges, errors.New("invalid table header")
    }
    metaNames = fields[4:]
    metaData  = make([][]string, len(metaNames))
  }
  for scanner.Scan() {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 {
      continue
    }
    if len(fields) < 4+len(metaNames) {
      return granges, errors.New("invalid table row")
    }
    v1, err := strconv.ParseInt(fields[1], 10, 64)
    if err != nil {
      return granges, err
    }
    v2, err := strconv.ParseInt(fields[2], 10, 64)
    if err != nil {
      return granges, err
    }
    strand, err := ParseStrand(fields[3])
    if err != nil {
      return granges, err
    }
    granges.Seqnames = append(granges.Seqnames, fields[0])
    granges.Ranges   = append(granges.Ranges,   NewRange(int(v1), int(v2)))
    granges.Strand   = append(granges.Strand,   strand)

    for j := range metaNames {
      metaData[j] = append(metaData[j], fields[4+j])
    }
  }
  for j, name := range metaNames {
    granges.AddMeta(name, metaData[j])
  }
  return granges, nil
}

func (granges *GRanges) writeMetaCell(w io.Writer, j, i int) {
  switch v := granges.MetaData[j].(type) {
  case []string : fmt.Fprintf(w, " %12s", v[i])
  case []int    : fmt.Fprintf(w, " %12d", v[i])
  case []float64: fmt.Fprintf(w, " %12f", v[i])
  case []Score  : fmt.Fprintf(w, " %12s", v[i].String())
  }
}

func (granges *GRanges) WriteTable(writer io.Writer, header bool) error {
  w := bufio.NewWriter(writer)
  defer w.Flush()

  if header {
    fmt.Fprintf(w, "%10s %10s %10s %6s", "seqnames", "from", "to", "strand")
    for _, name := range granges.MetaName {
      fmt.Fprintf(w, " %12s", name)
    }
    w.WriteString("\n")
  }
  for i := 0; i < granges.Length(); i++ {
    fmt.Fprintf(w,  "%10s", granges.Seqnames[i])
    fmt.Fprintf(w, " %10d", granges.Ranges[i].From)
    fmt.Fprintf(w, " %10d", granges.Ranges[i].To)
    fmt.Fprintf(w, " %6c",  granges.Strand[i].Byte())
    for j := 0; j < granges.MetaLength(); j++ {
      granges.writeMetaCell(w, j, i)
    }
    w.WriteString("\n")
  }
  return nil
}

// Export the table to a file. The first line contains the header of
// the table.
func (granges *GRanges) ExportTable(filename string, header bool) error {
  f, err := os.Create(filename)
  if err != nil {
    return err
  }
  defer f.Close()

  return granges.WriteTable(f, header)
}
