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

import   "io/ioutil"
import   "os"
import   "path/filepath"
import   "testing"

/* -------------------------------------------------------------------------- */

func TestReadGRangesTable(t *testing.T) {

  dir, err := ioutil.TempDir("", "granges_test")
  if err != nil {
    t.Fatal(err)
  }
  defer os.RemoveAll(dir)

  filename := filepath.Join(dir, "windows.table")
  content  := `seqnames from to strand label
chrI  1000 2000 + w1
chrI  2500 3500 . w2
chrII  100  200 - w3
`
  if err := ioutil.WriteFile(filename, []byte(content), 0666); err != nil {
    t.Fatal(err)
  }
  granges, err := ReadGRangesTable(filename)
  if err != nil {
    t.Fatal(err)
  }
  if granges.Length() != 3 {
    t.Error("TestReadGRangesTable failed!")
  }
  row := granges.Row(1)
  if row.Seqname != "chrI" || row.From != 2500 || row.To != 3500 || row.Strand != StrandNone {
    t.Error("TestReadGRangesTable failed!")
  }
  // extra columns are imported as string meta columns
  labels := granges.GetMetaStr("label")
  if len(labels) != 3 || labels[2] != "w3" {
    t.Error("TestReadGRangesTable failed!")
  }
}

func TestGRangesExportImport(t *testing.T) {

  dir, err := ioutil.TempDir("", "granges_test")
  if err != nil {
    t.Fatal(err)
  }
  defer os.RemoveAll(dir)

  filename := filepath.Join(dir, "windows.table")

  granges := NewGRanges(
    []string{"chrI", "chrII"},
    []int   {1000, 100},
    []int   {2000, 200},
    []Strand{StrandFwd, StrandRev})
  granges.AddMeta("label", []string{"w1", "w2"})

  if err := granges.ExportTable(filename, true); err != nil {
    t.Fatal(err)
  }
  imported, err := ReadGRangesTable(filename)
  if err != nil {
    t.Fatal(err)
  }
  if imported.Length() != 2 {
    t.Error("TestGRangesExportImport failed!")
  }
  for i := 0; i < 2; i++ {
    if imported.Row(i) != granges.Row(i) {
      t.Error("TestGRangesExportImport failed!")
    }
  }
  if labels := imported.GetMetaStr("label"); len(labels) != 2 || labels[0] != "w1" {
    t.Error("TestGRangesExportImport failed!")
  }
}

func TestGRangesAddMeta(t *testing.T) {

  granges := NewGRanges(
    []string{"chrI"}, []int{0}, []int{100}, nil)

  granges.AddMeta("score", []Score{NewScore(1.0)})
  granges.AddMeta("score", []Score{NullScore()})

  // a column of the same name is replaced, not appended
  if granges.MetaLength() != 1 {
    t.Error("TestGRangesAddMeta failed!")
  }
  if scores := granges.GetMetaScores("score"); !scores[0].IsNull() {
    t.Error("TestGRangesAddMeta failed!")
  }
}
