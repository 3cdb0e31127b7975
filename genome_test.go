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

func TestReadGenome(t *testing.T) {

  dir, err := ioutil.TempDir("", "genome_test")
  if err != nil {
    t.Fatal(err)
  }
  defer os.RemoveAll(dir)

  filename := filepath.Join(dir, "genome.txt")
  content  := "chrI  230218\nchrII 813184\n"

  if err := ioutil.WriteFile(filename, []byte(content), 0666); err != nil {
    t.Fatal(err)
  }
  genome, err := ReadGenome(filename)
  if err != nil {
    t.Fatal(err)
  }
  if genome.Length() != 2 {
    t.Error("TestReadGenome failed!")
  }
  if length, err := genome.SeqLength("chrII"); err != nil || length != 813184 {
    t.Error("TestReadGenome failed!")
  }
  if _, err := genome.SeqLength("chrM"); err == nil {
    t.Error("TestReadGenome failed!")
  }
}

func TestCheckWindows(t *testing.T) {

  genome := NewGenome([]string{"chrI"}, []int{10000})

  granges := NewGRanges([]string{"chrI"}, []int{1000}, []int{2000}, nil)
  if err := genome.CheckWindows(granges); err != nil {
    t.Error("TestCheckWindows failed!")
  }
  granges = NewGRanges([]string{"chrI"}, []int{9000}, []int{11000}, nil)
  if err := genome.CheckWindows(granges); err == nil {
    t.Error("TestCheckWindows failed!")
  }
  granges = NewGRanges([]string{"chrX"}, []int{0}, []int{100}, nil)
  if err := genome.CheckWindows(granges); err == nil {
    t.Error("TestCheckWindows failed!")
  }
}
