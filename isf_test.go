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

func TestIsfRoundTrip(t *testing.T) {

  dir, err := ioutil.TempDir("", "isf_test")
  if err != nil {
    t.Fatal(err)
  }
  defer os.RemoveAll(dir)

  filename  := filepath.Join(dir, "test.isf")
  positions := []int    {5,   10,  20,  1000, 1500}
  values    := []float64{0.5, 1.5, 2.5, 3.5,  4.5}

  if err := WriteIsfFile(filename, positions, values); err != nil {
    t.Fatal(err)
  }
  reader, closer, err := OpenIsfFile(filename)
  if err != nil {
    t.Fatal(err)
  }
  defer closer.Close()

  result, err := reader.Query(10, 1001)
  if err != nil {
    t.Fatal(err)
  }
  if len(result) != 3 {
    t.Error("TestIsfRoundTrip failed!")
  }
  // values are stored at native resolution without quantization loss
  expected := map[int]float64{10: 1.5, 20: 2.5, 1000: 3.5}
  for _, v := range result {
    if target, ok := expected[v.From]; !ok || v.Value != target {
      t.Error("TestIsfRoundTrip failed!")
    }
  }
  if result, _ := reader.Query(0, 5); len(result) != 0 {
    t.Error("TestIsfRoundTrip failed!")
  }
  if result, _ := reader.Query(1501, 2000); len(result) != 0 {
    t.Error("TestIsfRoundTrip failed!")
  }
}

// Force multiple blocks and query across a block boundary.
func TestIsfBlocks(t *testing.T) {

  dir, err := ioutil.TempDir("", "isf_test")
  if err != nil {
    t.Fatal(err)
  }
  defer os.RemoveAll(dir)

  filename := filepath.Join(dir, "test.isf")

  n := 2000
  positions := make([]int,     n)
  values    := make([]float64, n)
  for i := 0; i < n; i++ {
    positions[i] = 3*i
    values   [i] = float64(i)
  }
  if err := WriteIsfFile(filename, positions, values); err != nil {
    t.Fatal(err)
  }
  reader, closer, err := OpenIsfFile(filename)
  if err != nil {
    t.Fatal(err)
  }
  defer closer.Close()

  if len(reader.Index) < 2 {
    t.Error("TestIsfBlocks failed!")
  }
  // positions 3*500 ... 3*519 span the first block boundary at item 512
  result, err := reader.Query(1500, 1560)
  if err != nil {
    t.Fatal(err)
  }
  if len(result) != 20 {
    t.Error("TestIsfBlocks failed!")
  }
  for i, v := range result {
    if v.From != 1500+3*i || v.Value != float64(500+i) {
      t.Error("TestIsfBlocks failed!")
    }
  }
}

func TestIsfUnsorted(t *testing.T) {

  dir, err := ioutil.TempDir("", "isf_test")
  if err != nil {
    t.Fatal(err)
  }
  defer os.RemoveAll(dir)

  filename := filepath.Join(dir, "test.isf")

  if err := WriteIsfFile(filename, []int{10, 5}, []float64{1.0, 2.0}); err == nil {
    t.Error("TestIsfUnsorted failed!")
  }
}
