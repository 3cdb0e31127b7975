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
import   "math"
import   "os"
import   "path/filepath"
import   "testing"

/* -------------------------------------------------------------------------- */

func writeTestWib(t *testing.T) (string, func()) {
  dir, err := ioutil.TempDir("", "wib_test")
  if err != nil {
    t.Fatal(err)
  }
  filename := filepath.Join(dir, "test.wib")
  // values cover positions [100, 150) at a step of 10
  values := []float64{1.0, 2.0, math.NaN(), 4.0, 5.0}

  if err := WriteWibFile(filename, 100, 10, 10, values); err != nil {
    t.Fatal(err)
  }
  return filename, func() { os.RemoveAll(dir) }
}

/* -------------------------------------------------------------------------- */

func TestWibRoundTrip(t *testing.T) {

  filename, cleanup := writeTestWib(t)
  defer cleanup()

  reader, closer, err := OpenWibFile(filename)
  if err != nil {
    t.Fatal(err)
  }
  defer closer.Close()

  if bounds := reader.Bounds(); bounds.From != 100 || bounds.To != 150 {
    t.Error("TestWibRoundTrip failed!")
  }
  values, err := reader.Query(100, 150)
  if err != nil {
    t.Fatal(err)
  }
  // the missing value must be dropped
  if len(values) != 4 {
    t.Error("TestWibRoundTrip failed!")
  }
  expected := map[int]float64{100: 1.0, 110: 2.0, 130: 4.0, 140: 5.0}
  for _, v := range values {
    target, ok := expected[v.From]
    if !ok {
      t.Error("TestWibRoundTrip failed!")
      continue
    }
    // values are byte-scaled, allow for quantization error
    if math.Abs(v.Value - target) > 0.01 {
      t.Error("TestWibRoundTrip failed!")
    }
  }
}

func TestWibClipping(t *testing.T) {

  filename, cleanup := writeTestWib(t)
  defer cleanup()

  reader, closer, err := OpenWibFile(filename)
  if err != nil {
    t.Fatal(err)
  }
  defer closer.Close()

  // query bounds are clipped to the declared bounds of the file
  values, err := reader.Query(145, 500)
  if err != nil {
    t.Fatal(err)
  }
  if len(values) != 1 || values[0].From != 140 {
    t.Error("TestWibClipping failed!")
  }
  // a query entirely outside the declared bounds yields no values
  values, err = reader.Query(0, 50)
  if err != nil {
    t.Fatal(err)
  }
  if len(values) != 0 {
    t.Error("TestWibClipping failed!")
  }
  values, err = reader.Query(150, 200)
  if err != nil {
    t.Fatal(err)
  }
  if len(values) != 0 {
    t.Error("TestWibClipping failed!")
  }
}

func TestWibPartialOverlap(t *testing.T) {

  filename, cleanup := writeTestWib(t)
  defer cleanup()

  reader, closer, err := OpenWibFile(filename)
  if err != nil {
    t.Fatal(err)
  }
  defer closer.Close()

  // [120, 130) is missing, only [130, 140) overlaps the query
  values, err := reader.Query(125, 135)
  if err != nil {
    t.Fatal(err)
  }
  if len(values) != 1 || values[0].From != 130 {
    t.Error("TestWibPartialOverlap failed!")
  }
  if math.Abs(values[0].Value - 4.0) > 0.01 {
    t.Error("TestWibPartialOverlap failed!")
  }
}
