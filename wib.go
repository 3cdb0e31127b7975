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

import "encoding/binary"
import "fmt"
import "io"
import "math"
import "os"

/* -------------------------------------------------------------------------- */

// Scaled binary signal files store one chromosome of fixed-step data as
// byte-scaled values. Each byte maps linearly onto [Min, Max]; a zero
// byte marks a missing value.

const WIB_MAGIC = 0x57494201

type WibHeader struct {
  Magic   uint32
  Version uint32
  Start   int64
  Step    int64
  Span    int64
  Min     float64
  Max     float64
  N       int64
}

const wibHeaderSize = 56

/* -------------------------------------------------------------------------- */

type WibReader struct {
  Header WibHeader
  reader io.ReadSeeker
}

func NewWibReader(reader io.ReadSeeker) (*WibReader, error) {
  wib := WibReader{}
  if _, err := reader.Seek(0, io.SeekStart); err != nil {
    return nil, err
  }
  if err := binary.Read(reader, binary.LittleEndian, &wib.Header); err != nil {
    return nil, err
  }
  if wib.Header.Magic != WIB_MAGIC {
    return nil, fmt.Errorf("not a scaled signal file")
  }
  if wib.Header.Step <= 0 || wib.Header.Span <= 0 {
    return nil, fmt.Errorf("invalid step or span")
  }
  wib.reader = reader
  return &wib, nil
}

func OpenWibFile(filename string) (*WibReader, io.Closer, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, nil, err
  }
  reader, err := NewWibReader(f)
  if err != nil {
    f.Close()
    return nil, nil, err
  }
  return reader, f, nil
}

/* -------------------------------------------------------------------------- */

// Declared bounds of the file, i.e. the interval covered by the first and
// last value.
func (wib *WibReader) Bounds() Range {
  from := int(wib.Header.Start)
  to   := int(wib.Header.Start + (wib.Header.N-1)*wib.Header.Step + wib.Header.Span)
  if wib.Header.N == 0 {
    to = from
  }
  return NewRange(from, to)
}

func (wib *WibReader) decode(b byte) float64 {
  if wib.Header.Max == wib.Header.Min {
    return wib.Header.Min
  }
  return wib.Header.Min + float64(b-1)/254.0*(wib.Header.Max-wib.Header.Min)
}

// Read all values overlapping the interval [from, to). The query is
// clipped to the declared bounds of the file; a query entirely outside
// those bounds yields no values.
func (wib *WibReader) Query(from, to int) ([]SignalValue, error) {
  start := int(wib.Header.Start)
  step  := int(wib.Header.Step)
  span  := int(wib.Header.Span)
  n     := int(wib.Header.N)

  if from < start {
    from = start
  }
  if to > start + (n-1)*step + span {
    to = start + (n-1)*step + span
  }
  if n == 0 || from >= to {
    return nil, nil
  }
  // index of the first value whose span might reach the query
  i0 := divIntDown(from - start - span + step, step)
  if i0 < 0 {
    i0 = 0
  }
  // index past the last overlapping value
  i1 := divIntUp(to - start, step)
  if i1 > n {
    i1 = n
  }
  if i0 >= i1 {
    return nil, nil
  }
  if _, err := wib.reader.Seek(int64(wibHeaderSize + i0), io.SeekStart); err != nil {
    return nil, err
  }
  buffer := make([]byte, i1-i0)
  if _, err := io.ReadFull(wib.reader, buffer); err != nil {
    return nil, err
  }
  result := []SignalValue{}
  for i := i0; i < i1; i++ {
    if buffer[i-i0] == 0 {
      // missing value
      continue
    }
    p := start + i*step
    if p + span <= from || p >= to {
      continue
    }
    result = append(result, SignalValue{NewRange(p, p+span), wib.decode(buffer[i-i0])})
  }
  return result, nil
}

/* -------------------------------------------------------------------------- */

// Write a scaled signal file covering positions start, start+step, ...
// with the given span. NaN values are recorded as missing.
func WriteWibFile(filename string, start, step, span int, values []float64) error {
  if step <= 0 || span <= 0 {
    return fmt.Errorf("invalid step or span")
  }
  min := math.Inf( 1)
  max := math.Inf(-1)
  for _, v := range values {
    if math.IsNaN(v) {
      continue
    }
    if v < min { min = v }
    if v > max { max = v }
  }
  if min > max {
    // no finite values
    min, max = 0, 0
  }
  header := WibHeader{
    Magic  : WIB_MAGIC,
    Version: 1,
    Start  : int64(start),
    Step   : int64(step),
    Span   : int64(span),
    Min    : min,
    Max    : max,
    N      : int64(len(values)) }

  f, err := os.Create(filename)
  if err != nil {
    return err
  }
  defer f.Close()

  if err := binary.Write(f, binary.LittleEndian, header); err != nil {
    return err
  }
  buffer := make([]byte, len(values))
  for i, v := range values {
    if math.IsNaN(v) {
      buffer[i] = 0
      continue
    }
    if max == min {
      buffer[i] = 1
      continue
    }
    buffer[i] = byte(1 + math.Round((v-min)/(max-min)*254.0))
  }
  if _, err := f.Write(buffer); err != nil {
    return err
  }
  return nil
}
