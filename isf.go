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

import "bytes"
import "compress/zlib"
import "encoding/binary"
import "fmt"
import "io"
import "io/ioutil"
import "os"
import "sort"

/* -------------------------------------------------------------------------- */

// Indexed binary signal files store one chromosome of sparse, native
// resolution (position, value) pairs. The pairs are grouped into
// zlib-compressed blocks; a sorted block index at the end of the file
// allows random access interval queries without quantization loss.

const ISF_MAGIC = 0x49534601

type IsfHeader struct {
  Magic       uint32
  Version     uint32
  NBlocks     int64
  IndexOffset int64
}

type IsfIndexEntry struct {
  From   int64
  To     int64
  Offset int64
  Size   int64
}

type IsfPair struct {
  Position int64
  Value    float64
}

const isfItemsPerSlot = 512

/* -------------------------------------------------------------------------- */

type IsfReader struct {
  Header IsfHeader
  Index  []IsfIndexEntry
  reader io.ReadSeeker
}

func NewIsfReader(reader io.ReadSeeker) (*IsfReader, error) {
  isf := IsfReader{}
  if _, err := reader.Seek(0, io.SeekStart); err != nil {
    return nil, err
  }
  if err := binary.Read(reader, binary.LittleEndian, &isf.Header); err != nil {
    return nil, err
  }
  if isf.Header.Magic != ISF_MAGIC {
    return nil, fmt.Errorf("not an indexed signal file")
  }
  // read block index
  if _, err := reader.Seek(isf.Header.IndexOffset, io.SeekStart); err != nil {
    return nil, err
  }
  isf.Index = make([]IsfIndexEntry, isf.Header.NBlocks)
  if err := binary.Read(reader, binary.LittleEndian, isf.Index); err != nil {
    return nil, err
  }
  isf.reader = reader
  return &isf, nil
}

func OpenIsfFile(filename string) (*IsfReader, io.Closer, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, nil, err
  }
  reader, err := NewIsfReader(f)
  if err != nil {
    f.Close()
    return nil, nil, err
  }
  return reader, f, nil
}

/* -------------------------------------------------------------------------- */

func (isf *IsfReader) readBlock(entry IsfIndexEntry) ([]IsfPair, error) {
  if _, err := isf.reader.Seek(entry.Offset, io.SeekStart); err != nil {
    return nil, err
  }
  buffer := make([]byte, entry.Size)
  if _, err := io.ReadFull(isf.reader, buffer); err != nil {
    return nil, err
  }
  z, err := zlib.NewReader(bytes.NewReader(buffer))
  if err != nil {
    return nil, err
  }
  defer z.Close()

  data, err := ioutil.ReadAll(z)
  if err != nil {
    return nil, err
  }
  if len(data) % 16 != 0 {
    return nil, fmt.Errorf("corrupted block")
  }
  pairs := make([]IsfPair, len(data)/16)
  if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, pairs); err != nil {
    return nil, err
  }
  return pairs, nil
}

// Read all (position, value) pairs in the interval [from, to).
func (isf *IsfReader) Query(from, to int) ([]SignalValue, error) {
  result := []SignalValue{}
  // locate the first block that might overlap the query
  i := sort.Search(len(isf.Index), func(i int) bool {
    return isf.Index[i].To > int64(from)
  })
  for ; i < len(isf.Index) && isf.Index[i].From < int64(to); i++ {
    pairs, err := isf.readBlock(isf.Index[i])
    if err != nil {
      return nil, err
    }
    for _, pair := range pairs {
      if pair.Position >= int64(from) && pair.Position < int64(to) {
        p := int(pair.Position)
        result = append(result, SignalValue{NewRange(p, p+1), pair.Value})
      }
    }
  }
  return result, nil
}

/* -------------------------------------------------------------------------- */

// Write an indexed signal file from parallel position and value slices.
// Positions must be given in ascending order.
func WriteIsfFile(filename string, positions []int, values []float64) error {
  if len(positions) != len(values) {
    return fmt.Errorf("positions and values differ in length")
  }
  for i := 1; i < len(positions); i++ {
    if positions[i-1] >= positions[i] {
      return fmt.Errorf("positions are not sorted")
    }
  }
  f, err := os.Create(filename)
  if err != nil {
    return err
  }
  defer f.Close()

  header := IsfHeader{Magic: ISF_MAGIC, Version: 1}
  // reserve space for the header
  if err := binary.Write(f, binary.LittleEndian, header); err != nil {
    return err
  }
  index := []IsfIndexEntry{}

  for i := 0; i < len(positions); i += isfItemsPerSlot {
    j := iMin(i+isfItemsPerSlot, len(positions))

    pairs := make([]IsfPair, j-i)
    for k := i; k < j; k++ {
      pairs[k-i] = IsfPair{int64(positions[k]), values[k]}
    }
    var compressed bytes.Buffer
    z := zlib.NewWriter(&compressed)
    if err := binary.Write(z, binary.LittleEndian, pairs); err != nil {
      return err
    }
    if err := z.Close(); err != nil {
      return err
    }
    offset, err := f.Seek(0, io.SeekCurrent)
    if err != nil {
      return err
    }
    if _, err := f.Write(compressed.Bytes()); err != nil {
      return err
    }
    index = append(index, IsfIndexEntry{
      From  : int64(positions[i]),
      To    : int64(positions[j-1]+1),
      Offset: offset,
      Size  : int64(compressed.Len()) })
  }
  // write block index
  offset, err := f.Seek(0, io.SeekCurrent)
  if err != nil {
    return err
  }
  if len(index) > 0 {
    if err := binary.Write(f, binary.LittleEndian, index); err != nil {
      return err
    }
  }
  // update header
  header.NBlocks     = int64(len(index))
  header.IndexOffset = offset
  if _, err := f.Seek(0, io.SeekStart); err != nil {
    return err
  }
  if err := binary.Write(f, binary.LittleEndian, header); err != nil {
    return err
  }
  return nil
}
