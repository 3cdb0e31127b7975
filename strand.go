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

/* -------------------------------------------------------------------------- */

// Strand orientation of a feature or datapoint. Data files encode strands
// in various ways (+/-/./*, f/r, 1/-1/0), which is translated here once at
// the parsing boundary.
type Strand int8

const (
  StrandFwd  Strand =  1
  StrandRev  Strand = -1
  StrandNone Strand =  0
)

/* -------------------------------------------------------------------------- */

func ParseStrand(str string) (Strand, error) {
  switch str {
  case "+", "f", "F", "1":
    return StrandFwd, nil
  case "-", "r", "R", "-1":
    return StrandRev, nil
  case ".", "*", "0", "":
    return StrandNone, nil
  }
  return StrandNone, fmt.Errorf("invalid strand `%s'", str)
}

/* -------------------------------------------------------------------------- */

func (strand Strand) Opposite() Strand {
  return -strand
}

func (strand Strand) Byte() byte {
  switch strand {
  case StrandFwd: return '+'
  case StrandRev: return '-'
  }
  return '*'
}

func (strand Strand) String() string {
  return string(strand.Byte())
}
