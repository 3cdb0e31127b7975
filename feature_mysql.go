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

import "database/sql"
import "fmt"
import "math"

import _ "github.com/go-sql-driver/mysql"

/* import features from an annotation database
 * -------------------------------------------------------------------------- */

// Import features from a MySQL annotation database. The table is expected
// to provide the columns name, type, chrom, start, end, strand, score, and
// file, where score and file may be NULL. The connection string [dsn] has
// the usual form user:password@tcp(host:port)/database.
func ImportFeaturesFromDB(dsn, table string) (*FeatureSet, error) {
  /* variables for storing a single database row */
  var i_name, i_type, i_seqname, i_strand string
  var i_from, i_to int
  var i_score sql.NullFloat64
  var i_file  sql.NullString

  /* open connection */
  db, err := sql.Open("mysql", dsn)
  if err != nil {
    return nil, err
  }
  defer db.Close()

  err = db.Ping()
  if err != nil {
    return nil, err
  }

  /* receive data */
  rows, err := db.Query(
    fmt.Sprintf("SELECT name, type, chrom, start, end, strand, score, file FROM %s", table))
  if err != nil {
    return nil, err
  }
  defer rows.Close()

  set := NewFeatureSet(nil)

  for rows.Next() {
    err := rows.Scan(&i_name, &i_type, &i_seqname, &i_from, &i_to, &i_strand, &i_score, &i_file)
    if err != nil {
      return nil, err
    }
    strand, err := ParseStrand(i_strand)
    if err != nil {
      return nil, err
    }
    score := math.NaN()
    if i_score.Valid {
      score = i_score.Float64
    }
    file := ""
    if i_file.Valid {
      file = i_file.String
    }
    set.Add(Feature{
      Name   : i_name,
      Type   : i_type,
      Seqname: i_seqname,
      Range  : NewRange(i_from, i_to),
      Strand : strand,
      Score  : score,
      File   : file })
  }
  return set, nil
}
