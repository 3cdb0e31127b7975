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

package main

/* -------------------------------------------------------------------------- */

import   "bufio"
import   "fmt"
import   "log"
import   "os"
import   "strings"

import   "github.com/pborman/getopt"
import   "github.com/pbenner/threadpool"

import . "github.com/pbenner/genoscore"

/* -------------------------------------------------------------------------- */

type Config struct {
  Verbose   int
  Threads   int
  Datasets  string
  Types   []string
  Exclude []string
  Opts      Options
}

/* i/o
 * -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
  if config.Verbose >= level {
    fmt.Fprintf(os.Stderr, format, args...)
  }
}

func readNames(filename string) []string {
  f, err := os.Open(filename); if err != nil {
    log.Fatal(err)
  }
  defer f.Close()

  names := []string{}

  scanner := bufio.NewScanner(f)
  for scanner.Scan() {
    if name := strings.TrimSpace(scanner.Text()); name != "" {
      names = append(names, name)
    }
  }
  return names
}

/* -------------------------------------------------------------------------- */

func importFeatures(config Config, filenameFeatures, db, dbTable string) *FeatureSet {
  if db != "" {
    PrintStderr(config, 1, "Importing features from database... ")
    features, err := ImportFeaturesFromDB(db, dbTable); if err != nil {
      PrintStderr(config, 1, "failed\n")
      log.Fatal(err)
    }
    PrintStderr(config, 1, "done\n")
    return features
  }
  PrintStderr(config, 1, "Importing features from `%s'... ", filenameFeatures)
  features, err := ReadFeatureTable(filenameFeatures, config.Exclude); if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")
  return features
}

/* -------------------------------------------------------------------------- */

// Scores are computed in parallel by partitioning the rows into contiguous
// chunks. Every worker owns its own dataset source and file handle cache;
// the result slice preserves the input row order.
func collectFeatureScores(config Config, features *FeatureSet, names []string) []Score {
  pool := threadpool.New(config.Threads, 100*config.Threads)
  g    := pool.NewJobGroup()

  result := make([]Score, len(names))
  errors := make([]error, config.Threads)
  chunk  := (len(names)+config.Threads-1)/config.Threads

  for i, k := 0, 0; i < len(names); i, k = i+chunk, k+1 {
    from := i
    to   := i+chunk
    t    := k
    if to > len(names) {
      to = len(names)
    }
    pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      source := NewDatasetSource(features)
      defer source.Close()
      scores, err := source.CollectFeatureScores(names[from:to], config.Types, config.Datasets, config.Opts)
      if err != nil {
        errors[t] = err
        return err
      }
      copy(result[from:to], scores)
      return nil
    })
  }
  pool.Wait(g)

  for _, err := range errors {
    if err != nil {
      log.Fatal(err)
    }
  }
  return result
}

func collectGenomeScores(config Config, features *FeatureSet, granges GRanges) []Score {
  pool := threadpool.New(config.Threads, 100*config.Threads)
  g    := pool.NewJobGroup()

  result := make([]Score, granges.Length())
  errors := make([]error, config.Threads)
  chunk  := (granges.Length()+config.Threads-1)/config.Threads

  for i, k := 0, 0; i < granges.Length(); i, k = i+chunk, k+1 {
    from := i
    to   := i+chunk
    t    := k
    if to > granges.Length() {
      to = granges.Length()
    }
    pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      source := NewDatasetSource(features)
      defer source.Close()
      for j := from; j < to; j++ {
        score, err := source.ScoreSegment(granges.Row(j), config.Datasets, config.Opts)
        if err != nil {
          errors[t] = err
          return err
        }
        result[j] = score
      }
      return nil
    })
  }
  pool.Wait(g)

  for _, err := range errors {
    if err != nil {
      log.Fatal(err)
    }
  }
  return result
}

/* -------------------------------------------------------------------------- */

func regionScores(config Config, filenameFeatures, db, dbTable, filenameNames, filenameWindows, filenameGenome, filenameOut string) {
  features := importFeatures(config, filenameFeatures, db, dbTable)

  var w *bufio.Writer

  if filenameOut == "" {
    w = bufio.NewWriter(os.Stdout)
  } else {
    f, err := os.Create(filenameOut); if err != nil {
      log.Fatal(err)
    }
    defer f.Close()
    w = bufio.NewWriter(f)
  }
  defer w.Flush()

  if filenameWindows != "" {
    granges, err := ReadGRangesTable(filenameWindows); if err != nil {
      log.Fatal(err)
    }
    if filenameGenome != "" {
      genome, err := ReadGenome(filenameGenome); if err != nil {
        log.Fatal(err)
      }
      if err := genome.CheckWindows(granges); err != nil {
        log.Fatal(err)
      }
    }
    PrintStderr(config, 1, "Scoring %d windows... ", granges.Length())
    scores := collectGenomeScores(config, features, granges)
    PrintStderr(config, 1, "done\n")

    granges.AddMeta(config.Datasets, scores)
    if err := granges.WriteTable(w, true); err != nil {
      log.Fatal(err)
    }
  } else {
    names := readNames(filenameNames)
    PrintStderr(config, 1, "Scoring %d features... ", len(names))
    scores := collectFeatureScores(config, features, names)
    PrintStderr(config, 1, "done\n")

    fmt.Fprintf(w, "%20s %12s\n", "name", config.Datasets)
    for i, name := range names {
      fmt.Fprintf(w, "%20s %12s\n", name, scores[i].String())
    }
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optFeatures  := options.StringLong("features",       0 ,     "", "feature table file")
  optDB        := options.StringLong("db",             0 ,     "", "mysql connection string (user:password@tcp(host:port)/database)")
  optDBTable   := options.StringLong("db-table",       0 , "features", "database table name")
  optConfig    := options.StringLong("config",         0 ,     "", "configuration file with aliases and exclusion rules")
  optNames     := options.StringLong("names",          0 ,     "", "file with one feature name per line")
  optWindows   := options.StringLong("windows",        0 ,     "", "table of raw genomic windows")
  optGenome    := options.StringLong("genome",         0 ,     "", "chromosome sizes file for window validation")
  optType      := options.StringLong("type",           0 ,     "", "feature type or alias for named feature lookups")
  optDatasets  := options.StringLong("datasets",       0 ,     "", "dataset identifier(s), joined by `&' or `,'")
  optMethod    := options.StringLong("method",         0 , "mean", "combination method [count, mean, median, min, max, range, stddev]")
  optStrand    := options.StringLong("strand",         0 , "none", "strand mode [sense, antisense, none]")
  optLog2      := options.  BoolLong("log2",           0 ,         "values are log2 transformed (inferred from dataset name if omitted)")
  optExtend    := options.   IntLong("extend",         0 ,      0, "extend features on both sides")
  optStart     := options.   IntLong("start",          0 ,      0, "start offset relative to the anchor")
  optStop      := options.   IntLong("stop",           0 ,      0, "stop offset relative to the anchor")
  optFStart    := options.StringLong("fstart",         0 ,     "", "fractional start offset")
  optFStop     := options.StringLong("fstop",          0 ,     "", "fractional stop offset")
  optAnchor    := options.StringLong("anchor",         0 ,    "5", "offset anchor [5, 3, mid]")
  optLimit     := options.   IntLong("fraction-limit", 0 ,      0, "minimum feature length for fractional offsets")
  optThreads   := options.   IntLong("threads",        0 ,      1, "number of threads")
  optOutput    := options.StringLong("output",         0 ,     "", "output table file")
  optHelp      := options.  BoolLong("help",          'h',         "print help")
  optVerbose   := options.CounterLong("verbose",      'v',         "be verbose")

  options.SetParameters("")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  config.Verbose = *optVerbose
  config.Threads = *optThreads
  if config.Threads < 1 {
    config.Threads = 1
  }
  if *optDatasets == "" {
    log.Fatal("no datasets given")
  }
  config.Datasets = *optDatasets

  if *optFeatures == "" && *optDB == "" {
    log.Fatal("no feature table or database given")
  }
  if *optNames == "" && *optWindows == "" {
    log.Fatal("no feature names or windows given")
  }
  if *optNames != "" && *optWindows != "" {
    log.Fatal("feature names and windows are mutually exclusive")
  }
  if *optNames != "" && *optType == "" {
    log.Fatal("no feature type given")
  }
  method, err := ParseCombinationMethod(*optMethod); if err != nil {
    log.Fatal(err)
  }
  strand, err := ParseStrandMode(*optStrand); if err != nil {
    log.Fatal(err)
  }
  anchor, err := ParseAnchor(*optAnchor); if err != nil {
    log.Fatal(err)
  }
  config.Opts.Method   = method
  config.Opts.Strand   = strand
  config.Opts.Log2     = *optLog2
  config.Opts.Log2Auto = !*optLog2
  config.Opts.Adjust.Extend        = *optExtend
  config.Opts.Adjust.Anchor        = anchor
  config.Opts.Adjust.FractionLimit = *optLimit

  if *optStart != 0 || *optStop != 0 {
    config.Opts.Adjust.Start      = *optStart
    config.Opts.Adjust.Stop       = *optStop
    config.Opts.Adjust.HasOffsets = true
  }
  if *optFStart != "" || *optFStop != "" {
    fstart := 0.0
    fstop  := 0.0
    if *optFStart != "" {
      if _, err := fmt.Sscanf(*optFStart, "%f", &fstart); err != nil {
        log.Fatal(err)
      }
    }
    if *optFStop != "" {
      if _, err := fmt.Sscanf(*optFStop, "%f", &fstop); err != nil {
        log.Fatal(err)
      }
    }
    config.Opts.Adjust.FStart       = fstart
    config.Opts.Adjust.FStop        = fstop
    config.Opts.Adjust.HasFractions = true
  }
  config.Types = []string{*optType}

  if *optConfig != "" {
    conf, err := ReadFeatureConfig(*optConfig); if err != nil {
      log.Fatal(err)
    }
    config.Types   = conf.ExpandTypes(*optType)
    config.Exclude = conf.Exclude
  }
  regionScores(config, *optFeatures, *optDB, *optDBTable, *optNames, *optWindows, *optGenome, *optOutput)
}
