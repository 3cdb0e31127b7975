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
import   "sort"
import   "strings"

import   "github.com/pborman/getopt"

import . "github.com/pbenner/genoscore"

import   "gonum.org/v1/plot"
import   "gonum.org/v1/plot/plotter"
import   "gonum.org/v1/plot/plotutil"
import   "gonum.org/v1/plot/vg"

/* -------------------------------------------------------------------------- */

type Config struct {
  Verbose    int
  Datasets   string
  Types    []string
  Exclude  []string
  Upstream   int
  Downstream int
  Value      MapValue
  Opts       Options
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

// Average anchored position maps over all features. The window around the
// anchor is fixed, so profiles from features on either strand line up at
// relative position zero.
func computeProfile(config Config, features *FeatureSet, names []string) ([]int, []float64) {
  source := NewDatasetSource(features)
  defer source.Close()

  sum   := make(map[int]float64)
  count := make(map[int]float64)

  opts := config.Opts
  opts.Adjust = Adjustment{
    Start     : -config.Upstream,
    Stop      :  config.Downstream,
    HasOffsets:  true,
    Anchor    :  Anchor5 }

  for _, name := range names {
    segment, _, err := source.Features.ResolveSegment(name, config.Types, opts.Adjust)
    if err != nil {
      fmt.Fprintf(os.Stderr, "%v, skipping\n", err)
      continue
    }
    positionMap, err := source.CollectPositionMap(segment, config.Datasets, opts, config.Value)
    if err != nil {
      log.Fatal(err)
    }
    for position, value := range positionMap {
      // re-express positions relative to the feature anchor
      sum  [position-config.Upstream] += value
      count[position-config.Upstream] += 1
    }
  }
  positions := []int{}
  for position := range sum {
    positions = append(positions, position)
  }
  sort.Ints(positions)

  values := make([]float64, len(positions))
  for i, position := range positions {
    values[i] = sum[position]/count[position]
  }
  return positions, values
}

/* -------------------------------------------------------------------------- */

func savePlot(config Config, filename string, positions []int, values []float64) {
  xy := make(plotter.XYs, len(positions))
  for i := range positions {
    xy[i].X = float64(positions[i])
    xy[i].Y = values[i]
  }
  p := plot.New()
  p.Title.Text = config.Datasets
  p.X.Label.Text = "position relative to anchor"
  p.Y.Label.Text = config.Value.String()

  if err := plotutil.AddLines(p, xy); err != nil {
    log.Fatal(err)
  }
  if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
    log.Fatal(err)
  }
  PrintStderr(config, 1, "Wrote profile plot to `%s'\n", filename)
}

/* -------------------------------------------------------------------------- */

func scoreProfile(config Config, filenameFeatures, filenameNames, filenameOut, filenamePlot string) {
  PrintStderr(config, 1, "Importing features from `%s'... ", filenameFeatures)
  features, err := ReadFeatureTable(filenameFeatures, config.Exclude); if err != nil {
    PrintStderr(config, 1, "failed\n")
    log.Fatal(err)
  }
  PrintStderr(config, 1, "done\n")

  names := readNames(filenameNames)

  positions, values := computeProfile(config, features, names)

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
  fmt.Fprintf(w, "%10s %12s\n", "position", config.Value.String())
  for i := range positions {
    fmt.Fprintf(w, "%10d %12f\n", positions[i], values[i])
  }
  w.Flush()

  if filenamePlot != "" {
    savePlot(config, filenamePlot, positions, values)
  }
}

/* -------------------------------------------------------------------------- */

func main() {
  log.SetFlags(0)

  config  := Config{}
  options := getopt.New()

  optFeatures  := options.StringLong("features",   0 ,      "", "feature table file")
  optConfig    := options.StringLong("config",     0 ,      "", "configuration file with aliases and exclusion rules")
  optNames     := options.StringLong("names",      0 ,      "", "file with one feature name per line")
  optType      := options.StringLong("type",       0 ,      "", "feature type or alias")
  optDatasets  := options.StringLong("datasets",   0 ,      "", "dataset identifier(s), joined by `&' or `,'")
  optStrand    := options.StringLong("strand",     0 ,  "none", "strand mode [sense, antisense, none]")
  optValue     := options.StringLong("value",      0 , "score", "map value [score, count, length]")
  optLog2      := options.  BoolLong("log2",       0 ,          "values are log2 transformed (inferred from dataset name if omitted)")
  optUpstream  := options.   IntLong("upstream",   0 ,    1000, "upstream window size")
  optDownstream:= options.   IntLong("downstream", 0 ,    1000, "downstream window size")
  optOutput    := options.StringLong("output",     0 ,      "", "output table file")
  optPlot      := options.StringLong("plot",       0 ,      "", "write profile plot to this file (pdf)")
  optHelp      := options.  BoolLong("help",      'h',          "print help")
  optVerbose   := options.CounterLong("verbose",  'v',          "be verbose")

  options.SetParameters("")
  options.Parse(os.Args)

  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  config.Verbose = *optVerbose

  if *optFeatures == "" {
    log.Fatal("no feature table given")
  }
  if *optNames == "" {
    log.Fatal("no feature names given")
  }
  if *optType == "" {
    log.Fatal("no feature type given")
  }
  if *optDatasets == "" {
    log.Fatal("no datasets given")
  }
  strand, err := ParseStrandMode(*optStrand); if err != nil {
    log.Fatal(err)
  }
  value, err := ParseMapValue(*optValue); if err != nil {
    log.Fatal(err)
  }
  config.Datasets      = *optDatasets
  config.Upstream      = *optUpstream
  config.Downstream    = *optDownstream
  config.Value         = value
  config.Opts.Strand   = strand
  config.Opts.Log2     = *optLog2
  config.Opts.Log2Auto = !*optLog2
  config.Types         = []string{*optType}

  if *optConfig != "" {
    conf, err := ReadFeatureConfig(*optConfig); if err != nil {
      log.Fatal(err)
    }
    config.Types   = conf.ExpandTypes(*optType)
    config.Exclude = conf.Exclude
  }
  scoreProfile(config, *optFeatures, *optNames, *optOutput, *optPlot)
}
