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

import "bufio"
import "fmt"
import "os"
import "strings"

/* -------------------------------------------------------------------------- */

// Per-database configuration: short aliases mapping onto lists of
// concrete feature types, and attribute tags whose features are dropped
// when a feature table is loaded. Exclusion rules are consumed during
// feature-list generation, not during scoring.
type FeatureConfig struct {
  Aliases map[string][]string
  Exclude []string
}

func NewFeatureConfig() *FeatureConfig {
  return &FeatureConfig{Aliases: make(map[string][]string)}
}

/* -------------------------------------------------------------------------- */

// Expand a short alias into its list of concrete feature types. Names
// without an alias entry are returned as they are.
func (config *FeatureConfig) ExpandTypes(name string) []string {
  if types, ok := config.Aliases[name]; ok {
    return types
  }
  return []string{name}
}

/* i/o
 * -------------------------------------------------------------------------- */

// Import configuration from a whitespace separated file. Each line starts
// with a keyword: `alias NAME TYPE,TYPE,...' maps a short alias onto a
// list of feature types, `exclude TAG' drops features carrying the given
// attribute tag. Lines starting with # are ignored.
func ReadFeatureConfig(filename string) (*FeatureConfig, error) {
  config := NewFeatureConfig()

  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  defer f.Close()

  scanner := bufio.NewScanner(f)
  for scanner.Scan() {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
      continue
    }
    switch fields[0] {
    case "alias":
      if len(fields) != 3 {
        return nil, fmt.Errorf("invalid alias line")
      }
      config.Aliases[fields[1]] = strings.Split(fields[2], ",")
    case "exclude":
      if len(fields) != 2 {
        return nil, fmt.Errorf("invalid exclude line")
      }
      config.Exclude = append(config.Exclude, fields[1])
    default:
      return nil, fmt.Errorf("invalid keyword `%s'", fields[0])
    }
  }
  return config, nil
}
