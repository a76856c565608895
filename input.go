// input.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"fmt"
	"strconv"
	"strings"
)

type Config struct {
	Basis     *SpinorBasis
	Class     Class
	Family    Family
	NComp     int
	Seed      uint64
	Threshold float64
	Decay     float64
	NProcs    int
}

func defaultConfig() Config {
	return Config{Class: S4, Family: RHA, NComp: 1, Seed: 1, NProcs: 1}
}

// processInput reads the keyword input. Keywords are case-insensitive; the
// Shells block runs up to the next End.
func processInput(data []string) (Config, error) {
	cfg := defaultConfig()
	var shells bool
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		key := strings.ToLower(words[0])
		if key == "shells" {
			end, err := findBlockEnd(i, data, "Shells")
			if err != nil {
				return cfg, err
			}
			cfg.Basis = &SpinorBasis{}
			if err := cfg.Basis.addShells(data, i+1, end-1); err != nil {
				return cfg, err
			}
			Output.Infof("Parsing input. Shells block found at lines %d -- %d.", i+1, end+1)
			shells = true
			i = end
			continue
		}
		if len(words) < 2 {
			return cfg, fmt.Errorf("%w: line %d: keyword %s needs a value", ErrInput, i+1, words[0])
		}
		var err error
		switch key {
		case "symmetry":
			cfg.Class, err = ParseClass(words[1])
		case "family":
			cfg.Family, err = ParseFamily(words[1])
		case "ncomp":
			cfg.NComp, err = strconv.Atoi(words[1])
		case "seed":
			cfg.Seed, err = strconv.ParseUint(words[1], 10, 64)
		case "threshold":
			cfg.Threshold, err = strconv.ParseFloat(words[1], 64)
		case "decay":
			cfg.Decay, err = strconv.ParseFloat(words[1], 64)
		case "nprocs":
			cfg.NProcs, err = strconv.Atoi(words[1])
			Output.Info("Parsing input. Number of threads set to " + words[1] + ".")
		default:
			Log.Warnw("unknown keyword", "line", i+1, "keyword", words[0])
		}
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %v", ErrInput, i+1, err)
		}
	}
	if !shells {
		return cfg, fmt.Errorf("%w: no Shells found", ErrInput)
	}
	if cfg.NComp < 1 || cfg.NProcs < 1 {
		return cfg, fmt.Errorf("%w: ncomp %d, nprocs %d", ErrInput, cfg.NComp, cfg.NProcs)
	}
	return cfg, nil
}

func findBlockEnd(n int, data []string, bname string) (int, error) {
	for i := n; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 {
			if strings.ToLower(words[0]) == "end" {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no end of block %s", ErrInput, bname)
}
