// main.go --  This file is part of goHF project.
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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	verbose  bool
	dumpDir  string
	checkTol float64
	syncLog  func()
)

var outNames = []string{"vj_kl", "vj_ij", "vk_il", "vk_kj"}

var rootCmd = &cobra.Command{
	Use:   "rhajk",
	Short: "Kramers-restricted J/K contraction over model spinor integrals",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		outFname := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".out"
		fmt.Println("Output file: ", outFname)
		var err error
		syncLog, err = initLog(outFname, verbose)
		if err != nil {
			return err
		}
		Log.Info("Starting rhajk...")
		appInfo()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		Log.Info("Exiting rhajk...")
		if syncLog != nil {
			syncLog()
		}
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run <input>",
	Short: "Build J and K with the symmetry class of the input and print their traces",
	Args:  cobra.ExactArgs(1),
	RunE:  runJK,
}

var checkCmd = &cobra.Command{
	Use:   "check <input>",
	Short: "Compare the symmetry class of the input against the unreduced sweep",
	Args:  cobra.ExactArgs(1),
	RunE:  checkJK,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	runCmd.Flags().StringVar(&dumpDir, "dump", "", "write J/K matrices as text files into this directory")
	checkCmd.Flags().Float64Var(&checkTol, "tol", 1e-9, "largest deviation accepted")
	rootCmd.AddCommand(runCmd, checkCmd)
}

// job is everything a sweep needs besides the symmetry class.
type job struct {
	cfg      Config
	aoLoc    []int
	tao      TimeReversalMap
	eri      *ModelERI
	dm       *mat.CDense
	screener Screener
}

func loadJob(fname string) (*job, error) {
	Output.Info("Input file content:")
	printOutputDelimiter()
	inpData, err := ReadFileLines(fname)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	for _, line := range inpData {
		Output.Info(line)
	}
	printOutputDelimiter()

	cfg, err := processInput(inpData)
	if err != nil {
		return nil, err
	}
	runtime.GOMAXPROCS(cfg.NProcs)
	Output.Info("Spinor shells:\n" + cfg.Basis.String())

	j := &job{cfg: cfg, aoLoc: cfg.Basis.AOLoc(), tao: cfg.Basis.TimeReversalMap()}
	nao := cfg.Basis.NAO()
	if nao == 0 {
		return nil, fmt.Errorf("%w: basis has no functions", ErrInput)
	}
	j.eri, err = NewModelERI(j.aoLoc, j.tao, cfg.Family, cfg.NComp, cfg.Seed, cfg.Decay)
	if err != nil {
		return nil, err
	}
	j.dm = RandomDensity(nao, cfg.Seed+1)
	if cfg.Threshold > 0 {
		j.screener = NewSchwarzScreener(j.eri, j.aoLoc, cfg.Threshold)
	}
	return j, nil
}

func (j *job) sweep(ctx context.Context, class Class, screener Screener) ([][]*mat.CDense, DriverStats, error) {
	ops := OperatorSet(class, j.cfg.Family)
	nbas := len(j.aoLoc) - 1
	outs := newOutputs(len(ops), j.cfg.NComp, j.eri.NAO())
	drv := &DirectDriver{
		Evaluator: j.eri,
		Screener:  screener,
		Ops:       ops,
		DMs:       []*mat.CDense{j.dm, j.dm, j.dm, j.dm},
		Outs:      outs,
		Slice:     ShellSlice{0, nbas, 0, nbas, 0, nbas, 0, nbas},
		AOLoc:     j.aoLoc,
		Tao:       j.tao,
		Workers:   j.cfg.NProcs,
	}
	if err := drv.Run(ctx); err != nil {
		return nil, DriverStats{}, err
	}
	return outs, drv.Stats, nil
}

func runJK(cmd *cobra.Command, args []string) error {
	j, err := loadJob(args[0])
	if err != nil {
		return err
	}
	outs, stats, err := j.sweep(cmd.Context(), j.cfg.Class, j.screener)
	if err != nil {
		return err
	}
	printOutputDelimiter()
	Output.Infof("Symmetry %s, family %s, nao %d, %d quadruples contracted (%d screened) in %v",
		j.cfg.Class, j.cfg.Family, j.eri.NAO(), stats.Contracted, stats.Screened, stats.Elapsed)
	for n, name := range outNames {
		for ic, m := range outs[n] {
			tr := Trace(m)
			Output.Infof("tr %-6s[%d] = %16.10f %+16.10fi", name, ic, real(tr), imag(tr))
			fmt.Printf("tr %-6s[%d] = %16.10f %+16.10fi\n", name, ic, real(tr), imag(tr))
		}
	}
	printOutputDelimiter()
	if dumpDir != "" {
		if err := TxtFilesFromOutputs(outs, outNames, dumpDir); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		Output.Info("Matrices written to " + dumpDir)
	}
	MyMemDebug()
	return nil
}

func checkJK(cmd *cobra.Command, args []string) error {
	j, err := loadJob(args[0])
	if err != nil {
		return err
	}
	got, _, err := j.sweep(cmd.Context(), j.cfg.Class, nil)
	if err != nil {
		return err
	}
	ref, _, err := j.sweep(cmd.Context(), S1, nil)
	if err != nil {
		return err
	}
	worst := 0.0
	printOutputDelimiter()
	for n, name := range outNames {
		full := newOutputs(1, j.cfg.NComp, j.eri.NAO())[0]
		j.eri.ContractFull(Role(n), j.dm, full)
		for ic := range got[n] {
			dev := MaxDeviation(got[n][ic], ref[n][ic])
			devFull := MaxDeviation(ref[n][ic], full[ic])
			worst = max(worst, dev, devFull)
			Output.Infof("%-6s[%d]  |%s - s1| = %.3e  |s1 - full| = %.3e", name, ic, j.cfg.Class, dev, devFull)
			fmt.Printf("%-6s[%d]  |%s - s1| = %.3e  |s1 - full| = %.3e\n", name, ic, j.cfg.Class, dev, devFull)
		}
	}
	printOutputDelimiter()
	if worst > checkTol {
		return fmt.Errorf("max deviation %.3e exceeds %.3e", worst, checkTol)
	}
	fmt.Println("rhajk check passed.")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		Log.Errorw("rhajk failed", "error", err)
		if syncLog != nil {
			syncLog()
		}
		os.Exit(1)
	}
}
