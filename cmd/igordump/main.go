// Command igordump inspects Igor Pro binary wave (.ibw) and packed
// experiment (.pxp) files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igor-tools/go-igor/igor"
	"github.com/igor-tools/go-igor/igormat"
)

var (
	useMacRoman bool
	dumpLimit   int
)

var rootCmd = &cobra.Command{
	Use:   "igordump",
	Short: "Inspect Igor Pro binary wave and packed experiment files",
	Long: `igordump reads Igor Pro binary files and prints their contents.

It understands single binary waves (.ibw) and packed experiments
(.pxp, .pxt). Files with an .ibw extension are decoded as waves,
everything else as experiments.`,
}

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Show file metadata",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Show the folder tree of an experiment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTree(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE [WAVE]",
	Short: "Print wave values",
	Long: `Dump prints the values of waves. For an experiment the WAVE argument
selects one wave by its folder path, for example "sweep1/current".
Without it every wave in the file is printed.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		wavePath := ""
		if len(args) == 2 {
			wavePath = args[1]
		}
		if err := runDump(args[0], wavePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useMacRoman, "macroman", false,
		"decode text as Mac Roman instead of Windows-1252")
	dumpCmd.Flags().IntVarP(&dumpLimit, "limit", "l", 0,
		"limit the number of printed values per wave (0 prints all)")
	rootCmd.AddCommand(infoCmd, treeCmd, dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func decodeOptions() []igor.Option {
	if useMacRoman {
		return []igor.Option{igor.WithMacRoman()}
	}
	return nil
}

func isWaveFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ibw")
}

func runInfo(path string) error {
	if isWaveFile(path) {
		w, err := igor.LoadIBW(path, decodeOptions()...)
		if err != nil {
			return err
		}
		printWaveInfo(w, "")
		return nil
	}

	exp, err := igor.LoadPXP(path, decodeOptions()...)
	if err != nil {
		return err
	}

	var folders, waves int
	igor.Walk(exp.Root(), func(p string, obj interface{}) error {
		switch obj.(type) {
		case *igor.Folder:
			if p != exp.Root().Path() {
				folders++
			}
		case *igor.Wave:
			waves++
		}
		return nil
	})

	fmt.Printf("Experiment %s:\n", filepath.Base(path))
	fmt.Printf("  Folders:      %d\n", folders)
	fmt.Printf("  Waves:        %d\n", waves)
	if v := exp.Variables(); v != nil {
		fmt.Printf("  Variables:    %d system, %d numeric, %d string\n",
			len(v.System), len(v.Numeric), len(v.Strings))
	}
	fmt.Printf("  History:      %d bytes\n", len(exp.History()))
	fmt.Printf("  Procedures:   %d bytes\n", len(exp.Procedure()))
	fmt.Printf("  Packed files: %d\n", len(exp.PackedFiles()))
	return nil
}

func printWaveInfo(w *igor.Wave, indent string) {
	fmt.Printf("%sWave %q:\n", indent, w.Name())
	fmt.Printf("%s  Version: %d\n", indent, w.Version())
	fmt.Printf("%s  Type:    %s\n", indent, w.TypeName())
	fmt.Printf("%s  Points:  %d\n", indent, w.NumPoints())
	fmt.Printf("%s  Shape:   %v\n", indent, w.Shape())
	if u := w.DataUnits(); u != "" {
		fmt.Printf("%s  Units:   %s\n", indent, u)
	}
	for dim := 0; dim < w.Rank(); dim++ {
		start, end := w.DimScale(dim)
		fmt.Printf("%s  Axis %d:  %g .. %g %s\n", indent, dim, start, end, w.DimUnits(dim))
	}
	if t := w.Created(); !t.IsZero() {
		fmt.Printf("%s  Created: %s\n", indent, t.Format("2006-01-02 15:04:05"))
	}
	if f := w.Formula(); f != "" {
		fmt.Printf("%s  Formula: %s\n", indent, f)
	}
	if n := w.Note(); n != "" {
		fmt.Printf("%s  Note:    %s\n", indent, strings.ReplaceAll(n, "\r", " / "))
	}
}

func runTree(path string) error {
	if isWaveFile(path) {
		w, err := igor.LoadIBW(path, decodeOptions()...)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s %v\n", w.Name(), w.TypeName(), w.Shape())
		return nil
	}

	exp, err := igor.LoadPXP(path, decodeOptions()...)
	if err != nil {
		return err
	}
	return igor.Walk(exp.Root(), func(p string, obj interface{}) error {
		indent := strings.Repeat("  ", strings.Count(p, "/"))
		switch v := obj.(type) {
		case *igor.Folder:
			fmt.Printf("%s%s/\n", indent, v.Name())
		case *igor.Wave:
			fmt.Printf("%s%s  %s %v\n", indent, v.Name(), v.TypeName(), v.Shape())
		}
		return nil
	})
}

func runDump(path, wavePath string) error {
	if isWaveFile(path) {
		w, err := igor.LoadIBW(path, decodeOptions()...)
		if err != nil {
			return err
		}
		return dumpWave(w)
	}

	exp, err := igor.LoadPXP(path, decodeOptions()...)
	if err != nil {
		return err
	}

	if wavePath != "" {
		w, err := exp.Root().OpenWave(wavePath)
		if err != nil {
			return err
		}
		return dumpWave(w)
	}

	return igor.Walk(exp.Root(), func(p string, obj interface{}) error {
		w, ok := obj.(*igor.Wave)
		if !ok {
			return nil
		}
		fmt.Printf("=== %s ===\n", p)
		return dumpWave(w)
	})
}

func dumpWave(w *igor.Wave) error {
	if w.IsText() {
		for i, cell := range w.Strings() {
			if dumpLimit > 0 && i >= dumpLimit {
				fmt.Printf("... (%d more cells)\n", w.NumPoints()-dumpLimit)
				break
			}
			fmt.Printf("[%d] %s\n", i, cell)
		}
		return nil
	}

	if w.IsComplex() {
		vals, err := w.Complex128s()
		if err != nil {
			return err
		}
		for i, v := range vals {
			if dumpLimit > 0 && i >= dumpLimit {
				fmt.Printf("... (%d more values)\n", len(vals)-dumpLimit)
				break
			}
			fmt.Printf("%v\n", v)
		}
		return nil
	}

	vals, err := w.Float64s()
	if err != nil {
		return err
	}

	// Rank 1 waves print with their calibrated axis alongside.
	if w.Rank() == 1 {
		axis := igormat.Axis(w, 0)
		for i, v := range vals {
			if dumpLimit > 0 && i >= dumpLimit {
				fmt.Printf("... (%d more values)\n", len(vals)-dumpLimit)
				break
			}
			fmt.Printf("%g\t%g\n", axis[i], v)
		}
		return nil
	}

	for i, v := range vals {
		if dumpLimit > 0 && i >= dumpLimit {
			fmt.Printf("... (%d more values)\n", len(vals)-dumpLimit)
			break
		}
		fmt.Printf("%g\n", v)
	}
	return nil
}
