package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version string = "master" // Replaced by linker: -ldflags "-X main.version=..."
var log = logrus.New()

func newRootCmd(out io.Writer) *cobra.Command {
	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print version of huffzip",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:           "huffzip",
		Short:         "huffzip compresses text files with Huffman coding",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageErrorf("exactly one of compress or decompress must be specified")
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug information")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})
	rootCmd.SetOut(out)
	rootCmd.AddCommand(newCompressCmd(), newDecompressCmd(), newInspectCmd(), cmdVersion)
	return rootCmd
}

func run(args []string, out io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd := newRootCmd(out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		if code == exitUsage {
			log.Errorf("%s. Try 'huffzip --help' for more information", err)
		} else {
			log.Error(err)
		}
		return code
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
