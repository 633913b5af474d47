package main

import (
	"fmt"

	"github.com/dhamidi/classpeek/format"
	"github.com/dhamidi/classpeek/loader"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string
	var noColor bool
	var checkMagic bool

	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Dump the header and constant pool of a .class file, directory or .jar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []loader.Option
			if checkMagic {
				opts = append(opts, loader.WithMagicCheck())
			}
			results, err := loader.Load(args[0], opts...)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}

			out := cmd.OutOrStdout()
			var enc format.Encoder
			if dumpFormat == "text" && noColor {
				enc = format.NewTextEncoder(out, format.WithColorProfile(termenv.Ascii))
			} else {
				enc, err = format.New(dumpFormat, out)
				if err != nil {
					return err
				}
			}

			for i, r := range results {
				if len(results) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "# %s\n", r.Name)
				}
				if err := enc.Encode(r.Class); err != nil {
					return fmt.Errorf("encode %s: %w", r.Name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, line, json)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors in text output")
	cmd.Flags().BoolVar(&checkMagic, "check-magic", false, "reject input that does not start with 0xCAFEBABE")

	return cmd
}
