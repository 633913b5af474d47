package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/classpeek/classfile"
	"github.com/dhamidi/classpeek/loader"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report whether each path decodes, continuing past failures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				results, err := loader.Load(path, loader.WithMagicCheck())
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL\t%s\t%s\t%v\n", path, failureKind(err), err)
					continue
				}
				for _, r := range results {
					fmt.Fprintf(out, "ok\t%s\t%d.%d\t%s\n", r.Name, r.Class.MajorVersion, r.Class.MinorVersion, r.Class.ClassName())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d paths failed to decode", failed, len(args))
			}
			return nil
		},
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, classfile.ErrOutOfBounds):
		return "truncated"
	case errors.Is(err, classfile.ErrUnsupportedTag):
		return "unsupported-tag"
	case errors.Is(err, classfile.ErrInvalidMagic):
		return "bad-magic"
	default:
		return "io"
	}
}
