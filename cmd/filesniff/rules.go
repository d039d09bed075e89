package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gobeaver/filesniff/signature"
)

func newRulesCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active signature table as YAML",
		Long: `Print the signature table in the format accepted by --rules and
BEAVER_FILESNIFF_RULES_FILE. Use it as a starting point for a custom table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSniffer(opts, stderr)
			if err != nil {
				return err
			}
			return signature.EncodeTable(stdout, s.Table())
		},
	}
}
