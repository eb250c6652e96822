package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sverrors "github.com/stateview-dev/stateview/internal/errors"
)

func errorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors [code]",
		Short: "Explain stateview error codes",
		Long: `Without arguments, list all registered error codes. With a code
argument (e.g. E101), print the full explanation for that code.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return explainCode(args[0])
			}
			listCodes()
			return nil
		},
	}
	return cmd
}

func listCodes() {
	for _, code := range sverrors.GetAllCodes() {
		tmpl, ok := sverrors.GetTemplate(code)
		if !ok {
			continue
		}
		fmt.Printf("  %s  [%s] %s\n", code, tmpl.Category, tmpl.Message)
	}
}

func explainCode(code string) error {
	if _, ok := sverrors.GetTemplate(code); !ok {
		return fmt.Errorf("unknown error code %q (run 'stateview errors' for the full list)", code)
	}
	fmt.Println(sverrors.New(code).Format())
	return nil
}
