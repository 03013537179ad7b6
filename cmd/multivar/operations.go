package main

import (
	"fmt"

	"github.com/aretw0/multivar/internal/cli"
	"github.com/aretw0/multivar/pkg/service"
	"github.com/spf13/cobra"
)

func init() {
	for _, op := range service.Catalogue() {
		rootCmd.AddCommand(operationCommand(op))
	}
}

// operationCommand exposes one operation with a flag per parameter.
// Flag values are passed to Dispatch as strings and decoded there.
func operationCommand(op service.OperationInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   op.Name,
		Short: op.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flagParams(cmd, op.Params)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Service.Dispatch(cmd.Context(), op.Name, params)
			if err != nil {
				return fmt.Errorf("%s: %w", op.Name, err)
			}
			return cli.Print(cmd.OutOrStdout(), format, op.Name, result)
		},
	}

	flags := cmd.Flags()
	for _, p := range op.Params {
		switch p.Kind {
		case service.ParamBool:
			flags.Bool(p.Name, false, p.Description)
		case service.ParamLevels, service.ParamPaths:
			flags.StringSlice(p.Name, nil, p.Description)
		case service.ParamPoints:
			flags.StringArray(p.Name, nil, p.Description+" (repeat the flag)")
		default:
			flags.String(p.Name, "", p.Description)
		}
		if p.Required {
			_ = cmd.MarkFlagRequired(p.Name)
		}
	}
	return cmd
}

func flagParams(cmd *cobra.Command, params []service.ParamInfo) (map[string]any, error) {
	out := make(map[string]any, len(params))
	flags := cmd.Flags()
	for _, p := range params {
		if !flags.Changed(p.Name) {
			continue
		}
		switch p.Kind {
		case service.ParamLevels, service.ParamPaths:
			v, err := flags.GetStringSlice(p.Name)
			if err != nil {
				return nil, err
			}
			out[p.Name] = v
		case service.ParamPoints:
			v, err := flags.GetStringArray(p.Name)
			if err != nil {
				return nil, err
			}
			out[p.Name] = v
		default:
			out[p.Name] = flags.Lookup(p.Name).Value.String()
		}
	}
	return out, nil
}
