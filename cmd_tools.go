package main

import (
	"github.com/spf13/cobra"
)

// ToolsCmd returns the tools command group
func ToolsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List and run the jarvis agent tools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.toolRegistry()
			if err != nil {
				return err
			}
			infos, err := registry.Infos(cmd.Context())
			if err != nil {
				return err
			}
			type summary struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			}
			out := make([]summary, 0, len(infos))
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				out = append(out, summary{Name: info.Name, Description: info.Desc})
				rows = append(rows, []string{info.Name, firstLine(info.Desc)})
			}
			return render(cmd, out, []string{"Tool", "Description"}, rows)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run <name> [json-arguments]",
		Short: "Run a tool with JSON arguments",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.toolRegistry()
			if err != nil {
				return err
			}
			arguments := ""
			if len(args) == 2 {
				arguments = args[1]
			}
			out, err := registry.Run(cmd.Context(), args[0], arguments)
			if err != nil {
				return err
			}
			return renderText(cmd, out.Output)
		},
	})
	return cmd
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
