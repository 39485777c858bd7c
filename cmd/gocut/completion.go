package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for gocut.

To load completions:

Bash:

  $ source <(gocut completion bash)

  To load completions for each session, execute once:
  Linux:
    $ gocut completion bash > /etc/bash_completion.d/gocut
  macOS:
    $ gocut completion bash > /usr/local/etc/bash_completion.d/gocut

Zsh:

  $ gocut completion zsh > "${fpath[1]}/_gocut"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ gocut completion fish | source

PowerShell:

  PS> gocut completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// completion output must stay free of config and log noise
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
