package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphdraw. Completion covers
commands, flags, output formats and --mode values.

To load completions:

Bash:
  $ source <(graphdraw completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ graphdraw completion bash > /etc/bash_completion.d/graphdraw
  # macOS:
  $ graphdraw completion bash > $(brew --prefix)/etc/bash_completion.d/graphdraw

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ graphdraw completion zsh > "${fpath[1]}/_graphdraw"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ graphdraw completion fish | source

  # To load completions for each session, execute once:
  $ graphdraw completion fish > ~/.config/fish/completions/graphdraw.fish

PowerShell:
  PS> graphdraw completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> graphdraw completion powershell > graphdraw.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeList completes the last element of a comma-separated flag value.
func completeList(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		done := strings.Split(prefix, ",")
		var out []string
		for _, v := range values {
			if !slices.Contains(done, v) {
				out = append(out, prefix+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}
}
