package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

const bashCompletion = `# xsim bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(xsim completion bash)"

_xsim_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="list list-remote create delete boot screenshot version config doctor completion"
    local global_flags="-f --format -v --verbose --no-color --xcrun"

    case "${prev}" in
        xsim)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "text ndjson" -- "${cur}"))
            return
            ;;
        --xcrun)
            COMPREPLY=($(compgen -f -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        list)
            COMPREPLY=($(compgen -W "-b --booted-only --runtime ${global_flags}" -- "${cur}"))
            ;;
        boot)
            COMPREPLY=($(compgen -W "-w --wait --timeout -o --open ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _xsim_completions xsim
`

const zshCompletion = `#compdef xsim
# xsim zsh completion script
# Add to ~/.zshrc:
#   eval "$(xsim completion zsh)"

_xsim() {
    local -a commands
    commands=(
        'list:List simulators grouped by runtime'
        'list-remote:List device types that can be created'
        'create:Interactively create a simulator'
        'delete:Interactively delete simulators'
        'boot:Interactively boot a simulator'
        'screenshot:Capture a screenshot from a booted simulator'
        'version:Show version information'
        'config:Show or manage configuration'
        'doctor:Check system requirements'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(text ndjson)'
        '--format[Output format]:format:(text ndjson)'
        '-v[Log simctl invocations]'
        '--verbose[Log simctl invocations]'
        '--no-color[Disable colored output]'
        '--xcrun[Path to xcrun]:path:_files'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                list)
                    _arguments \
                        '-b[Show only booted]' \
                        '--booted-only[Show only booted]' \
                        '--runtime[Filter by runtime]:runtime:' \
                        $global_opts
                    ;;
                boot)
                    _arguments \
                        '-w[Wait until booted]' \
                        '--wait[Wait until booted]' \
                        '--timeout[How long to wait]:duration:' \
                        '-o[Open Simulator.app]' \
                        '--open[Open Simulator.app]' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:subcommand:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
                *)
                    _arguments $global_opts
                    ;;
            esac
            ;;
    esac
}

compdef _xsim xsim
`

const fishCompletion = `# xsim fish completion script
# Add to ~/.config/fish/completions/xsim.fish

# Disable file completion by default
complete -c xsim -f

# Commands
complete -c xsim -n "__fish_use_subcommand" -a "list" -d "List simulators grouped by runtime"
complete -c xsim -n "__fish_use_subcommand" -a "list-remote" -d "List device types that can be created"
complete -c xsim -n "__fish_use_subcommand" -a "create" -d "Interactively create a simulator"
complete -c xsim -n "__fish_use_subcommand" -a "delete" -d "Interactively delete simulators"
complete -c xsim -n "__fish_use_subcommand" -a "boot" -d "Interactively boot a simulator"
complete -c xsim -n "__fish_use_subcommand" -a "screenshot" -d "Capture a screenshot from a booted simulator"
complete -c xsim -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c xsim -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c xsim -n "__fish_use_subcommand" -a "doctor" -d "Check system requirements"
complete -c xsim -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c xsim -s f -l format -d "Output format" -xa "text ndjson"
complete -c xsim -s v -l verbose -d "Log simctl invocations"
complete -c xsim -l no-color -d "Disable colored output"
complete -c xsim -l xcrun -d "Path to xcrun" -r -F

# List command
complete -c xsim -n "__fish_seen_subcommand_from list" -s b -l booted-only -d "Show only booted"
complete -c xsim -n "__fish_seen_subcommand_from list" -l runtime -d "Filter by runtime"

# Boot command
complete -c xsim -n "__fish_seen_subcommand_from boot" -s w -l wait -d "Wait until booted"
complete -c xsim -n "__fish_seen_subcommand_from boot" -l timeout -d "How long to wait"
complete -c xsim -n "__fish_seen_subcommand_from boot" -s o -l open -d "Open Simulator.app"

# Config command
complete -c xsim -n "__fish_seen_subcommand_from config" -a "show path generate"

# Completion command
complete -c xsim -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
