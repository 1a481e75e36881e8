package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "help")
	Short     string   // short alias without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsAlgo    bool     // true if values come from algorithm list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "q", Help: "Value of q", Values: []string{"q", "p", "sym:z", "2", "-1", "1/2", "I", "root:3"}, ValueName: "q"},
	{Long: "algo", Help: "q-binomial algorithm", IsAlgo: true, ValueName: "algorithm"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "format", Help: "Output format", Values: []string{"text", "json", "yaml"}, ValueName: "format"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "verbose", Short: "v", Help: "Display the full value"},
	{Long: "quiet", Help: "Print only the value"},
	{Long: "verify", Help: "Check the value at q = 1"},
	{Long: "max-length", Help: "Truncation limit of displayed values", Values: []string{"0", "1024", "4096"}, ValueName: "chars"},
	{Long: "repl", Help: "Interactive prompt"},
	{Long: "tui", Help: "Terminal explorer"},
	{Long: "calibrate", Help: "Time the q-binomial algorithms"},
	{Long: "server", Help: "Serve the HTTP API"},
	{Long: "port", Help: "HTTP port", Values: []string{"8080", "9090"}, ValueName: "port"},
	{Long: "max-n", Help: "Largest size accepted by the server", ValueName: "number"},
	{Long: "workers", Help: "Concurrent server computations", ValueName: "number"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - algorithms: List of available algorithm names.
//   - functions: List of function names completed as the first argument.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, algorithms, functions []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, algorithms, functions)
	case "zsh":
		return generateZshCompletion(out, algorithms, functions)
	case "fish":
		return generateFishCompletion(out, algorithms, functions)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagNames returns the dash-prefixed names of f, long form first.
func flagNames(f FlagCompletion) []string {
	names := []string{"-" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, algorithms, functions []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&caseBody, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}
	for _, f := range flagRegistry {
		switch {
		case f.IsAlgo:
			writeCase(flagNames(f), `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`)
		case f.IsFile:
			writeCase(flagNames(f), `COMPREPLY=( $(compgen -f -- "${cur}") )`)
		case len(f.Values) > 0:
			writeCase(flagNames(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}

	script := fmt.Sprintf(`# Bash completion script for qcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_qcalc_completions() {
    local cur prev opts algorithms functions
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    algorithms="%s all"
    functions="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${functions}" -- "${cur}") )
}

complete -F _qcalc_completions qcalc
`, strings.Join(opts, " "), strings.Join(algorithms, " "), strings.Join(functions, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, algorithms, functions []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:function:($functions)'", "        '*:argument:'")

	script := fmt.Sprintf(`#compdef qcalc

# Zsh completion script for qcalc
# Add this to your ~/.zshrc or place in $fpath

_qcalc() {
    local -a algorithms functions
    algorithms=(%s all)
    functions=(%s)

    _arguments \
%s
}

_qcalc "$@"
`, strings.Join(algorithms, " "), strings.Join(functions, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		valueSuffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, algorithms, functions []string) error {
	lines := []string{
		"# Fish completion script for qcalc",
		"# Add this to ~/.config/fish/completions/qcalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c qcalc -f",
		"",
		"# Functions",
		fmt.Sprintf("complete -c qcalc -n '__fish_is_first_arg' -a '%s'", strings.Join(functions, " ")),
		"",
		"# Options",
	}

	algoList := strings.Join(algorithms, " ")
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, algoList))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Go flags take a single dash, which fish spells -o (old-style option).
func fishCompleteLine(f FlagCompletion, algoList string) string {
	parts := []string{"complete -c qcalc", "-o " + f.Long}
	if f.Short != "" {
		parts = append(parts, "-o "+f.Short)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", algoList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
