package mathtex

import (
	"fmt"
	"strings"
)

// Simple is a small pure-Go engine that converts a useful subset of LaTeX
// to Unicode text suitable for terminal display: fractions, roots,
// super/subscripts, greek letters, and common operators. Commands outside
// the subset produce an error, which callers are expected to absorb via
// their fallback path.
type Simple struct{}

var _ Engine = Simple{}

// RenderToString converts latex to Unicode text.
func (Simple) RenderToString(latex string, opts Options) (string, error) {
	out, err := convert(latex)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("mathtex: empty formula")
	}
	return out, nil
}

// symbols maps argument-free commands to their Unicode form.
var symbols = map[string]string{
	"times": "×", "cdot": "·", "div": "÷", "pm": "±", "mp": "∓",
	"le": "≤", "leq": "≤", "ge": "≥", "geq": "≥", "ne": "≠", "neq": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "propto": "∝",
	"infty": "∞", "partial": "∂", "nabla": "∇",
	"sum": "Σ", "prod": "Π", "int": "∫",
	"rightarrow": "→", "to": "→", "leftarrow": "←", "Rightarrow": "⇒",
	"cdots": "⋯", "ldots": "…", "dots": "…",
	"in": "∈", "notin": "∉", "subset": "⊂", "cup": "∪", "cap": "∩",
	"forall": "∀", "exists": "∃", "emptyset": "∅",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π",
	"rho": "ρ", "sigma": "σ", "tau": "τ", "phi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
	"degree": "°", "circ": "∘",
}

// spacing commands are dropped.
var spacing = map[string]string{
	",": " ", ";": " ", "!": "", "quad": "  ", "qquad": "    ",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'i': 'ᵢ', 'n': 'ₙ', 'x': 'ₓ',
}

func convert(latex string) (string, error) {
	var b strings.Builder
	rs := []rune(latex)
	i := 0
	for i < len(rs) {
		switch r := rs[i]; r {
		case '\\':
			n, err := command(&b, rs, i)
			if err != nil {
				return "", err
			}
			i = n
		case '{', '}':
			i++ // grouping braces carry no visual weight
		case '^':
			arg, n := group(rs, i+1)
			b.WriteString(script(arg, superscripts, "^"))
			i = n
		case '_':
			arg, n := group(rs, i+1)
			b.WriteString(script(arg, subscripts, "_"))
			i = n
		default:
			b.WriteRune(r)
			i++
		}
	}
	return b.String(), nil
}

// command consumes the command starting at rs[i] ('\\') and returns the
// index just past it and its arguments.
func command(b *strings.Builder, rs []rune, i int) (int, error) {
	i++ // skip backslash
	if i >= len(rs) {
		return 0, fmt.Errorf("mathtex: trailing backslash")
	}

	// Single-char commands: \, \; \! and escaped braces.
	if !isLetter(rs[i]) {
		c := string(rs[i])
		if rep, ok := spacing[c]; ok {
			b.WriteString(rep)
			return i + 1, nil
		}
		if c == "{" || c == "}" || c == "\\" {
			b.WriteString(c)
			return i + 1, nil
		}
		return 0, fmt.Errorf("mathtex: unsupported command %q", "\\"+c)
	}

	start := i
	for i < len(rs) && isLetter(rs[i]) {
		i++
	}
	name := string(rs[start:i])

	switch name {
	case "frac", "dfrac", "tfrac":
		num, n := group(rs, i)
		den, n2 := group(rs, n)
		numOut, err := convert(num)
		if err != nil {
			return 0, err
		}
		denOut, err := convert(den)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(b, "%s/%s", wrap(numOut), wrap(denOut))
		return n2, nil
	case "sqrt":
		arg, n := group(rs, i)
		argOut, err := convert(arg)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(b, "√(%s)", argOut)
		return n, nil
	case "text", "mathrm", "mathbf", "operatorname":
		arg, n := group(rs, i)
		b.WriteString(arg)
		return n, nil
	case "left", "right":
		return i, nil // delimiters render as themselves
	case "quad", "qquad":
		b.WriteString(spacing[name])
		return i, nil
	}

	if sym, ok := symbols[name]; ok {
		b.WriteString(sym)
		return i, nil
	}
	return 0, fmt.Errorf("mathtex: unsupported command %q", "\\"+name)
}

// group reads a {...} group starting at rs[i], or a single rune when no
// brace follows. Returns the group body and the index just past it.
func group(rs []rune, i int) (string, int) {
	if i >= len(rs) {
		return "", i
	}
	if rs[i] != '{' {
		return string(rs[i]), i + 1
	}
	depth := 0
	for j := i; j < len(rs); j++ {
		switch rs[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(rs[i+1 : j]), j + 1
			}
		}
	}
	return string(rs[i+1:]), len(rs)
}

// script maps every rune of arg through table; when any rune has no
// mapped form the whole argument falls back to prefix+arg.
func script(arg string, table map[rune]rune, prefix string) string {
	var b strings.Builder
	for _, r := range arg {
		m, ok := table[r]
		if !ok {
			return prefix + arg
		}
		b.WriteRune(m)
	}
	return b.String()
}

// wrap parenthesizes multi-token operands so fractions stay readable.
func wrap(s string) string {
	if len([]rune(s)) > 2 && strings.ContainsAny(s, "+-× ") {
		return "(" + s + ")"
	}
	return s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
