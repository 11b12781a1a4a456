package latex

// symbols maps commands to a single Unicode glyph.
var symbols = map[string]string{
	// Greek, lower case
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "varpi": "ϖ", "rho": "ρ", "varrho": "ϱ", "sigma": "σ",
	"varsigma": "ς", "tau": "τ", "upsilon": "υ", "phi": "φ", "varphi": "φ",
	"chi": "χ", "psi": "ψ", "omega": "ω",

	// Greek, upper case
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Binary operators
	"pm": "±", "mp": "∓", "times": "×", "div": "÷", "cdot": "·", "ast": "∗",
	"star": "⋆", "circ": "∘", "bullet": "•", "oplus": "⊕", "otimes": "⊗",
	"cup": "∪", "cap": "∩", "setminus": "∖", "wedge": "∧", "land": "∧",
	"vee": "∨", "lor": "∨",

	// Relations
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "simeq": "≃", "cong": "≅",
	"propto": "∝", "ll": "≪", "gg": "≫", "in": "∈", "notin": "∉", "ni": "∋",
	"subset": "⊂", "supset": "⊃", "subseteq": "⊆", "supseteq": "⊇",
	"perp": "⊥", "parallel": "∥", "mid": "∣",

	// Arrows
	"to": "→", "rightarrow": "→", "leftarrow": "←", "gets": "←",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "leftrightarrow": "↔",
	"Leftrightarrow": "⇔", "iff": "⇔", "implies": "⇒", "mapsto": "↦",
	"uparrow": "↑", "downarrow": "↓", "longrightarrow": "⟶",

	// Miscellaneous
	"infty": "∞", "partial": "∂", "nabla": "∇", "forall": "∀", "exists": "∃",
	"neg": "¬", "lnot": "¬", "emptyset": "∅", "varnothing": "∅", "angle": "∠",
	"triangle": "△", "hbar": "ℏ", "ell": "ℓ", "Re": "ℜ", "Im": "ℑ",
	"aleph": "ℵ", "prime": "′", "degree": "°",
	"ldots": "…", "dots": "…", "cdots": "⋯", "vdots": "⋮", "ddots": "⋱",
	"therefore": "∴", "because": "∵",
}

// naryOperators maps large operators to their glyph and limit placement.
var naryOperators = map[string]struct {
	glyph  string
	limits string
}{
	"sum":      {"∑", LimitsUnderOver},
	"prod":     {"∏", LimitsUnderOver},
	"coprod":   {"∐", LimitsUnderOver},
	"bigcup":   {"⋃", LimitsUnderOver},
	"bigcap":   {"⋂", LimitsUnderOver},
	"bigvee":   {"⋁", LimitsUnderOver},
	"bigwedge": {"⋀", LimitsUnderOver},
	"int":      {"∫", LimitsSubSup},
	"iint":     {"∬", LimitsSubSup},
	"iiint":    {"∭", LimitsSubSup},
	"oint":     {"∮", LimitsSubSup},
}

// functionNames are set upright, like \sin.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true, "sinh": true, "cosh": true,
	"tanh": true, "log": true, "ln": true, "lg": true, "exp": true, "lim": true,
	"max": true, "min": true, "sup": true, "inf": true, "det": true, "gcd": true,
	"deg": true, "dim": true, "ker": true, "arg": true, "Pr": true,
}

// accents maps accent commands to combining or spacing characters.
var accents = map[string]string{
	"hat":       "̂",
	"widehat":   "̂",
	"bar":       "̅",
	"overline":  "̅",
	"vec":       "⃗",
	"dot":       "̇",
	"ddot":      "̈",
	"tilde":     "̃",
	"widetilde": "̃",
	"check":     "̌",
	"breve":     "̆",
	"acute":     "́",
	"grave":     "̀",
}

// textCommands take their argument verbatim as a styled run.
var textCommands = map[string]struct {
	style string
	font  string
}{
	"text":         {"p", ""},
	"textrm":       {"p", ""},
	"mathrm":       {"p", ""},
	"operatorname": {"p", ""},
	"textbf":       {"b", ""},
	"mathbf":       {"b", ""},
	"boldsymbol":   {"bi", ""},
	"textit":       {"i", ""},
	"mathit":       {"i", ""},
	"mathbb":       {"p", "double-struck"},
	"mathcal":      {"p", "script"},
	"mathfrak":     {"p", "fraktur"},
}

// delimiters maps \left and \right arguments to glyphs.
var delimiters = map[string]string{
	".":       "",
	`\{`:      "{",
	`\}`:      "}",
	`\|`:      "‖",
	`\langle`: "⟨",
	`\rangle`: "⟩",
	`\lvert`:  "|",
	`\rvert`:  "|",
	`\lVert`:  "‖",
	`\rVert`:  "‖",
	`\lfloor`: "⌊",
	`\rfloor`: "⌋",
	`\lceil`:  "⌈",
	`\rceil`:  "⌉",
	`\vert`:   "|",
	`\Vert`:   "‖",
	`\lbrace`: "{",
	`\rbrace`: "}",
	`\lbrack`: "[",
	`\rbrack`: "]",
}

// spacing commands become a single space; \! is a negative space and
// produces nothing.
var spacing = map[string]string{
	`\,`:     " ",
	`\:`:     " ",
	`\;`:     " ",
	`\ `:     " ",
	`\quad`:  " ",
	`\qquad`: "  ",
	`\!`:     "",
}

// escapes are backslash-protected literal characters.
var escapes = map[string]string{
	`\{`: "{",
	`\}`: "}",
	`\%`: "%",
	`\$`: "$",
	`\&`: "&",
	`\_`: "_",
	`\#`: "#",
	`\|`: "‖",
}

// matrixDelimiters gives the fences of matrix-like environments.
var matrixDelimiters = map[string][2]string{
	"matrix":      {"", ""},
	"smallmatrix": {"", ""},
	"array":       {"", ""},
	"pmatrix":     {"(", ")"},
	"bmatrix":     {"[", "]"},
	"Bmatrix":     {"{", "}"},
	"vmatrix":     {"|", "|"},
	"Vmatrix":     {"‖", "‖"},
	"cases":       {"{", ""},
}
