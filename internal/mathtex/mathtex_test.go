package mathtex

import (
	"errors"
	"testing"
)

func TestDefaultHandle(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	SetDefault(nil)
	if Default() != nil {
		t.Fatal("default should start nil")
	}
	if _, err := DefaultFunc.RenderToString("x", Options{}); !errors.Is(err, ErrNoEngine) {
		t.Errorf("err = %v, want ErrNoEngine", err)
	}

	SetDefault(Simple{})
	if Default() == nil {
		t.Fatal("default should be set")
	}
	out, err := DefaultFunc.RenderToString("x + 1", Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "x + 1" {
		t.Errorf("out = %q", out)
	}
}

func TestEngineFunc(t *testing.T) {
	e := EngineFunc(func(latex string, opts Options) (string, error) {
		if opts.Display {
			return "D:" + latex, nil
		}
		return "I:" + latex, nil
	})
	if out, _ := e.RenderToString("x", Options{Display: true}); out != "D:x" {
		t.Errorf("display out = %q", out)
	}
	if out, _ := e.RenderToString("x", Options{}); out != "I:x" {
		t.Errorf("inline out = %q", out)
	}
}

func TestSimpleConversions(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`2x + 3 = 11`, "2x + 3 = 11"},
		{`\frac{1}{2}`, "1/2"},
		{`\frac{11 - 3}{2}`, "(11 - 3)/2"},
		{`\sqrt{16}`, "√(16)"},
		{`x^2`, "x²"},
		{`x^{10}`, "x¹⁰"},
		{`a_1`, "a₁"},
		{`x^y`, "x^y"}, // unmapped script falls back to the caret form
		{`3 \times 4`, "3 × 4"},
		{`a \cdot b`, "a · b"},
		{`\pi r^2`, "π r²"},
		{`\alpha + \beta`, "α + β"},
		{`x \le 5`, "x ≤ 5"},
		{`\text{speed}`, "speed"},
		{`\left( x \right)`, "( x )"},
		{`n \rightarrow \infty`, "n → ∞"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			out, err := Simple{}.RenderToString(tc.in, Options{})
			if err != nil {
				t.Fatalf("render %q: %v", tc.in, err)
			}
			if out != tc.want {
				t.Errorf("render %q = %q, want %q", tc.in, out, tc.want)
			}
		})
	}
}

func TestSimpleErrors(t *testing.T) {
	for _, in := range []string{
		``,
		`   `,
		`\unknowncommand{x}`,
		`x \`,
	} {
		if _, err := (Simple{}).RenderToString(in, Options{}); err == nil {
			t.Errorf("render %q: want error", in)
		}
	}
}
