package repl

import (
	"bytes"
	"pminus/config"
	"strings"
	"testing"
)

func TestStart(t *testing.T) {
	in := strings.NewReader("inteiro x; x = 1 + 2.0\n\nx = ;\nmostrar(y)\n")
	var out bytes.Buffer

	if err := Start(in, &out, config.TraceConfig{}, nil); err != nil {
		t.Fatal(err)
	}

	expected := PROMPT +
		"  Inteiro:\n" +
		"    Id: x\n" +
		"  Atribui para: x\n" +
		"    Op: +\n" +
		"      Const: 1\n" +
		"      Const: 2.000000\n" +
		"Variable Name  Location  Type    Line Numbers\n" +
		"-------------  --------  ----    ------------\n" +
		"x              0         inteiro    1    1\n" +
		PROMPT +
		PROMPT +
		">>> Syntax error at line 1: unexpected token -> ;\n" +
		PROMPT +
		"  Mostrar:\n" +
		"    Id: y\n" +
		"Variable Name  Location  Type    Line Numbers\n" +
		"-------------  --------  ----    ------------\n" +
		"y              0                    1\n" +
		PROMPT + "\n"

	if out.String() != expected {
		t.Errorf("expected=%q\ngot=%q", expected, out.String())
	}
}
