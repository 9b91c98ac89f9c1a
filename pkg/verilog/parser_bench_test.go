package verilog

import (
	"strings"
	"testing"
)

// benchSource is a small register file with an instantiation and a case.
const benchSource = `
` + "`define INC(x) x + 8'd1" + `
module regfile(clk, we, waddr, wdata, raddr, rdata);
  input clk;
  input we;
  input [2:0] waddr;
  input [7:0] wdata;
  input [2:0] raddr;
  output reg [7:0] rdata;
  reg [7:0] r0;
  reg [7:0] r1;

  always @(posedge clk) begin
    if (we == 1'b1) begin
      case (waddr)
        3'd0: r0 <= wdata;
        3'd1: r1 <= ` + "`INC(wdata)" + `;
        default: ;
      endcase
    end
  end

  always @(*) rdata = raddr == 3'd0 ? r0 : r1;

  sram s0 (.clk(clk), .addr({waddr, raddr}), .d(wdata[7:0]));
endmodule
`

func BenchmarkLex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Lex(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPreprocess(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, _, err := Preprocess(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseModule(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ParseModule(benchSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	m, err := ParseModule(benchSource)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.String()
	}
}

func BenchmarkParseLongExpression(b *testing.B) {
	src := strings.Repeat("a + ", 200) + "a"
	for i := 0; i < b.N; i++ {
		if _, err := ParseExpression(src); err != nil {
			b.Fatal(err)
		}
	}
}
