// Package verilog provides a lexer, a `define preprocessor, a parser and a
// printer for a synthesizable subset of Verilog.
//
// Pipeline: source → Preprocess → Lex → Parse → *Module → String
package verilog
