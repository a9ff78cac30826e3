// Package compiler turns templates into render functions.
//
// The pipeline has three stages:
//
//   - BaseParse builds an AST of elements, text, and {{ }} interpolations.
//   - Transform runs node transforms over the AST and builds the codegen
//     tree (vnode calls and merged text expressions).
//   - Generate prints the codegen tree as render function source, and
//     Compile turns it into an executable runtime.RenderFunc.
//
// The template language is deliberately small: lowercase tags without
// attributes, text, and interpolations of binding paths such as
// {{ user.name }}. Compiled templates are typically cached:
//
//	cache := compiler.NewCache()
//	r := runtime.NewRenderer(host, runtime.WithCompiler(cache.Compile))
package compiler
