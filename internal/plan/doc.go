// Package plan provides the resolution pipeline that produces the Plan
// consumed by code generation and the CLI.
//
// Resolution pipeline:
//  1. Analyze packages → enumeration graph, or load a declaration file
//  2. For each enumeration, compile its declaration into a codec.Table
//  3. Fold configuration errors and front-end problems into diagnostics
//  4. Optionally export the declarations back to a declaration file
package plan
