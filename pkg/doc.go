// Package pkg holds the libraries behind noticer.
//
// # Overview
//
// Noticer turns a project's resolved dependency list into library and
// license metadata for attribution screens. The packages split as follows:
//
//  1. [collected], [coord], [descriptor] - inputs: dependency lists, coordinates and descriptor files
//  2. [locate], [integrations/maven] - finding descriptors locally or in remote repositories
//  3. [gather] - the per-dependency pipeline and result folding
//  4. [license], [library], [override] - output model, license dedup and operator overrides
//  5. [integrations/github], [cache] - remote license enrichment and response caching
//  6. [config], [errors], [observability], [buildinfo] - shared infrastructure
//
// # Data flow
//
//	dependencies.json
//	         ↓
//	    [collected] (variant selection)
//	         ↓
//	    [locate] → [descriptor] (find and parse, parent included)
//	         ↓
//	    [gather] (inherit, exclude, normalize, dedup licenses, enrich)
//	         ↓
//	    [override] (merge operator files)
//	         ↓
//	    libraries.json
package pkg
