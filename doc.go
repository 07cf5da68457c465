// Package qwell computes the bound states of a layered semiconductor quantum
// well with the finite-element method.
//
// 🚀 What is qwell?
//
//	A small solver for the effective-mass Schrödinger equation
//		-∇·(ħ²/2m*(x) ∇ψ) + V(x) ψ = E ψ
//	on a barrier/well/barrier stack, with ψ = 0 at both outer faces:
//		• Geometry: layer stack, interfaces, mirror symmetry
//		• Mesh & space: segment or thin periodic strip, Lagrange P1/P2
//		• Assembly: per-layer weak forms into sparse H and M
//		• Eigensolve: H x = λ M x by Jacobi sweeps or LAPACK (gonum)
//		• Bound states: energies below the barrier, normalised and sign-fixed
//		• Reports: console lines, PNG plots, XLSX and TSV tables
//
// ✨ Defaults reproduce the reference well: 80 Å of GaAs (m* = 0.067)
// between two 250 Å barriers of 0.23 eV (m* = 0.096), 20 P1 cells.
//
// Under the hood:
//
//	geometry/    layers, Structure, finite-well constructor
//	mesh/        interval and strip meshes, cell and boundary tags
//	fem/         function space, assembly, Dirichlet reduction, Function
//	matrix/      Dense, Sparse, Cholesky, Jacobi eigen kernels
//	eigen/       backend registry, capabilities, Decomposition
//	boundstate/  bound-state filter, parity
//	fdm/         finite-difference reference solver
//	report/      console, plots, workbook
//	config/      viper/pflag configuration
//	pipeline/    Run and the parallel width Sweep
//	cmd/qwell/   command-line entry point
//
// Quick start:
//
//	res, err := pipeline.Run(ctx, config.Default())
//	for k, s := range res.States {
//		fmt.Printf("E[%d]=%g %s\n", k, s.Energy, s.Parity)
//	}
//
//	go install github.com/katalvlaran/qwell/cmd/qwell@latest
package qwell
