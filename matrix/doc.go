// Package matrix provides the linear algebra the quantum-well solver runs on.
//
// The matrix package provides:
//
//   - Dense, a row-major matrix with bounds-checked At/Set that rejects NaN/Inf.
//   - Triplet and Sparse, a coordinate builder and CSR storage for assembled
//     finite-element operators.
//   - Kernels: MatVec, Cholesky, SolveLower, SolveLowerT, and Residual for
//     checking an eigen decomposition against its pencil.
//   - Eigen, a cyclic Jacobi solver for real symmetric matrices, and
//     GeneralizedEigen for H x = λ M x with SPD M via Cholesky reduction.
//
// Dense kernels are O(n³) and are meant for the few-hundred-DOF systems of a
// one-dimensional heterostructure; larger problems should go through the
// LAPACK-backed solver in package eigen.
//
// Every error is a sentinel from errors.go, wrapped with an operation tag.
package matrix
