// Package fem implements continuous Lagrange finite elements (degree 1 and 2)
// on the segment and triangle meshes of package mesh.
//
// A Space numbers the degrees of freedom, folding the periodic edge of a
// strip and listing the Dirichlet dofs at x=0 and x=L. Assemble integrates a
// Form cell by cell into a matrix.Sparse; AssembleSystem produces the
// Hamiltonian H and mass M of a geometry.Structure, and System.Reduce
// eliminates the constrained dofs before the eigensolve.
//
// Quadrature: Gauss–Legendre (gonum integrate/quad) on segments and
// symmetric Dunavant rules on triangles, exact for the P2 mass integrand.
package fem
