package fem_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/qwell/fem"
	"github.com/katalvlaran/qwell/matrix"
)

var sinkSparse *matrix.Sparse

// BenchmarkAssemble measures stiffness assembly per mesh kind and degree.
func BenchmarkAssemble(b *testing.B) {
	for _, degree := range []int{1, 2} {
		for _, nx := range []int{20, 80} {
			spaces := []struct {
				name string
				s    *fem.Space
			}{
				{"interval", mustInterval(b, 580, nx, degree)},
				{"strip", mustStrip(b, 580, 29, nx, 4, degree)},
			}
			for _, sp := range spaces {
				s := sp.s
				b.Run(fmt.Sprintf("%s/p=%d/nx=%d", sp.name, degree, nx), func(b *testing.B) {
					b.ReportAllocs()
					for i := 0; i < b.N; i++ {
						h, err := fem.Assemble(s, laplace)
						if err != nil {
							b.Fatal(err)
						}
						sinkSparse = h
					}
				})
			}
		}
	}
}
