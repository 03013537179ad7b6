package multivar_test

import (
	"fmt"

	"github.com/aretw0/multivar"
	"github.com/aretw0/multivar/pkg/domain"
)

func ExampleKernel_Gradient() {
	k := multivar.New()
	grad := k.Gradient("x^2*y + y^3", domain.P2(1, 2))
	fmt.Printf("(%.3f, %.3f)\n", grad.X, grad.Y)
	// Output: (4.000, 13.000)
}

func ExampleKernel_SamplePath() {
	k := multivar.New()
	for _, kind := range []domain.PathKind{domain.PathAxisX, domain.PathDiagonal} {
		_, est := k.SamplePath("x*y/(x^2 + y^2)", domain.P2(0, 0), kind, 0)
		fmt.Printf("%s: %.2f\n", kind, est.Value)
	}
	// Output:
	// axis-x: 0.00
	// diagonal: 0.50
}

func ExampleKernel_Classify() {
	k := multivar.New()
	fmt.Println(k.Classify("x^2 - y^2", domain.P2(0, 0)))
	// Output: saddle
}
