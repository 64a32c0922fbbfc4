package objective

import (
	"math"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

// Sphere is the sum of squared genes, minimum 0 at the origin
func Sphere(genes []float64) float64 {
	var sum float64
	for _, x := range genes {
		sum += x * x
	}
	return sum
}

// Rastrigin is a highly multimodal bowl, minimum 0 at the origin
func Rastrigin(genes []float64) float64 {
	sum := 10 * float64(len(genes))
	for _, x := range genes {
		sum += x*x - 10*math.Cos(2*math.Pi*x)
	}
	return sum
}

// Rosenbrock is the banana valley, minimum 0 at (1, ..., 1)
// A single gene has no valley and scores 0
func Rosenbrock(genes []float64) float64 {
	var sum float64
	for i := 0; i+1 < len(genes); i++ {
		a := genes[i+1] - genes[i]*genes[i]
		b := 1 - genes[i]
		sum += 100*a*a + b*b
	}
	return sum
}

// Ackley is a nearly flat plate with a deep hole, minimum 0 at the origin
func Ackley(genes []float64) float64 {
	if len(genes) == 0 {
		return 0
	}
	n := float64(len(genes))
	var sq, cos float64
	for _, x := range genes {
		sq += x * x
		cos += math.Cos(2 * math.Pi * x)
	}
	return -20*math.Exp(-0.2*math.Sqrt(sq/n)) - math.Exp(cos/n) + 20 + math.E
}

// Conventional search domains
var (
	SphereDomain     = genetic.Bounds{Min: -5.12, Max: 5.12}
	RastriginDomain  = genetic.Bounds{Min: -5.12, Max: 5.12}
	RosenbrockDomain = genetic.Bounds{Min: -2.048, Max: 2.048}
	AckleyDomain     = genetic.Bounds{Min: -32.768, Max: 32.768}
)
