package diagram_test

import (
	"fmt"

	"github.com/matzehuels/venntower/pkg/diagram"
)

func Example() {
	reg := diagram.NewRegistry()
	a := reg.NewCurve(reg.Label("a"))
	b := reg.NewCurve(reg.Label("b"))

	d := diagram.NewDescription(
		[]*diagram.Curve{a, b},
		[]*diagram.Zone{reg.Outside(), reg.Zone(a), reg.Zone(b), reg.Zone(a, b)},
		nil, nil,
	)

	fmt.Println(d.Sentence())
	fmt.Println(d.NumZones(), "zones,", d.NumCurves(), "curves")
	fmt.Println(len(d.ZonesInside(a)), "zones inside a")
	// Output:
	// 0,a,b,ab
	// 4 zones, 2 curves
	// 2 zones inside a
}

func ExampleZone_StraddledCurve() {
	reg := diagram.NewRegistry()
	a := reg.NewCurve(reg.Label("a"))
	b := reg.NewCurve(reg.Label("b"))

	fmt.Println(reg.Zone(a).StraddledCurve(reg.Zone(a, b)))
	fmt.Println(reg.Outside().StraddledCurve(reg.Zone(a, b)) == nil)
	// Output:
	// b
	// true
}

func ExampleRegistry_Zone() {
	reg := diagram.NewRegistry()
	a := reg.NewCurve(reg.Label("a"))
	b := reg.NewCurve(reg.Label("b"))

	fmt.Println(reg.Zone(a, b) == reg.Zone(b, a))
	fmt.Println(reg.Zone(a, b).MoveOutside(a))
	// Output:
	// true
	// b
}
