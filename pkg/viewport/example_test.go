package viewport_test

import (
	"fmt"

	"github.com/branislavfamily/familysite/pkg/viewport"
)

func ExampleController() {
	c := viewport.New()
	c.ZoomIn()
	c.PointerDown(viewport.ButtonPrimary, viewport.Point{X: 100, Y: 100})
	c.PointerMove(viewport.Point{X: 140, Y: 90})
	c.PointerUp()

	fmt.Println(c.Transform().CSS())
	fmt.Println(c.CanZoomIn(), c.CanZoomOut())
	// Output:
	// translate(40px, -10px) scale(1.2)
	// true true
}

func ExampleController_TouchMove() {
	c := viewport.New()
	c.TouchStart([]viewport.Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	c.TouchMove([]viewport.Point{{X: 0, Y: 0}, {X: 150, Y: 0}})
	fmt.Printf("%.2f\n", c.Scale())
	// Output: 1.50
}
