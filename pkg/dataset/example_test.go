package dataset_test

import (
	"fmt"

	"github.com/ssargent/mapcode/pkg/dataset"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/territory"
)

func ExampleLoad() {
	tbl, err := dataset.Load("testdata/world.yaml")
	if err != nil {
		fmt.Println(err)
		return
	}
	e := mapcode.NewEngine(tbl)
	r, ok, err := e.EncodeShortest(52.376514, 4.908543, territory.None, 0)
	if err != nil || !ok {
		fmt.Println("no code", err)
		return
	}
	fmt.Println(r)
	// Output: NLD JD.LZM
}
