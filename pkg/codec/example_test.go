package codec_test

import (
	"fmt"

	"github.com/ssargent/mapcode/pkg/codec"
)

func ExampleEncodeBase31() {
	fmt.Println(string(codec.EncodeBase31(961, 3)))
	v, _ := codec.DecodeBase31("100")
	fmt.Println(v)
	// Output:
	// 100
	// 961
}

func ExampleRepack() {
	packed := codec.Repack("49.45")
	fmt.Println(packed)
	plain, _ := codec.Unpack(packed)
	fmt.Println(plain)
	// Output:
	// 49.EC
	// 49.45
}

func ExampleEncodeTriple() {
	s := codec.EncodeTriple(100, 150)
	x, y, _ := codec.DecodeTriple(string(s))
	fmt.Println(x, y)
	// Output: 100 150
}
