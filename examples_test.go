package jsondiff

import (
	"fmt"
)

func ExampleDiffBytes() {
	// start with two slightly different json documents
	aJSON := []byte(`{
		"a": 100,
		"foo": [1,2,3],
		"bar": false,
		"baz": {
			"a": {
				"b": 4,
				"c": false,
				"d": "apples-and-oranges"
			},
			"e": null,
			"g": "apples-and-oranges"
		}
	}`)

	bJSON := []byte(`{
		"a": 99,
		"foo": [1,2,3],
		"bar": false,
		"baz": {
			"a": {
				"b": 5,
				"c": false,
				"d": "apples-and-oranges"
			},
			"e": "thirty-thousand-something-dogecoin",
			"f": false
		}
	}`)

	// DiffBytes produces a patch document that turns a into b
	patch, err := DiffBytes(JSON, aJSON, bJSON)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(patch))
	// Output: {"a":99,"~baz":{"-g":0,"e":"thirty-thousand-something-dogecoin","f":false,"~a":{"b":5}}}
}

func ExampleFormatPretty() {
	a, _ := JSON.Decode([]byte(`{"a":100,"baz":{"a":{"b":4},"e":null,"g":"apples"}}`))
	b, _ := JSON.Decode([]byte(`{"a":99,"baz":{"a":{"b":5},"e":"dogecoin","f":false}}`))

	patch, err := Diff(a, b)
	if err != nil {
		panic(err)
	}

	// Format the changes for terminal output
	change, err := FormatPrettyString(patch, false)
	if err != nil {
		panic(err)
	}
	fmt.Print(change)
	// Output: ~ a: 99
	// baz:
	//   - g
	//   ~ e: "dogecoin"
	//   ~ f: false
	//   a:
	//     ~ b: 5
}

func ExampleApplyBytes() {
	orig := []byte(`{"title":"list","a":[1,2,3]}`)
	patch := []byte(`{"-a[0]":0,"a[+2]":4,"title":"numbers"}`)

	result, err := ApplyBytes(JSON, orig, patch)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(result))
	// Output: {"title":"numbers","a":[2,3,4]}
}
