/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pattern_demo.go
Description: Demo showcasing the pattern generator: builds a small BFIR
document with an array field, exercises the for-loop, function declaration,
and function call generators, and prints the assembled pattern with its
tracked library imports.
*/

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/kleascm/sayuri-bfir/pkg/hexpat"
)

func exampleDocument() *bfir.Document {
	return &bfir.Document{
		Format: bfir.FormatDescriptor{
			Name:        "LoopAndFunctionExample",
			Version:     "1.0",
			Description: "Example format demonstrating loops and library functions",
			Endianness:  bfir.EndianLittle,
		},
		Fields: []*bfir.FieldNode{
			{
				Kind:        bfir.KindStruct,
				Name:        "Header",
				Description: "Example header with an array processed by a loop",
				Fields: []*bfir.FieldNode{
					{
						Kind:        bfir.KindSimpleValue,
						Name:        "Magic",
						SizeBytes:   4,
						Description: "Magic number",
					},
					{
						Kind:        bfir.KindSimpleValue,
						Name:        "Values",
						SizeBytes:   40, // 10 u32 values
						Description: "Array of 10 values processed with a loop",
					},
				},
			},
		},
	}
}

func main() {
	doc := exampleDocument()
	converter := hexpat.NewConverter(doc)

	// For-loop generator
	call := converter.GenerateFunctionCall(hexpat.CallSpec{
		Namespace: "std.math",
		Function:  "pow",
		Args:      []string{"value", "2"},
	})
	loop := converter.GenerateForLoop(hexpat.LoopSpec{
		InitDecl:  "u8 i",
		InitValue: "0",
		Condition: "i < 10",
		Increment: "i = i + 1",
		Body: []string{
			"u32 value = values[i];",
			fmt.Sprintf("result[i] = %s;", call),
		},
	})

	// Function declaration generator
	decl := converter.GenerateFunctionDeclaration(hexpat.FunctionSpec{
		Name: "calculateValue",
		Params: []hexpat.Param{
			{Type: "u16", Name: "value"},
			{Type: "u8", Name: "multiplier"},
		},
		Body: []string{
			fmt.Sprintf("float base = %s;", call),
			"return base * multiplier;",
		},
	})

	fmt.Println("Generated For Loop:")
	fmt.Println(strings.Join(loop, "\n"))
	fmt.Println("\nGenerated Function Declaration:")
	fmt.Println(strings.Join(decl, "\n"))
	fmt.Println("\nRequired Libraries:")
	fmt.Println(converter.RequiredImports())

	pattern, err := converter.Convert()
	if err != nil {
		log.Fatalf("conversion failed: %v", err)
	}

	fmt.Println("\nGenerated Pattern:")
	fmt.Println(pattern)

	if err := os.WriteFile("loop_function_example.hexpat", []byte(pattern), 0644); err != nil {
		log.Fatalf("failed to write pattern: %v", err)
	}
	fmt.Println("Saved pattern to loop_function_example.hexpat")
}
