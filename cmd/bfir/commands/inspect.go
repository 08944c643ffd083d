/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inspect.go
Description: Inspect command implementation for the Sayuri BFIR toolkit.
Prints the computed byte layout of a document: every field path with its
absolute offset and size in declaration order.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunInspect executes the inspect command
func RunInspect(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	input := viper.GetString("inspect.input")
	if input == "" {
		return fmt.Errorf("input document is required")
	}

	doc, err := LoadDocument(input)
	if err != nil {
		return err
	}

	layouts, err := bfir.ComputeLayout(doc)
	if err != nil {
		return fmt.Errorf("layout computation failed: %w", err)
	}

	fmt.Printf("📐 %s", doc.Format.Name)
	if doc.Format.Version != "" {
		fmt.Printf(" %s", doc.Format.Version)
	}
	fmt.Println()
	fmt.Println("==========================================")
	fmt.Printf("%-10s %-8s %-12s %s\n", "OFFSET", "SIZE", "KIND", "FIELD")

	total := 0
	for _, l := range layouts {
		fmt.Printf("0x%08X %-8d %-12s %s\n", l.Offset, l.Size, l.Kind, l.Path)
		if end := l.Offset + l.Size; end > total {
			total = end
		}
	}

	fmt.Println("==========================================")
	fmt.Printf("Total size: %d bytes\n", total)
	return nil
}
