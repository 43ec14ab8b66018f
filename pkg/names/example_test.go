package names_test

import (
	"fmt"

	"github.com/productioncity/salutation/pkg/names"
)

func ExampleSplit() {
	p := names.Split("Jane Smith", "en_US", "Dr.")
	fmt.Println(p.Given, "|", p.Family, "|", p.Salutation)

	p = names.Split("Kim Minjun", "ko_KR", "")
	fmt.Println(p.Given, "|", p.Family, "|", p.Salutation)
	// Output:
	// Jane | Smith | Dr. Smith
	// Minjun | Kim | Minjun
}
